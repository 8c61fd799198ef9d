package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/consul/api"
	"golang.org/x/sync/singleflight"
)

var ErrNoHealthyInstance = errors.New("no healthy instance")

// ConsulResolver finds the backend base URL through Consul health checks.
// The discovered address is reused until refresh elapses.
type ConsulResolver struct {
	client  *api.Client
	service string
	scheme  string
	refresh time.Duration
	log     *slog.Logger
	lookups singleflight.Group

	mu       sync.Mutex
	cached   string
	cachedAt time.Time
}

// NewConsulResolver creates a resolver against the Consul agent at address (host:port)
func NewConsulResolver(address, service string, log *slog.Logger) (*ConsulResolver, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &ConsulResolver{
		client:  client,
		service: service,
		scheme:  "http",
		refresh: 30 * time.Second,
		log:     log,
	}, nil
}

// BaseURL returns the URL of the first healthy instance of the service.
// Concurrent refreshes share one Consul query; the lock is never held across it.
func (r *ConsulResolver) BaseURL(ctx context.Context) (string, error) {
	r.mu.Lock()
	cached, fresh := r.cached, r.cached != "" && time.Since(r.cachedAt) < r.refresh
	r.mu.Unlock()
	if fresh {
		return cached, nil
	}

	v, err, _ := r.lookups.Do(r.service, func() (interface{}, error) {
		return r.lookup(ctx)
	})
	if err != nil {
		if cached != "" {
			r.log.Warn("consul lookup failed, keeping last address", "service", r.service, "error", err)
			return cached, nil
		}
		return "", err
	}
	return v.(string), nil
}

func (r *ConsulResolver) lookup(ctx context.Context) (string, error) {
	opts := (&api.QueryOptions{}).WithContext(ctx)
	entries, _, err := r.client.Health().Service(r.service, "", true, opts)
	if err != nil {
		return "", fmt.Errorf("failed to discover service %s: %w", r.service, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("service %s: %w", r.service, ErrNoHealthyInstance)
	}

	svc := entries[0].Service
	host := svc.Address
	if host == "" {
		host = entries[0].Node.Address
	}
	url := r.scheme + "://" + net.JoinHostPort(host, strconv.Itoa(svc.Port))

	r.mu.Lock()
	r.cached = url
	r.cachedAt = time.Now()
	r.mu.Unlock()

	r.log.Info("discovered backend", "service", r.service, "url", url)
	return url, nil
}
