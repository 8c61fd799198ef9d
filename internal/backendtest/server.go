// Package backendtest runs an in-memory food ordering REST backend for tests.
// It speaks the same wire format as the production backend, issues real JWTs
// and lets tests inject failures, hold requests and count calls per route.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

type account struct {
	username string
	email    string
	hash     []byte
}

type storedOrder struct {
	order models.Order
	owner string
}

type fault struct {
	remaining int
	status    int
}

// Server is a fake backend bound to an httptest.Server
type Server struct {
	*httptest.Server

	secret []byte

	mu      sync.Mutex
	items   []models.FoodItem
	menu    []models.MenuCategory
	users   map[string]account
	admins  map[string][]byte
	carts   map[string]map[string]int
	orders  []storedOrder
	calls   map[string]int
	faults  map[string]*fault
	gates   map[string]chan struct{}
	arrived map[string]chan struct{}
}

// New starts a seeded fake backend that is closed when the test ends
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		secret:  []byte("backendtest-secret"),
		items:   seedItems(),
		menu:    seedMenu(),
		users:   make(map[string]account),
		admins:  make(map[string][]byte),
		carts:   make(map[string]map[string]int),
		calls:   make(map[string]int),
		faults:  make(map[string]*fault),
		gates:   make(map[string]chan struct{}),
		arrived: make(map[string]chan struct{}),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	s.admins[AdminUsername] = hash

	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	s.handle(r, http.MethodGet, "/menu", s.listMenu)
	s.handle(r, http.MethodGet, "/fooditems", s.listItems)
	s.handle(r, http.MethodGet, "/fooditems/{id}", s.listCategory)
	s.handle(r, http.MethodPost, "/fooditems", s.admin(s.createItem))
	s.handle(r, http.MethodDelete, "/fooditems/{id}", s.admin(s.deleteItem))

	s.handle(r, http.MethodPost, "/register", s.register)
	s.handle(r, http.MethodPost, "/login", s.login)
	s.handle(r, http.MethodPost, "/admin/login", s.adminLogin)

	s.handle(r, http.MethodGet, "/eachfooditem/{id}", s.customer(s.itemCount))
	s.handle(r, http.MethodPost, "/cart/add", s.customer(s.setCount))
	s.handle(r, http.MethodGet, "/cart", s.customer(s.cart))
	s.handle(r, http.MethodDelete, "/cart/{id}", s.customer(s.removeFromCart))
	s.handle(r, http.MethodPost, "/cart/clear", s.customer(s.clearCart))

	s.handle(r, http.MethodGet, "/orders", s.customer(s.listOrders))
	s.handle(r, http.MethodPost, "/orders", s.customer(s.placeOrder))
	s.handle(r, http.MethodPatch, "/orders/{id}", s.admin(s.updateStatus))
	s.handle(r, http.MethodDelete, "/orders/{id}", s.admin(s.cancelOrder))

	s.handle(r, http.MethodGet, "/admin/listitems", s.admin(s.listAll))
	s.handle(r, http.MethodGet, "/admin/orders", s.admin(s.listAllOrders))

	return r
}

// handle registers h and wraps it with call counting, gates and fault injection
func (s *Server) handle(r chi.Router, method, pattern string, h http.HandlerFunc) {
	key := method + " " + pattern
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.mu.Lock()
		s.calls[key]++
		gate := s.gates[key]
		arrived := s.arrived[key]
		var status int
		if f := s.faults[key]; f != nil && f.remaining > 0 {
			f.remaining--
			status = f.status
		}
		s.mu.Unlock()

		if arrived != nil {
			select {
			case arrived <- struct{}{}:
			default:
			}
		}
		if gate != nil {
			select {
			case <-gate:
			case <-req.Context().Done():
				return
			}
		}
		if status != 0 {
			http.Error(w, "injected failure", status)
			return
		}
		h(w, req)
	}))
}

// Calls returns how many requests reached "METHOD /pattern", e.g. "POST /cart/add"
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// TotalCalls returns the number of requests across all routes
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// FailNext makes the next n requests to route answer with status
func (s *Server) FailNext(route string, n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = &fault{remaining: n, status: status}
}

// Hold blocks requests to route until the returned release func is called.
// The arrived channel receives once per request that reached the gate.
func (s *Server) Hold(route string) (arrived <-chan struct{}, release func()) {
	gate := make(chan struct{})
	ch := make(chan struct{}, 16)

	s.mu.Lock()
	s.gates[route] = gate
	s.arrived[route] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, route)
			delete(s.arrived, route)
			s.mu.Unlock()
			close(gate)
		})
	}
}

// CartCount returns the server-side quantity of foodID for username
func (s *Server) CartCount(username, foodID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[username][foodID]
}

// SetCartCount seeds the server-side cart
func (s *Server) SetCartCount(username, foodID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCountLocked(username, foodID, count)
}

// Orders returns every stored order
func (s *Server) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.order)
	}
	return out
}

// SeedOrder stores an order for username and returns its id
func (s *Server) SeedOrder(username string, items []models.OrderItem, addr models.Address) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := models.Order{
		ID:        newID(),
		Items:     items,
		Address:   addr,
		Status:    models.StatusInProcess,
		CreatedAt: time.Now().UTC(),
	}
	s.orders = append(s.orders, storedOrder{order: o, owner: username})
	return o.ID
}

// Items returns the current catalog
func (s *Server) Items() []models.FoodItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FoodItem(nil), s.items...)
}

// Signup registers username and returns a customer token for it
func (s *Server) Signup(t testing.TB, username, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	s.mu.Lock()
	s.users[username] = account{username: username, email: username + "@example.com", hash: hash}
	s.mu.Unlock()

	token, err := s.issue(username, "customer")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// AdminToken returns a valid admin token
func (s *Server) AdminToken(t testing.TB) string {
	t.Helper()
	token, err := s.issue(AdminUsername, "admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func (s *Server) setCountLocked(username, foodID string, count int) {
	cart := s.carts[username]
	if cart == nil {
		cart = make(map[string]int)
		s.carts[username] = cart
	}
	if count <= 0 {
		delete(cart, foodID)
		return
	}
	cart[foodID] = count
}

func (s *Server) findItemLocked(id string) (models.FoodItem, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.FoodItem{}, false
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// claims carried by issued tokens
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issue(subject, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})
	return token.SignedString(s.secret)
}
