package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backend"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backendtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newRegistry(t *testing.T) *storefront.Registry {
	t.Helper()
	srv := backendtest.New(t)
	return storefront.NewRegistry(storefront.Deps{
		Backend:          backend.NewStatic(srv.URL),
		CustomerTokenTTL: time.Hour,
		AdminTokenTTL:    time.Hour,
		Logger:           logger.Discard(),
	}, time.Hour)
}

func TestSession(t *testing.T) {
	reg := newRegistry(t)

	var seen *storefront.Session
	handler := Session(reg, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// first request issues a cookie
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("cookies = %v, want one %s", cookies, SessionCookie)
	}
	if seen == nil || seen.ID != cookies[0].Value {
		t.Fatalf("session in context = %v", seen)
	}
	first := seen

	// second request reuses it
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if len(w.Result().Cookies()) != 0 {
		t.Error("cookie reissued for a known session")
	}
	if seen != first {
		t.Error("different session for the same cookie")
	}

	// unknown ids are replaced
	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if seen.ID == "forged" || len(w.Result().Cookies()) != 1 {
		t.Error("forged session id adopted")
	}
}

func TestRequireAdmin(t *testing.T) {
	reg := newRegistry(t)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})
	guarded := RequireAdmin(testHandler)

	tests := []struct {
		name           string
		session        func() *storefront.Session
		expectedStatus int
	}{
		{
			name:           "no session",
			session:        func() *storefront.Session { return nil },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "customer only",
			session: func() *storefront.Session {
				s := reg.Create()
				s.Tokens.Set(session.Customer, "customer-token")
				return s
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "admin token present",
			session: func() *storefront.Session {
				s := reg.Create()
				s.Tokens.Set(session.Admin, "admin-token")
				return s
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/items", nil)
			if s := tt.session(); s != nil {
				req = req.WithContext(WithSession(req.Context(), s))
			}

			w := httptest.NewRecorder()
			guarded.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "success" {
					t.Errorf("body = %s, want success", w.Body.String())
				}
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "debug")

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "abc"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"path":"/api/menu"`, `"status":418`, `"session":"abc"`, `"level":"WARN"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %s missing %s", out, want)
		}
	}
}
