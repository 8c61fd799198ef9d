package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// Kind selects one of the two bearer tokens
type Kind int

const (
	Customer Kind = iota
	Admin
)

// CookieName is the cookie holding the token of kind k
func (k Kind) CookieName() string {
	if k == Admin {
		return "admin_jwt"
	}
	return "jwt_token"
}

func (k Kind) String() string {
	if k == Admin {
		return "admin"
	}
	return "customer"
}

// jarOrigin scopes the cookies of one browser session
var jarOrigin = &url.URL{Scheme: "https", Host: "storefront.local", Path: "/"}

// Tokens keeps the customer and admin bearer tokens as cookies with an expiry.
// Every read goes back to the jar, so an expired cookie reads as logged out.
type Tokens struct {
	jar *cookiejar.Jar
	ttl map[Kind]time.Duration
}

// NewTokens creates an empty token store with per-kind lifetimes
func NewTokens(customerTTL, adminTTL time.Duration) *Tokens {
	// cookiejar.New only fails on a bad PublicSuffixList, and we pass none
	jar, _ := cookiejar.New(nil)
	return &Tokens{
		jar: jar,
		ttl: map[Kind]time.Duration{Customer: customerTTL, Admin: adminTTL},
	}
}

// Set stores token with the lifetime configured for kind
func (t *Tokens) Set(kind Kind, token string) {
	t.jar.SetCookies(jarOrigin, []*http.Cookie{{
		Name:     kind.CookieName(),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(t.ttl[kind]),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}})
}

// Get returns the token of kind, or "" when absent or expired
func (t *Tokens) Get(kind Kind) string {
	for _, c := range t.jar.Cookies(jarOrigin) {
		if c.Name == kind.CookieName() {
			return c.Value
		}
	}
	return ""
}

// Present reports whether a token of kind is stored
func (t *Tokens) Present(kind Kind) bool {
	return t.Get(kind) != ""
}

// Clear deletes the token of kind
func (t *Tokens) Clear(kind Kind) {
	t.jar.SetCookies(jarOrigin, []*http.Cookie{{
		Name:   kind.CookieName(),
		Path:   "/",
		MaxAge: -1,
	}})
}

// CustomerToken satisfies the token source used by quantity controls
func (t *Tokens) CustomerToken() string {
	return t.Get(Customer)
}

// AdminToken returns the admin token
func (t *Tokens) AdminToken() string {
	return t.Get(Admin)
}
