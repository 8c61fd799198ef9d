package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
)

// ConfirmHeader carries the user's answer to a confirmation prompt
const ConfirmHeader = "X-Confirm"

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// confirmation accepts a prompt only when the request says X-Confirm: true
func confirmation(r *http.Request) service.Confirmer {
	return service.ConfirmFunc(func(context.Context, service.Prompt) bool {
		ok, err := strconv.ParseBool(r.Header.Get(ConfirmHeader))
		return err == nil && ok
	})
}

// currentSession returns the browser session attached by middleware.Session
func currentSession(r *http.Request) *storefront.Session {
	return middleware.SessionFrom(r.Context())
}
