package backendtest

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type ctxKey struct{}

func (s *Server) authenticate(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			writeMessage(w, http.StatusUnauthorized, "Missing token")
			return
		}

		var c claims
		_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if c.Role != role {
			writeMessage(w, http.StatusForbidden, "Forbidden")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, c.Subject)))
	}
}

func (s *Server) customer(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticate("customer", next)
}

func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticate("admin", next)
}

func subject(r *http.Request) string {
	v, _ := r.Context().Value(ctxKey{}).(string)
	return v
}

func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	menu := append([]models.MenuCategory(nil), s.menu...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, menu)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FoodItem, 0, len(s.items))
	for _, item := range s.items {
		if search == "" ||
			strings.Contains(strings.ToLower(item.Name), search) ||
			strings.Contains(strings.ToLower(item.Category), search) {
			out = append(out, item)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listCategory(w http.ResponseWriter, r *http.Request) {
	menu := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FoodItem, 0)
	for _, item := range s.items {
		if strings.EqualFold(item.Category, menu) {
			out = append(out, item)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Items())
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var in models.FoodItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Name == "" || in.Image == "" || in.Description == "" || in.Category == "" || in.Price <= 0 {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	item := models.FoodItem{
		ID:          newID(),
		Name:        in.Name,
		Image:       in.Image,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			writeMessage(w, http.StatusOK, "Food item deleted")
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Food item not found")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "All fields are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	}
	s.users[req.Username] = account{username: req.Username, email: req.Email, hash: hash}
	writeMessage(w, http.StatusCreated, "User registered")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	acc, exists := s.users[req.Username]
	s.mu.Unlock()

	if !exists || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		http.Error(w, "Invalid username or password", http.StatusBadRequest)
		return
	}

	token, err := s.issue(acc.username, "customer")
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.AdminLoginResponse{Message: "Invalid request body"})
		return
	}

	s.mu.Lock()
	hash, exists := s.admins[req.Username]
	s.mu.Unlock()

	if !exists || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, models.AdminLoginResponse{Message: "Invalid admin credentials"})
		return
	}

	token, err := s.issue(req.Username, "admin")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.AdminLoginResponse{Message: "Internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, models.AdminLoginResponse{Success: true, Token: token, Message: "Admin login successful"})
}

func (s *Server) itemCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.CartCount(subject(r), chi.URLParam(r, "id")))
}

func (s *Server) setCount(w http.ResponseWriter, r *http.Request) {
	var req models.SetCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Count < 0 {
		writeMessage(w, http.StatusBadRequest, "Count must not be negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findItemLocked(req.FoodID); !ok {
		writeMessage(w, http.StatusNotFound, "Food item not found")
		return
	}
	s.setCountLocked(subject(r), req.FoodID, req.Count)
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) cart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.CartEntry, 0)
	for foodID, count := range s.carts[subject(r)] {
		item, ok := s.findItemLocked(foodID)
		if !ok {
			continue
		}
		entries = append(entries, models.CartEntry{Food: item, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Food.ID < entries[j].Food.ID })
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	foodID := chi.URLParam(r, "id")
	if _, ok := s.carts[subject(r)][foodID]; !ok {
		writeMessage(w, http.StatusNotFound, "Item not in cart")
		return
	}
	s.setCountLocked(subject(r), foodID, 0)
	writeMessage(w, http.StatusOK, "Item removed")
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.carts, subject(r))
	s.mu.Unlock()
	writeMessage(w, http.StatusOK, "Cart cleared")
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if o.owner == subject(r) {
			out = append(out, o.order)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listAllOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Orders())
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 || !req.Address.Complete() {
		writeMessage(w, http.StatusBadRequest, "Items and address are required")
		return
	}

	order := models.Order{
		ID:        newID(),
		Items:     req.Items,
		Address:   req.Address,
		Status:    models.StatusInProcess,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.orders = append(s.orders, storedOrder{order: order, owner: subject(r)})
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Order placed", "order": order})
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.orders {
		if s.orders[i].order.ID == id {
			s.orders[i].order.Status = req.Status
			writeJSON(w, http.StatusOK, s.orders[i].order)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Order not found")
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.orders {
		if s.orders[i].order.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			writeMessage(w, http.StatusOK, "Order cancelled")
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Order not found")
}
