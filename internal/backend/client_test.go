package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backendtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newTestClient(t *testing.T) (*Client, *backendtest.Server) {
	t.Helper()
	srv := backendtest.New(t)
	return NewStatic(srv.URL, WithLogger(logger.Discard())), srv
}

func TestClient_Catalog(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		fetch  func() ([]models.FoodItem, error)
		wantN  int
		wantID string
	}{
		{
			name:   "all items",
			fetch:  func() ([]models.FoodItem, error) { return c.ListFoodItems(ctx, "") },
			wantN:  9,
			wantID: "1",
		},
		{
			name:   "search by name",
			fetch:  func() ([]models.FoodItem, error) { return c.ListFoodItems(ctx, "greek") },
			wantN:  1,
			wantID: "5",
		},
		{
			name:   "search by category with spaces",
			fetch:  func() ([]models.FoodItem, error) { return c.ListFoodItems(ctx, "pizza ") },
			wantN:  3,
			wantID: "7",
		},
		{
			name:   "menu category",
			fetch:  func() ([]models.FoodItem, error) { return c.ListCategoryItems(ctx, "Salad") },
			wantN:  3,
			wantID: "4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := tt.fetch()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantN {
				t.Fatalf("got %d items, want %d", len(items), tt.wantN)
			}
			if items[0].ID != tt.wantID {
				t.Errorf("first item id = %s, want %s", items[0].ID, tt.wantID)
			}
		})
	}

	menu, err := c.ListMenu(ctx)
	if err != nil {
		t.Fatalf("ListMenu() error = %v", err)
	}
	if len(menu) != 3 || menu[0].Name != "Waffle" {
		t.Errorf("unexpected menu %+v", menu)
	}
}

func TestClient_CartRoundTrip(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	token := srv.Signup(t, "asha", "secret")

	if err := c.SetItemCount(ctx, token, "4", 3); err != nil {
		t.Fatalf("SetItemCount() error = %v", err)
	}
	count, err := c.ItemCount(ctx, token, "4")
	if err != nil {
		t.Fatalf("ItemCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("ItemCount() = %d, want 3", count)
	}

	entries, err := c.Cart(ctx, token)
	if err != nil {
		t.Fatalf("Cart() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Food.Name != "Caesar Salad" || entries[0].Count != 3 {
		t.Errorf("unexpected cart %+v", entries)
	}

	if err := c.RemoveCartItem(ctx, token, "4"); err != nil {
		t.Fatalf("RemoveCartItem() error = %v", err)
	}
	if err := c.SetItemCount(ctx, token, "1", 1); err != nil {
		t.Fatalf("SetItemCount() error = %v", err)
	}
	if err := c.ClearCart(ctx, token); err != nil {
		t.Fatalf("ClearCart() error = %v", err)
	}
	if n := srv.CartCount("asha", "1"); n != 0 {
		t.Errorf("cart count after clear = %d, want 0", n)
	}
}

func TestClient_AuthFlows(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	if err := c.Register(ctx, models.RegisterRequest{Username: "ravi", Email: "ravi@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err := c.Register(ctx, models.RegisterRequest{Username: "ravi", Email: "ravi@example.com", Password: "pw"})
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate Register() error = %v, want 409", err)
	}
	if apiErr.Message != "User already exists" {
		t.Errorf("message = %q, want plain text body", apiErr.Message)
	}

	token, err := c.Login(ctx, models.LoginRequest{Username: "ravi", Password: "pw"})
	if err != nil || token == "" {
		t.Fatalf("Login() = %q, %v", token, err)
	}

	if _, err := c.Login(ctx, models.LoginRequest{Username: "ravi", Password: "wrong"}); err == nil {
		t.Error("Login() with wrong password succeeded")
	}

	resp, err := c.AdminLogin(ctx, models.AdminLoginRequest{Username: backendtest.AdminUsername, Password: backendtest.AdminPassword})
	if err != nil || resp.Token == "" {
		t.Fatalf("AdminLogin() = %+v, %v", resp, err)
	}

	_, err = c.AdminLogin(ctx, models.AdminLoginRequest{Username: "admin", Password: "nope"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("AdminLogin() error = %v, want ErrUnauthorized", err)
	}
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid admin credentials" {
		t.Errorf("message = %v, want JSON message", err)
	}
}

func TestClient_OrdersAndAdmin(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	token := srv.Signup(t, "asha", "secret")
	admin := srv.AdminToken(t)

	req := models.OrderRequest{
		Items:   []models.OrderItem{{Name: "Greek Salad", Price: 9.49, Quantity: 2}},
		Address: models.Address{FirstName: "Asha", LastName: "Rao", City: "Pune", Pincode: "411001", Phone: "99999"},
	}
	if err := c.PlaceOrder(ctx, token, req); err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	mine, err := c.ListOrders(ctx, token)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListOrders() = %v, %v", mine, err)
	}
	if mine[0].Status != models.StatusInProcess {
		t.Errorf("status = %s, want %s", mine[0].Status, models.StatusInProcess)
	}

	if err := c.UpdateOrderStatus(ctx, admin, mine[0].ID, models.StatusDelivered); err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	all, err := c.AdminListOrders(ctx, admin)
	if err != nil || len(all) != 1 || all[0].Status != models.StatusDelivered {
		t.Fatalf("AdminListOrders() = %+v, %v", all, err)
	}

	if err := c.CancelOrder(ctx, admin, mine[0].ID); err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	if err := c.CancelOrder(ctx, admin, mine[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second CancelOrder() error = %v, want ErrNotFound", err)
	}

	in := models.FoodItemInput{Name: "Paneer Tikka", Image: "p.png", Description: "Grilled paneer", Category: "Starter", Price: 7.5}
	if err := c.CreateFoodItem(ctx, admin, in); err != nil {
		t.Fatalf("CreateFoodItem() error = %v", err)
	}
	items, err := c.AdminListItems(ctx, admin)
	if err != nil || len(items) != 10 {
		t.Fatalf("AdminListItems() = %d items, %v", len(items), err)
	}
	if err := c.DeleteFoodItem(ctx, admin, items[9].ID); err != nil {
		t.Fatalf("DeleteFoodItem() error = %v", err)
	}

	if err := c.CreateFoodItem(ctx, token, in); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("CreateFoodItem() with customer token error = %v, want ErrUnauthorized", err)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("4"))
	}))
	defer srv.Close()

	c := NewStatic(srv.URL+"/", WithLogger(logger.Discard()))
	n, err := c.ItemCount(context.Background(), "tok", "abc")
	if err != nil {
		t.Fatalf("ItemCount() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ItemCount() = %d, want 4", n)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", gotAuth)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewStatic(url, WithLogger(logger.Discard()))
	_, err := c.ListMenu(context.Background())
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure reported as API error: %v", err)
	}
}
