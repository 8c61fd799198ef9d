package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newAdminPanel(t *testing.T, signedIn bool) (*env, *AdminPanel) {
	t.Helper()
	e := newEnv(t)
	if signedIn {
		e.signInAdmin(t)
	}
	return e, NewAdminPanel(e.client, e.tokens, e.notices, logger.Discard())
}

func TestItemForm_Input(t *testing.T) {
	valid := ItemForm{Name: "Tacos", Image: "https://img.test/t.png", Description: "Three tacos", Category: "Mexican", Price: "7.50"}

	tests := []struct {
		name    string
		mod     func(f *ItemForm)
		wantErr error
	}{
		{"valid", func(f *ItemForm) {}, nil},
		{"missing name", func(f *ItemForm) { f.Name = "" }, ErrInvalidItem},
		{"blank category", func(f *ItemForm) { f.Category = "  " }, ErrInvalidItem},
		{"missing price", func(f *ItemForm) { f.Price = "" }, ErrInvalidItem},
		{"zero price", func(f *ItemForm) { f.Price = "0" }, ErrInvalidPrice},
		{"negative price", func(f *ItemForm) { f.Price = "-3" }, ErrInvalidPrice},
		{"not a number", func(f *ItemForm) { f.Price = "cheap" }, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mod(&f)
			in, err := f.Input()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Input() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && in.Price != 7.5 {
				t.Errorf("price = %v, want 7.5", in.Price)
			}
		})
	}
}

func TestAdminPanel_RequiresToken(t *testing.T) {
	e, panel := newAdminPanel(t, false)
	ctx := context.Background()

	calls := []func() error{
		func() error { _, err := panel.ListItems(ctx); return err },
		func() error { _, err := panel.ListOrders(ctx); return err },
		func() error { _, err := panel.AddItem(ctx, ItemForm{}); return err },
		func() error { _, err := panel.DeleteItem(ctx, "1", Confirmed); return err },
		func() error { _, err := panel.UpdateStatus(ctx, "x", models.StatusDelivered); return err },
		func() error { _, err := panel.CancelOrder(ctx, "x", Confirmed); return err },
	}
	for i, call := range calls {
		if err := call(); !errors.Is(err, ErrAdminSignInRequired) {
			t.Errorf("call %d error = %v, want ErrAdminSignInRequired", i, err)
		}
	}
	if e.srv.TotalCalls() != 0 {
		t.Errorf("backend called %d times", e.srv.TotalCalls())
	}
}

func TestAdminPanel_AddItem(t *testing.T) {
	e, panel := newAdminPanel(t, true)
	ctx := context.Background()

	items, err := panel.AddItem(ctx, ItemForm{Name: "Tacos", Image: "https://img.test/t.png", Description: "Three tacos", Category: "Mexican", Price: "7.50"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if len(items) != 10 {
		t.Errorf("refreshed list = %d items, want 10", len(items))
	}
	if n := lastNotice(t, e.notices); n.Title != "Item Added!" {
		t.Errorf("notice = %+v", n)
	}

	_, err = panel.AddItem(ctx, ItemForm{Name: "Tacos"})
	if !errors.Is(err, ErrInvalidItem) {
		t.Errorf("AddItem() incomplete error = %v", err)
	}
	if n := lastNotice(t, e.notices); n.Level != notify.Warning || n.Message != "All fields are required!" {
		t.Errorf("notice = %+v", n)
	}
	if e.srv.Calls("POST /fooditems") != 1 {
		t.Errorf("create called %d times, want 1", e.srv.Calls("POST /fooditems"))
	}
}

func TestAdminPanel_DeleteItemNeedsConfirmation(t *testing.T) {
	e, panel := newAdminPanel(t, true)
	ctx := context.Background()

	declined := &recordingConfirmer{answer: false}
	_, err := panel.DeleteItem(ctx, "1", declined)
	var confirmErr *ConfirmationError
	if !errors.As(err, &confirmErr) {
		t.Fatalf("DeleteItem() error = %v, want ConfirmationError", err)
	}
	if confirmErr.Prompt.Title != "Are you sure?" {
		t.Errorf("prompt = %+v", confirmErr.Prompt)
	}
	if e.srv.Calls("DELETE /fooditems/{id}") != 0 {
		t.Fatal("delete issued before confirmation")
	}

	items, err := panel.DeleteItem(ctx, "1", Confirmed)
	if err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}
	if len(items) != 8 {
		t.Errorf("refreshed list = %d items, want 8", len(items))
	}
	if e.srv.Calls("DELETE /fooditems/{id}") != 1 {
		t.Error("delete not issued after confirmation")
	}
}

func TestAdminPanel_Orders(t *testing.T) {
	e, panel := newAdminPanel(t, true)
	ctx := context.Background()
	id := e.srv.SeedOrder("alice", []models.OrderItem{{Name: "Caesar Salad", Price: 8.99, Quantity: 1}}, fullAddress)
	e.srv.SeedOrder("bob", []models.OrderItem{{Name: "Belgian Waffle", Price: 10.99, Quantity: 1}}, fullAddress)

	orders, err := panel.ListOrders(ctx)
	if err != nil || len(orders) != 2 {
		t.Fatalf("ListOrders() = %d, %v", len(orders), err)
	}

	// any status may follow any other
	for _, status := range []models.OrderStatus{models.StatusDelivered, models.StatusInProcess, models.StatusOutForDelivery} {
		orders, err = panel.UpdateStatus(ctx, id, status)
		if err != nil {
			t.Fatalf("UpdateStatus(%q) error = %v", status, err)
		}
		if orders[0].Status != status {
			t.Errorf("status = %q, want %q", orders[0].Status, status)
		}
	}

	before := e.srv.Calls("PATCH /orders/{id}")
	if _, err := panel.UpdateStatus(ctx, id, "lost"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("UpdateStatus(lost) error = %v", err)
	}
	if e.srv.Calls("PATCH /orders/{id}") != before {
		t.Error("unknown status sent to backend")
	}

	if _, err := panel.CancelOrder(ctx, id, Declined); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("CancelOrder() declined error = %v", err)
	}
	if e.srv.Calls("DELETE /orders/{id}") != 0 {
		t.Fatal("cancel issued before confirmation")
	}

	orders, err = panel.CancelOrder(ctx, id, Confirmed)
	if err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("orders after cancel = %d, want 1", len(orders))
	}
}

func TestAdminPanel_BackendFailure(t *testing.T) {
	e, panel := newAdminPanel(t, true)
	e.srv.FailNext("DELETE /fooditems/{id}", 1, http.StatusInternalServerError)

	if _, err := panel.DeleteItem(context.Background(), "1", Confirmed); err == nil {
		t.Fatal("DeleteItem() expected error")
	}
	if n := lastNotice(t, e.notices); n.Level != notify.Error || n.Message != "Failed to delete item." {
		t.Errorf("notice = %+v", n)
	}
}

func TestAdminPanel_ListFailureNotifies(t *testing.T) {
	e, panel := newAdminPanel(t, true)
	e.srv.FailNext("GET /admin/listitems", 1, http.StatusInternalServerError)
	e.srv.FailNext("GET /admin/orders", 1, http.StatusInternalServerError)

	if _, err := panel.ListItems(context.Background()); err == nil {
		t.Fatal("ListItems() expected error")
	}
	if n := lastNotice(t, e.notices); n.Level != notify.Error || n.Message != "Could not load food items." {
		t.Errorf("notice = %+v", n)
	}

	if _, err := panel.ListOrders(context.Background()); err == nil {
		t.Fatal("ListOrders() expected error")
	}
	if n := lastNotice(t, e.notices); n.Level != notify.Error || n.Message != "Could not load orders." {
		t.Errorf("notice = %+v", n)
	}
}

func TestAdminPanel_RefreshFailureKeepsSuccess(t *testing.T) {
	e, panel := newAdminPanel(t, true)
	ctx := context.Background()
	id := e.srv.SeedOrder("alice", []models.OrderItem{{Name: "Caesar Salad", Price: 8.99, Quantity: 1}}, fullAddress)

	e.srv.FailNext("GET /admin/orders", 1, http.StatusInternalServerError)
	orders, err := panel.CancelOrder(ctx, id, Confirmed)
	if err != nil {
		t.Fatalf("CancelOrder() error = %v, want nil after successful cancel", err)
	}
	if orders != nil {
		t.Errorf("orders = %v, want nil when refresh fails", orders)
	}
	if n := lastNotice(t, e.notices); n.Title != "Canceled!" {
		t.Errorf("notice = %+v, want Canceled!", n)
	}
	if len(e.srv.Orders()) != 0 {
		t.Errorf("backend orders = %d, want 0", len(e.srv.Orders()))
	}

	e.srv.FailNext("GET /admin/listitems", 1, http.StatusInternalServerError)
	if _, err := panel.DeleteItem(ctx, "1", Confirmed); err != nil {
		t.Fatalf("DeleteItem() error = %v, want nil after successful delete", err)
	}
	if n := lastNotice(t, e.notices); n.Title != "Deleted!" {
		t.Errorf("notice = %+v, want Deleted!", n)
	}
}
