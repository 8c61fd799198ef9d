package handlers

import (
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
	"github.com/go-chi/chi/v5"
)

// Mount registers the browser facing API on r.
// Every /api route runs with the caller's browser session attached.
func Mount(r chi.Router, registry *storefront.Registry, secureCookies bool, log *slog.Logger) {
	r.Get("/health", NewHealthHandler(registry, log).ServeHTTP)

	catalog := NewCatalogHandler(log)
	quantities := NewQuantityHandler(log)
	auth := NewAuthHandler(log)
	cart := NewCartHandler(log)
	orders := NewOrderHandler(log)
	notices := NewNotificationHandler(log)
	admin := NewAdminHandler(log)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(registry, secureCookies))

		r.Get("/menu", catalog.Menu)
		r.Get("/fooditems", catalog.ListFoodItems)

		r.Get("/items/{id}/quantity", quantities.Get)
		r.Post("/items/{id}/increment", quantities.Increment)
		r.Post("/items/{id}/decrement", quantities.Decrement)

		r.Get("/session", auth.Session)
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		r.Get("/cart", cart.Get)
		r.Delete("/cart/{foodId}", cart.Remove)
		r.Post("/cart/checkout/begin", cart.BeginCheckout)
		r.Post("/cart/checkout/exit", cart.ExitCheckout)
		r.Post("/cart/checkout", cart.Checkout)

		r.Get("/orders", orders.List)
		r.Get("/notifications", notices.Drain)

		r.Post("/admin/login", auth.AdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/admin/logout", auth.AdminLogout)
			r.Get("/admin/items", admin.ListItems)
			r.Post("/admin/items", admin.AddItem)
			r.Delete("/admin/items/{id}", admin.DeleteItem)
			r.Get("/admin/orders", admin.ListOrders)
			r.Patch("/admin/orders/{id}", admin.UpdateStatus)
			r.Delete("/admin/orders/{id}", admin.CancelOrder)
		})
	})
}
