package models

import "github.com/shopspring/decimal"

// FoodItem represents a catalog entry served by the backend
// Read-only from the storefront's point of view
type FoodItem struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// UnitPrice returns the price as a decimal for money arithmetic
func (f FoodItem) UnitPrice() decimal.Decimal {
	return decimal.NewFromFloat(f.Price)
}

// MenuCategory is one entry of the menu strip
type MenuCategory struct {
	ID    string `json:"_id"`
	Name  string `json:"menu_name"`
	Image string `json:"menu_image"`
}

// FoodItemInput is the admin payload for creating a catalog entry
type FoodItemInput struct {
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}
