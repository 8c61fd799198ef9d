package models

import "github.com/shopspring/decimal"

// CartEntry is one element of the backend cart listing
type CartEntry struct {
	Food  FoodItem `json:"foodId"`
	Count int      `json:"count"`
}

// SetCountRequest pushes the quantity of one item to the cart
type SetCountRequest struct {
	FoodID string `json:"foodId"`
	Count  int    `json:"count"`
}

// CartLine is a flattened cart row ready for display
type CartLine struct {
	FoodID      string          `json:"foodId"`
	Quantity    int             `json:"quantity"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

// LineTotal is unitPrice × quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NewCartLine flattens a backend cart entry
func NewCartLine(e CartEntry) CartLine {
	qty := e.Count
	if qty < 0 {
		qty = 0
	}
	return CartLine{
		FoodID:      e.Food.ID,
		Quantity:    qty,
		Name:        e.Food.Name,
		Image:       e.Food.Image,
		UnitPrice:   e.Food.UnitPrice(),
		Description: e.Food.Description,
		Category:    e.Food.Category,
	}
}

// GrandTotal sums the line totals
func GrandTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
