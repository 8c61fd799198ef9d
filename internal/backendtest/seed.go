package backendtest

import "github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"

func seedItems() []models.FoodItem {
	return []models.FoodItem{
		{ID: "1", Name: "Chicken Waffle", Image: "https://img.test/chicken-waffle.png", Description: "Fried chicken on a waffle", Category: "Waffle", Price: 12.99},
		{ID: "2", Name: "Belgian Waffle", Image: "https://img.test/belgian-waffle.png", Description: "Classic Belgian waffle", Category: "Waffle", Price: 10.99},
		{ID: "3", Name: "Chocolate Waffle", Image: "https://img.test/chocolate-waffle.png", Description: "Waffle with chocolate sauce", Category: "Waffle", Price: 11.99},
		{ID: "4", Name: "Caesar Salad", Image: "https://img.test/caesar-salad.png", Description: "Romaine, croutons, parmesan", Category: "Salad", Price: 8.99},
		{ID: "5", Name: "Greek Salad", Image: "https://img.test/greek-salad.png", Description: "Feta, olives, tomato", Category: "Salad", Price: 9.49},
		{ID: "6", Name: "Garden Salad", Image: "https://img.test/garden-salad.png", Description: "Seasonal greens", Category: "Salad", Price: 7.99},
		{ID: "7", Name: "Margherita Pizza", Image: "https://img.test/margherita.png", Description: "Tomato, mozzarella, basil", Category: "Pizza", Price: 14.99},
		{ID: "8", Name: "Pepperoni Pizza", Image: "https://img.test/pepperoni.png", Description: "Pepperoni and mozzarella", Category: "Pizza", Price: 16.99},
		{ID: "9", Name: "Veggie Pizza", Image: "https://img.test/veggie.png", Description: "Peppers, onions, mushrooms", Category: "Pizza", Price: 15.49},
	}
}

func seedMenu() []models.MenuCategory {
	return []models.MenuCategory{
		{ID: "m1", Name: "Waffle", Image: "https://img.test/menu-waffle.png"},
		{ID: "m2", Name: "Salad", Image: "https://img.test/menu-salad.png"},
		{ID: "m3", Name: "Pizza", Image: "https://img.test/menu-pizza.png"},
	}
}
