package catalog

// CategoryAll is the pseudo-category matching every product
const CategoryAll = "All"

// SampleProducts returns the built-in catalog used when the remote API
// is unreachable. The list is never empty.
func SampleProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Wireless Headphones",
			Description: "Over-ear wireless headphones with active noise cancellation",
			Price:       129.99,
			ImageURL:    "https://example.com/images/headphones.jpg",
			Category:    "Electronics",
			Rating:      Rating{Score: 4.5, Count: 231},
			Available:   true,
		},
		{
			ID:          2,
			Name:        "Running Shoes",
			Description: "Lightweight road running shoes with cushioned midsole",
			Price:       89.5,
			ImageURL:    "https://example.com/images/running-shoes.jpg",
			Category:    "Shoes",
			Rating:      Rating{Score: 4.2, Count: 187},
			Available:   true,
		},
		{
			ID:          3,
			Name:        "Coffee Maker",
			Description: "12-cup programmable drip coffee maker with thermal carafe",
			Price:       64.0,
			ImageURL:    "https://example.com/images/coffee-maker.jpg",
			Category:    "Home",
			Rating:      Rating{Score: 4.0, Count: 95},
			Available:   true,
		},
		{
			ID:          4,
			Name:        "Backpack",
			Description: "Water-resistant 25L daypack with laptop sleeve",
			Price:       49.99,
			ImageURL:    "https://example.com/images/backpack.jpg",
			Category:    "Accessories",
			Rating:      Rating{Score: 4.7, Count: 312},
			Available:   true,
		},
		{
			ID:          5,
			Name:        "Desk Lamp",
			Description: "LED desk lamp with adjustable color temperature",
			Price:       27.85,
			ImageURL:    "https://example.com/images/desk-lamp.jpg",
			Category:    "Home",
			Rating:      Rating{Score: 3.9, Count: 64},
			Available:   true,
		},
		{
			ID:          6,
			Name:        "Smart Watch",
			Description: "Fitness tracking smart watch with heart rate monitor",
			Price:       199.0,
			ImageURL:    "https://example.com/images/smart-watch.jpg",
			Category:    "Electronics",
			Rating:      Rating{Score: 4.3, Count: 420},
			Available:   false,
		},
	}
}

// SampleCategories returns the category list for the sample catalog,
// with the "All" pseudo-category first.
func SampleCategories() []string {
	return []string{CategoryAll, "Electronics", "Shoes", "Home", "Accessories"}
}
