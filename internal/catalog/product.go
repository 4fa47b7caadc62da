package catalog

// Rating holds the review score for a product
type Rating struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// Product represents a browsable catalog entry. Instances are immutable
// once constructed; reloads replace the whole list.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Rating      Rating  `json:"rating"`
	Available   bool    `json:"available"`
}

// Source indicates where the current catalog came from
type Source string

const (
	// SourceRemote means the catalog was loaded from the remote API
	SourceRemote Source = "remote"
	// SourceLocal means the catalog is the built-in sample set
	SourceLocal Source = "local"
)
