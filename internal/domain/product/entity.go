// internal/domain/product/entity.go
package product

import "github.com/your-org/smartshop-backend/internal/pkg/genai"

// Product represents one AI-generated catalog entry
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Description  string  `json:"description"`
	Rating       float64 `json:"rating,omitempty"`
	Category     string  `json:"category,omitempty"`
	ImageKeyword string  `json:"image_keyword"`
	ProductURL   string  `json:"product_url"`
}

// SearchState is the per-session search view: the last query, its
// results and any user-facing error from the last attempt.
type SearchState struct {
	Query   string    `json:"query"`
	Results []Product `json:"results"`
	Loading bool      `json:"loading"`
	Error   string    `json:"error,omitempty"`
	Token   int64     `json:"token"`
}

// ImagePrompt returns the text used to render this product's imagery,
// falling back to the product name when no keyword was generated
func (p *Product) ImagePrompt() string {
	if p.ImageKeyword != "" {
		return p.ImageKeyword
	}
	return p.Name
}

// FromResult converts an AI search result into a catalog product
func FromResult(r genai.ProductResult) Product {
	return Product{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price,
		Currency:     r.Currency,
		Description:  r.Description,
		Rating:       r.Rating,
		Category:     r.Category,
		ImageKeyword: r.ImageKeyword,
		ProductURL:   r.ProductURL,
	}
}

// FromResults converts a batch of AI search results
func FromResults(results []genai.ProductResult) []Product {
	products := make([]Product, 0, len(results))
	for _, r := range results {
		products = append(products, FromResult(r))
	}
	return products
}
