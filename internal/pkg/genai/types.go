// internal/pkg/genai/types.go
package genai

import "context"

// ProductResult is a product generated by the AI search backend
type ProductResult struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Description  string  `json:"description"`
	Rating       float64 `json:"rating,omitempty"`
	Category     string  `json:"category,omitempty"`
	ImageKeyword string  `json:"imageKeyword"`
	ProductURL   string  `json:"productUrl"`
}

// AddressHint holds the partial address fields a reverse geocode can produce.
// Absent fields stay empty and must never overwrite caller-supplied values.
type AddressHint struct {
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Translation is one localized prize announcement
type Translation struct {
	Language string `json:"language"`
	Message  string `json:"message"`
}

// Service is the single boundary to the external generative AI backend.
// All four operations are best-effort: a degraded answer (empty list,
// empty string) is preferred over a hard failure wherever the caller
// can fall back to local state.
type Service interface {
	// SearchProducts generates 6-8 realistic products for a search query
	SearchProducts(ctx context.Context, query string) ([]ProductResult, error)

	// GeocodeFromCoordinates resolves device coordinates to partial address fields
	GeocodeFromCoordinates(ctx context.Context, lat, lng float64) (*AddressHint, error)

	// EnhanceProfileImage sends an avatar data URL to the image model and
	// returns the enhanced image as a data URL, or "" if no image came back
	EnhanceProfileImage(ctx context.Context, dataURL string) (string, error)

	// TranslatePrizeAmount localizes a prize amount into the supported languages
	TranslatePrizeAmount(ctx context.Context, amount int) ([]Translation, error)
}
