// internal/pkg/genai/mock.go
package genai

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider serves canned AI responses for keyless development and tests
type MockProvider struct{}

// NewMockProvider creates the mock AI service
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SearchProducts returns a small deterministic catalog themed on the query
func (m *MockProvider) SearchProducts(ctx context.Context, query string) ([]ProductResult, error) {
	q := strings.TrimSpace(query)
	return []ProductResult{
		{
			ID:           "mock-1",
			Name:         fmt.Sprintf("Premium %s", q),
			Price:        129.99,
			Currency:     "USD",
			Description:  fmt.Sprintf("A premium %s with excellent build quality and modern design.", q),
			Rating:       4.7,
			Category:     "Featured",
			ImageKeyword: fmt.Sprintf("premium %s product photo studio lighting", q),
			ProductURL:   "https://www.amazon.com/dp/MOCK1",
		},
		{
			ID:           "mock-2",
			Name:         fmt.Sprintf("Budget %s", q),
			Price:        24.99,
			Currency:     "USD",
			Description:  fmt.Sprintf("An affordable %s that covers the essentials.", q),
			Rating:       4.1,
			Category:     "Value",
			ImageKeyword: fmt.Sprintf("minimalist %s white background", q),
			ProductURL:   "https://www.amazon.com/dp/MOCK2",
		},
		{
			ID:           "mock-3",
			Name:         fmt.Sprintf("Pro %s XL", q),
			Price:        349.00,
			Currency:     "USD",
			Description:  fmt.Sprintf("The professional-grade %s for demanding use.", q),
			Rating:       4.9,
			Category:     "Professional",
			ImageKeyword: fmt.Sprintf("professional %s close up detail shot", q),
			ProductURL:   "https://www.nike.com/t/MOCK3",
		},
	}, nil
}

// GeocodeFromCoordinates returns a fixed detected address
func (m *MockProvider) GeocodeFromCoordinates(ctx context.Context, lat, lng float64) (*AddressHint, error) {
	return &AddressHint{
		City:    "San Francisco",
		State:   "CA",
		ZipCode: "94105",
		Country: "USA",
	}, nil
}

// EnhanceProfileImage echoes the input back as the "enhanced" image
func (m *MockProvider) EnhanceProfileImage(ctx context.Context, dataURL string) (string, error) {
	return dataURL, nil
}

// TranslatePrizeAmount returns the full language set with placeholder wording
func (m *MockProvider) TranslatePrizeAmount(ctx context.Context, amount int) ([]Translation, error) {
	words := map[string]string{
		"English":   "Rupees",
		"Hindi":     "रुपये",
		"Telugu":    "రూపాయలు",
		"Tamil":     "ரூபாய்",
		"Kannada":   "ರೂಪಾಯಿ",
		"Malayalam": "രൂപ",
		"Marathi":   "रुपये",
	}
	languages := []string{"English", "Hindi", "Telugu", "Tamil", "Kannada", "Malayalam", "Marathi"}

	translations := make([]Translation, 0, len(languages))
	for _, lang := range languages {
		translations = append(translations, Translation{
			Language: lang,
			Message:  fmt.Sprintf("₹%d – %d %s", amount, amount, words[lang]),
		})
	}
	return translations, nil
}
