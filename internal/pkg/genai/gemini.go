// internal/pkg/genai/gemini.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/config"
)

const supportedLanguages = "English, Hindi, Telugu, Tamil, Kannada, Malayalam, Marathi"

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// GeminiProvider talks to the Gemini generateContent REST API
type GeminiProvider struct {
	apiKey      string
	baseURL     string
	textModel   string
	imageModel  string
	temperature float64
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewGeminiProvider creates a Gemini-backed AI service
func NewGeminiProvider(cfg config.GenAIConfig, logger *logrus.Logger) *GeminiProvider {
	return &GeminiProvider{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		textModel:   cfg.TextModel,
		imageModel:  cfg.ImageModel,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

// Request/response shapes for the native generateContent API

type geminiRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason,omitempty"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// generateContent issues one model call and returns the decoded response
func (g *GeminiProvider) generateContent(ctx context.Context, model string, req geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("gemini error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}

	return &decoded, nil
}

// text returns the concatenated text parts of the first candidate
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// SearchProducts asks the text model for 6-8 realistic products matching the query
func (g *GeminiProvider) SearchProducts(ctx context.Context, query string) ([]ProductResult, error) {
	prompt := fmt.Sprintf(`Generate a list of 6-8 realistic e-commerce products based on the search query: %q.
Ensure varied prices and realistic descriptions.
The currency should be USD.
The imageKeyword should be a highly descriptive visual prompt for an AI image generator to produce a clean, professional product photo (e.g. "minimalist white running shoes side view studio lighting").
The productUrl should be a simulated external link (e.g. from amazon, nike, etc).
Return a JSON array of objects with keys: id, name, price, currency, description, rating, category, imageKeyword, productUrl.`, query)

	resp, err := g.generateContent(ctx, g.textModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{
			Text: "You are a high-end e-commerce product search engine backend. You generate realistic product data.",
		}}},
		GenerationConfig: &generationConfig{
			Temperature:      g.temperature,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, err
	}

	products := decodeProducts(resp.text())
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()[:9]
		}
		if products[i].Currency == "" {
			products[i].Currency = "USD"
		}
	}

	g.logger.WithFields(logrus.Fields{
		"query":   query,
		"results": len(products),
	}).Debug("product search completed")

	return products, nil
}

// GeocodeFromCoordinates asks the text model to resolve coordinates into address fields
func (g *GeminiProvider) GeocodeFromCoordinates(ctx context.Context, lat, lng float64) (*AddressHint, error) {
	prompt := fmt.Sprintf(`Identify the location at latitude %.6f, longitude %.6f.
Return a JSON object with keys: city, state, zipCode, country.
Use empty strings for fields you cannot determine. Do not guess street-level detail.`, lat, lng)

	resp, err := g.generateContent(ctx, g.textModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, err
	}

	var hint AddressHint
	if err := json.Unmarshal([]byte(stripCodeFences(resp.text())), &hint); err != nil {
		return nil, fmt.Errorf("failed to parse geocode response: %w", err)
	}

	return &hint, nil
}

// EnhanceProfileImage sends the avatar to the image model with a fixed
// enhancement instruction. Returns "" when the model produced no image.
func (g *GeminiProvider) EnhanceProfileImage(ctx context.Context, dataURL string) (string, error) {
	base64Data := dataURLPrefix.ReplaceAllString(dataURL, "")

	resp, err := g.generateContent(ctx, g.imageModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{
			{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64Data}},
			{Text: "Enhance this profile picture. Improve image quality, adjust brightness and contrast for a professional look. Ensure it is a clear headshot. Apply a subtle, professional blurred background if the current one is messy. Return only the image."},
		}}},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) > 0 {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}

	return "", nil
}

// TranslatePrizeAmount localizes the prize amount into the fixed language set
func (g *GeminiProvider) TranslatePrizeAmount(ctx context.Context, amount int) ([]Translation, error) {
	prompt := fmt.Sprintf(`Translate the prize amount ₹%d into the following languages: %s.

For each language, return the formatted string exactly following this pattern: "₹%d – [Amount in Words]".

Format Requirements:
- The output must be a JSON array.
- Each item must be an object with keys: 'language' and 'message'.
- The 'message' value must be the full string (e.g. "₹%d – One Thousand Rupees").`,
		amount, supportedLanguages, amount, amount)

	resp, err := g.generateContent(ctx, g.textModel, geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, err
	}

	var translations []Translation
	if err := json.Unmarshal([]byte(stripCodeFences(resp.text())), &translations); err != nil {
		g.logger.WithError(err).Warn("failed to parse prize translations")
		return []Translation{}, nil
	}

	return translations, nil
}

// decodeProducts parses the model output tolerantly: plain arrays,
// fenced arrays, and {"products": [...]} wrappers are all accepted.
// Anything unparseable yields an empty list.
func decodeProducts(text string) []ProductResult {
	text = stripCodeFences(text)
	if text == "" {
		return []ProductResult{}
	}

	var products []ProductResult
	if err := json.Unmarshal([]byte(text), &products); err == nil {
		return products
	}

	var wrapper struct {
		Products []ProductResult `json:"products"`
	}
	if err := json.Unmarshal([]byte(text), &wrapper); err == nil && wrapper.Products != nil {
		return wrapper.Products
	}

	return []ProductResult{}
}

// stripCodeFences removes a surrounding markdown code fence if present
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
