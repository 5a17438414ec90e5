// internal/pkg/imggen/url.go
package imggen

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/your-org/smartshop-backend/internal/config"
)

// Builder constructs prompt-to-image URLs for catalog imagery.
// URLs are deterministic: the product id seeds the generator so the
// same product always renders the same picture and stays cacheable.
type Builder struct {
	baseURL    string
	cardSize   int
	detailSize int
	thumbSize  int
}

// NewBuilder creates a URL builder from image configuration
func NewBuilder(cfg config.ImagesConfig) *Builder {
	return &Builder{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		cardSize:   cfg.CardSize,
		detailSize: cfg.DetailSize,
		thumbSize:  cfg.ThumbSize,
	}
}

// CardURL renders the product grid card image
func (b *Builder) CardURL(productID, keyword string) string {
	return b.build(keyword, b.cardSize, productID)
}

// DetailURL renders a large studio shot for one named viewpoint
func (b *Builder) DetailURL(productID, keyword, viewpoint string) string {
	prompt := keyword + " " + viewpoint + " white background studio lighting"
	return b.build(prompt, b.detailSize, productID)
}

// ThumbURL renders the viewpoint selector thumbnail
func (b *Builder) ThumbURL(productID, keyword, viewpoint string) string {
	return b.build(keyword+" "+viewpoint, b.thumbSize, productID)
}

// SummaryURL renders the small order summary image
func (b *Builder) SummaryURL(productID, keyword string) string {
	return b.build(keyword, b.thumbSize, productID)
}

func (b *Builder) build(prompt string, size int, seed string) string {
	return fmt.Sprintf("%s/%s?width=%d&height=%d&nologo=true&seed=%s",
		b.baseURL, url.PathEscape(prompt), size, size, url.QueryEscape(seed))
}
