// internal/interfaces/http/handlers/search.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/smartshop-backend/internal/pkg/imggen"
)

// SearchHandler handles AI product search endpoints
type SearchHandler struct {
	searchService *product.Service
	images        *imggen.Builder
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *product.Service, images *imggen.Builder) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		images:        images,
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

// productView is a product enriched with its rendered card image URL
type productView struct {
	product.Product
	ImageURL string `json:"image_url"`
}

type searchStateView struct {
	Query   string        `json:"query"`
	Results []productView `json:"results"`
	Loading bool          `json:"loading"`
	Error   string        `json:"error,omitempty"`
}

func (h *SearchHandler) stateView(state *product.SearchState) searchStateView {
	results := make([]productView, 0, len(state.Results))
	for _, p := range state.Results {
		results = append(results, productView{
			Product:  p,
			ImageURL: h.images.CardURL(p.ID, p.ImagePrompt()),
		})
	}
	return searchStateView{
		Query:   state.Query,
		Results: results,
		Loading: state.Loading,
		Error:   state.Error,
	}
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.searchService.Search(c.Request.Context(), sessionID, req.Query)
	if errors.Is(err, product.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query cannot be empty",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to run search",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed",
		"data":    h.stateView(state),
	})
}

// GetState handles GET /search
func (h *SearchHandler) GetState(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	state, err := h.searchService.State(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load search state",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search state retrieved successfully",
		"data":    h.stateView(state),
	})
}
