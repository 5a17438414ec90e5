// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/smartshop-backend/internal/pkg/imggen"
)

// ProductHandler handles product detail endpoints
type ProductHandler struct {
	searchService *product.Service
	images        *imggen.Builder
}

// NewProductHandler creates a new product handler
func NewProductHandler(searchService *product.Service, images *imggen.Builder) *ProductHandler {
	return &ProductHandler{
		searchService: searchService,
		images:        images,
	}
}

type viewpointView struct {
	Index     int    `json:"index"`
	Viewpoint string `json:"viewpoint"`
	ImageURL  string `json:"image_url"`
	ThumbURL  string `json:"thumb_url"`
}

// GetViews handles GET /products/:id/views
func (h *ProductHandler) GetViews(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	productID := c.Param("id")

	p, err := h.searchService.Find(c.Request.Context(), sessionID, productID)
	if errors.Is(err, product.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load product",
		})
		return
	}

	views := make([]viewpointView, 0, len(product.Viewpoints))
	for i, vp := range product.Viewpoints {
		views = append(views, viewpointView{
			Index:     i,
			Viewpoint: vp,
			ImageURL:  h.images.DetailURL(p.ID, p.ImagePrompt(), vp),
			ThumbURL:  h.images.ThumbURL(p.ID, p.ImagePrompt(), vp),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product views retrieved successfully",
		"data": gin.H{
			"product": productView{
				Product:  *p,
				ImageURL: h.images.CardURL(p.ID, p.ImagePrompt()),
			},
			"views": views,
		},
	})
}

type zoomRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Zoom handles POST /products/:id/zoom
func (h *ProductHandler) Zoom(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	productID := c.Param("id")

	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.searchService.Find(c.Request.Context(), sessionID, productID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load product",
		})
		return
	}

	geometry := product.Zoom(req.X, req.Y, req.Width, req.Height)

	c.JSON(http.StatusOK, gin.H{
		"message": "Zoom geometry computed",
		"data":    geometry,
	})
}
