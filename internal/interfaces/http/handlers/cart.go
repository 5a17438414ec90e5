// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/cart"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/smartshop-backend/internal/pkg/imggen"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService   *cart.Service
	searchService *product.Service
	images        *imggen.Builder
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, searchService *product.Service, images *imggen.Builder) *CartHandler {
	return &CartHandler{
		cartService:   cartService,
		searchService: searchService,
		images:        images,
	}
}

type cartItemView struct {
	cart.Item
	ImageURL string `json:"image_url"`
}

type cartView struct {
	Items     []cartItemView `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     float64        `json:"total"`
}

func (h *CartHandler) view(c *cart.Cart) cartView {
	items := make([]cartItemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemView{
			Item:     item,
			ImageURL: h.images.SummaryURL(item.ProductID, item.ImageKeyword),
		})
	}
	return cartView{
		Items:     items,
		ItemCount: c.ItemCount,
		Total:     c.Total,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	userCart, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.view(userCart),
	})
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.searchService.Find(c.Request.Context(), sessionID, req.ProductID)
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

	userCart, err := h.cartService.AddItem(c.Request.Context(), sessionID, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add item to cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.view(userCart),
	})
}
