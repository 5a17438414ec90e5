// internal/interfaces/http/handlers/prize.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/prize"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/smartshop-backend/internal/pkg/genai"
)

// PrizeHandler handles the post-purchase prize endpoints
type PrizeHandler struct {
	prizeService *prize.Service
}

// NewPrizeHandler creates a new prize handler
func NewPrizeHandler(prizeService *prize.Service) *PrizeHandler {
	return &PrizeHandler{
		prizeService: prizeService,
	}
}

// prizeView hides the amount until the user reveals it
type prizeView struct {
	Revealed     bool                `json:"revealed"`
	Revealing    bool                `json:"revealing"`
	Amount       int                 `json:"amount,omitempty"`
	Translations []genai.Translation `json:"translations"`
}

func view(state *prize.State) prizeView {
	v := prizeView{
		Revealed:     state.Revealed,
		Revealing:    state.Revealing,
		Translations: state.Translations,
	}
	if state.Revealed {
		v.Amount = state.Amount
	}
	return v
}

func prizeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prize.ErrNoPrize):
		c.JSON(http.StatusNotFound, gin.H{"error": "No prize available. Complete an order first."})
	case errors.Is(err, prize.ErrRevealInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Prize reveal already in progress"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prize operation failed"})
	}
}

// Get handles GET /prize
func (h *PrizeHandler) Get(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	state, err := h.prizeService.Get(c.Request.Context(), sessionID)
	if err != nil {
		prizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prize state retrieved successfully",
		"data":    view(state),
	})
}

// Reveal handles POST /prize/reveal
func (h *PrizeHandler) Reveal(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	state, err := h.prizeService.Reveal(c.Request.Context(), sessionID)
	if err != nil {
		prizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prize revealed",
		"data":    view(state),
	})
}

// Translations handles GET /prize/translations
func (h *PrizeHandler) Translations(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	filter := c.Query("language")

	result, err := h.prizeService.Filtered(c.Request.Context(), sessionID, filter)
	if err != nil {
		prizeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Translations retrieved successfully",
		"data":    result,
	})
}
