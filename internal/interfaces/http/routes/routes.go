// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/cart"
	"github.com/your-org/smartshop-backend/internal/domain/checkout"
	"github.com/your-org/smartshop-backend/internal/domain/prize"
	"github.com/your-org/smartshop-backend/internal/domain/product"
	"github.com/your-org/smartshop-backend/internal/domain/profile"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/smartshop-backend/internal/pkg/imggen"
)

// Services bundles the domain services the HTTP surface exposes
type Services struct {
	Search   *product.Service
	Carts    *cart.Service
	Checkout *checkout.Service
	Prizes   *prize.Service
	Profiles *profile.Service
	Images   *imggen.Builder
}

// SetupRoutes registers all API routes on the given group
func SetupRoutes(rg *gin.RouterGroup, svcs *Services) {
	setupSearchRoutes(rg, svcs)
	setupProductRoutes(rg, svcs)
	setupCartRoutes(rg, svcs)
	setupCheckoutRoutes(rg, svcs)
	setupPrizeRoutes(rg, svcs)
	setupProfileRoutes(rg, svcs)
}

func setupSearchRoutes(rg *gin.RouterGroup, svcs *Services) {
	searchHandler := handlers.NewSearchHandler(svcs.Search, svcs.Images)

	search := rg.Group("/search")
	{
		search.POST("", searchHandler.Search)
		search.GET("", searchHandler.GetState)
	}
}

func setupProductRoutes(rg *gin.RouterGroup, svcs *Services) {
	productHandler := handlers.NewProductHandler(svcs.Search, svcs.Images)

	products := rg.Group("/products")
	{
		products.GET("/:id/views", productHandler.GetViews)
		products.POST("/:id/zoom", productHandler.Zoom)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, svcs *Services) {
	cartHandler := handlers.NewCartHandler(svcs.Carts, svcs.Search, svcs.Images)

	carts := rg.Group("/cart")
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("/items", cartHandler.AddItem)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, svcs *Services) {
	checkoutHandler := handlers.NewCheckoutHandler(svcs.Checkout)

	co := rg.Group("/checkout")
	{
		co.POST("", checkoutHandler.Start)
		co.GET("", checkoutHandler.Get)
		co.PUT("/address", checkoutHandler.SubmitAddress)
		co.POST("/locate", checkoutHandler.Locate)
		co.PUT("/payment", checkoutHandler.SelectPayment)
		co.POST("/back", checkoutHandler.Back)
		co.POST("/confirm", checkoutHandler.Confirm)
	}
}

func setupPrizeRoutes(rg *gin.RouterGroup, svcs *Services) {
	prizeHandler := handlers.NewPrizeHandler(svcs.Prizes)

	prizes := rg.Group("/prize")
	{
		prizes.GET("", prizeHandler.Get)
		prizes.POST("/reveal", prizeHandler.Reveal)
		prizes.GET("/translations", prizeHandler.Translations)
	}
}

func setupProfileRoutes(rg *gin.RouterGroup, svcs *Services) {
	profileHandler := handlers.NewProfileHandler(svcs.Profiles)

	profiles := rg.Group("/profile")
	{
		profiles.GET("", profileHandler.Get)
		profiles.PUT("", profileHandler.Update)
		profiles.POST("/avatar", profileHandler.UploadAvatar)
		profiles.POST("/avatar/enhance", profileHandler.EnhanceAvatar)
		profiles.DELETE("/avatar", profileHandler.RemoveAvatar)
	}
}
