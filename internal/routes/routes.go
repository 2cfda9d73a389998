package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"brocante_back_end/internal/config"
	"brocante_back_end/internal/handlers"
	"brocante_back_end/internal/middleware"
)

// RegisterRoutes branche la table de routes. Un seul handler canonique par
// endpoint ; tout est protégé par bearer token sauf register/login.
func RegisterRoutes(r *gin.Engine, products *handlers.ProductHandler) {
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Get("FRONTEND_URL", "http://localhost:5173"), "http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Content-Length"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/change-password", middleware.AuthRequired(), handlers.ChangePassword)
	}

	p := api.Group("/products", middleware.AuthRequired())
	{
		p.GET("", products.ListMine)
		p.POST("", products.Create)
		p.PUT("/:id", products.Update)
		p.DELETE("/:id", products.Delete)

		p.GET("/my/search", products.SearchMine)
		p.GET("/all", products.ListAll)
		p.GET("/all/search", products.SearchAll)

		p.GET("/cart", handlers.GetCart)
		p.POST("/cart/add", handlers.AddToCart)
		p.PUT("/cart/:cart_id", handlers.UpdateCartEntry)
		p.DELETE("/cart/:cart_id", handlers.RemoveCartEntry)
		p.POST("/cart/purchase", handlers.PurchaseCart)

		p.POST("/purchase", handlers.Purchase)
		p.GET("/notifications", handlers.GetNotifications)
	}

	api.GET("/orders", middleware.AuthRequired(), handlers.GetOrders)
	api.POST("/upload", middleware.AuthRequired(), handlers.UploadImage)
}
