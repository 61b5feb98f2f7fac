package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/smartcard-app/smartcard-golang/internal/handlers"
	"github.com/smartcard-app/smartcard-golang/internal/middleware"
	"github.com/smartcard-app/smartcard-golang/internal/slugs"
)

// CORSMiddleware allows the dashboard frontend origin to call the API.
func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// registerValidators hooks slug governance into gin's binding layer as
// the 'storeslug' rule.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("storeslug", func(fl validator.FieldLevel) bool {
			return slugs.IsValid(fl.Field().String())
		})
	}
}

// SetupRouter wires every route. The public storefront lives at /:slug;
// the tenanthost rewriter in front of this router folds subdomain-form
// requests into that same shape, so this is the only public entry point.
func SetupRouter(h *handlers.Handlers, allowOrigin string) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(CORSMiddleware(allowOrigin))

	// --- Public Storefront (path form; subdomain form is rewritten here) ---
	router.GET("/:slug", h.GetStorefront)
	router.GET("/:slug/*rest", h.GetStorefront)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Slug Governance (Public; the dashboard polls this while typing) ---
		v1.GET("/slugs/check", h.CheckSlug)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.Auth))
		{
			// --- Store Routes ---
			auth.POST("/stores", h.CreateStore)
			auth.GET("/stores/me", h.GetMyStore)
			auth.PUT("/stores/me", h.UpdateMyStore)
			auth.DELETE("/stores/me", h.DeleteMyStore)

			// --- Category Routes ---
			auth.POST("/categories", h.CreateCategory)
			auth.GET("/categories", h.GetMyCategories)
			auth.PUT("/categories/:id", h.UpdateCategory)
			auth.DELETE("/categories/:id", h.DeleteCategory)
			auth.GET("/categories/:id/items", h.GetCategoryItems)

			// --- Item Routes ---
			auth.POST("/items", h.CreateItem)
			auth.PUT("/items/:id", h.UpdateItem)
			auth.DELETE("/items/:id", h.DeleteItem)
		}
	}

	return router
}
