package router

import (
	"net/http"

	"github.com/ekaraca/mekanbul-backend/config"
	"github.com/ekaraca/mekanbul-backend/internal/app/controller"
	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/middleware"
	"github.com/ekaraca/mekanbul-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the route table needs
type Controllers struct {
	Auth     *controller.AuthController
	Place    *controller.PlaceController
	Review   *controller.ReviewController
	Favorite *controller.FavoriteController
	Upload   *controller.UploadController
}

func NewRouter(cfg *config.Config, ctrls Controllers, authMW *middleware.AuthMiddleware, hub *websocket.Hub) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrls.Auth.Register)
			auth.POST("/login", ctrls.Auth.Login)
			auth.POST("/refresh", ctrls.Auth.Refresh)
			auth.POST("/logout", authMW.Authenticate(), ctrls.Auth.Logout)
		}

		places := api.Group("/places")
		{
			places.GET("", ctrls.Place.ListPlaces)
			places.GET("/categories", ctrls.Place.Categories)
			places.GET("/:id", authMW.OptionalAuthenticate(), ctrls.Place.GetPlace)
			places.GET("/:id/reviews", ctrls.Review.ListPlaceReviews)
			places.POST("/:id/reviews", authMW.Authenticate(), ctrls.Review.CreateReview)
			places.POST("/:id/favorite", authMW.Authenticate(), ctrls.Favorite.Toggle)
		}

		reviews := api.Group("/reviews", authMW.Authenticate())
		{
			reviews.PUT("/:id", ctrls.Review.UpdateReview)
			reviews.DELETE("/:id", ctrls.Review.DeleteReview)
		}

		users := api.Group("/users/me", authMW.Authenticate())
		{
			users.GET("", ctrls.Auth.Me)
			users.PUT("", ctrls.Auth.UpdateProfile)
			users.PUT("/password", ctrls.Auth.ChangePassword)
			users.GET("/reviews", ctrls.Review.ListMyReviews)
			users.GET("/favorites", ctrls.Favorite.ListMyFavorites)
		}

		uploads := api.Group("/uploads", authMW.Authenticate())
		{
			uploads.POST("/images", ctrls.Upload.UploadImage)
		}

		admin := api.Group("/admin", authMW.Authenticate(), authMW.RequireRole(string(model.RoleAdmin)))
		{
			admin.POST("/places", ctrls.Place.CreatePlace)
			admin.PUT("/places/:id", ctrls.Place.UpdatePlace)
			admin.DELETE("/places/:id", ctrls.Place.DeletePlace)
		}
	}

	if hub != nil {
		r.GET("/ws/places/:id/ratings", websocket.ServeWS(hub))
	}

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
