package routes

import (
	"net/http"
	"time"

	"oneday/handlers"
	"oneday/middleware"
	"oneday/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers signup, signin and verification endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.POST("/auth/signup", hb.SignUp)
		api.POST("/auth/signin", hb.SignIn)
		api.POST("/auth/demo", hb.StartDemo)
		api.POST("/auth/signout", auth, hb.SignOut)

		api.POST("/verification/send", hb.SendVerificationCode)
		api.POST("/verification/verify", hb.VerifyCode)
		api.GET("/nickname/check", hb.CheckNickname)
	}
}

// RegisterCatalogRoutes registers the public class and plan listings.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/classes", hb.ListClasses)
		api.GET("/classes/:id", hb.GetClass)
		api.GET("/membership/plans", hb.ListPlans)
	}
}

// RegisterSessionRoutes registers everything that acts on the caller's session.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/session")
	api.Use(auth)
	{
		api.GET("/screen", hb.GetScreen)
		api.POST("/navigate", hb.Navigate)
		api.PUT("/profile", hb.UpdateProfile)
		api.GET("/nickname/check", hb.CheckNickname)
		api.PUT("/fcm-token", hb.UpdateFCMToken)

		api.GET("/favorites", hb.ListFavorites)
		api.POST("/favorites/:id", hb.ToggleFavorite)
		api.GET("/coupons", hb.ListCoupons)

		api.GET("/bookings", hb.ListBookings)
		api.POST("/bookings", hb.Book)
		api.POST("/bookings/:id/cancel", hb.CancelBooking)
		api.POST("/bookings/:id/complete", hb.CompleteBooking)

		api.GET("/after-class/:id", hb.GetAfterClass)
		api.POST("/after-class/:id/review", hb.SubmitReview)
		api.POST("/after-class/:id/pick", hb.Pick)
		api.POST("/after-class/:id/confirm", hb.ConfirmSelection)

		api.GET("/membership", hb.GetMembership)
		api.POST("/membership", hb.PurchaseMembership)
		api.DELETE("/membership", hb.CancelMembership)

		api.GET("/chat", hb.GetChat)
		api.POST("/chat", hb.SendMessage)
		api.GET("/chat/stream", hb.StreamChat)
	}
}

// RegisterHealthRoute registers the health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": utils.GetHealthStatus()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, sessions middleware.SessionLookup, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	auth := middleware.SessionAuth(hb.Tokens, sessions)
	RegisterAuthRoutes(r, hb, auth)
	RegisterCatalogRoutes(r, hb)
	RegisterSessionRoutes(r, hb, auth)
	RegisterHealthRoute(r)
}
