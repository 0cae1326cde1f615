package routes

import (
	"net/http"
	"time"

	"obrafacil/handlers"
	"obrafacil/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers client account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetMeHandler)
		api.PATCH("/me", hb.UpdateUserHandler)
		api.PUT("/me/fcm-token", hb.UpdateUserFCMTokenHandler)
		api.DELETE("/me/token", hb.RevokeUserAuthTokenHandler)
		api.DELETE("/me", hb.DeleteUserHandler)
	}
}

// RegisterProviderRoutes registers provider account endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public endpoints: registration, login, search and safe profile views.
		api.POST("/register", hb.RegisterProviderHandler)
		api.POST("/login", hb.AuthenticateProviderHandler)
		api.GET("", hb.SearchProvidersHandler)
		api.GET("/:id", hb.GetProviderByIDHandler)

		// Review submission is done by authenticated clients.
		api.POST("/:id/reviews", middleware.JWTAuthUserMiddleware(hb.UserRepo), hb.AddReviewHandler)

		// Profile mutations require provider authentication.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.PATCH("/me", hb.UpdateProviderHandler)
		protected.PUT("/me/availability", hb.SetAvailabilityHandler)
		protected.PUT("/me/plan", hb.ChangePlanHandler)
		protected.POST("/me/portfolio", hb.AddPortfolioItemHandler)
		protected.PUT("/me/avatar", hb.UploadAvatarHandler)
		protected.PUT("/me/fcm-token", hb.UpdateProviderFCMTokenHandler)
		protected.DELETE("/me/token", hb.RevokeProviderAuthTokenHandler)
		protected.DELETE("/me", hb.DeleteProviderHandler)
	}
}

// RegisterServiceRoutes registers posting and proposal endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		// Open postings feed and detail views are public.
		api.GET("", hb.ListOpenServicesHandler)
		api.GET("/:id", hb.GetServiceHandler)

		// Client-side operations.
		client := api.Group("")
		client.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		client.POST("", hb.CreateServiceHandler)
		client.GET("/mine", hb.ListMyServicesHandler)
		client.POST("/:id/proposals/:proposalId/accept", hb.AcceptProposalHandler)
		client.POST("/:id/complete", hb.CompleteServiceHandler)

		// Provider-side operations.
		prov := api.Group("")
		prov.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		prov.GET("/proposals/mine", hb.ListMyProposalsHandler)
		prov.POST("/:id/proposals", hb.SubmitProposalHandler)
	}
}

// RegisterChatRoutes registers conversation endpoints. Both clients and
// providers participate, so each side mounts the same handlers behind its own
// auth middleware.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	userGroup := r.Group("/api/chats")
	{
		userGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		userGroup.POST("", hb.OpenChatHandler)
		userGroup.GET("", hb.ListChatsHandler)
		userGroup.POST("/:id/messages", hb.SendMessageHandler)
		userGroup.GET("/:id/messages", hb.ListMessagesHandler)
	}

	provGroup := r.Group("/api/provider-chats")
	{
		provGroup.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		provGroup.POST("", hb.OpenChatHandler)
		provGroup.GET("", hb.ListChatsHandler)
		provGroup.POST("/:id/messages", hb.SendMessageHandler)
		provGroup.GET("/:id/messages", hb.ListMessagesHandler)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.GET("/providers/:id/review-summary", hb.SummarizeReviewsHandler)

		// Recommendations require an authenticated client.
		api.POST("/recommendations", middleware.JWTAuthUserMiddleware(hb.UserRepo), hb.RecommendProvidersHandler)
	}
}

// RegisterPaymentRoutes registers subscription checkout endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.GET("/plans", hb.ListPlansHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		protected.POST("/checkout", hb.StartCheckoutHandler)
		protected.GET("/checkout/:id", hb.GetCheckoutHandler)
	}
}

// RegisterUploadRoutes registers image upload endpoints.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.UploadImageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Olá, aqui é o ObraFácil"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r)
}
