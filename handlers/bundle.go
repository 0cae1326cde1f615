package handlers

import (
	providerRepoPkg "obrafacil/database/repository/provider"
	userRepoPkg "obrafacil/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct, plus the
// repositories the auth middleware needs for token-hash lookups.
type HandlerBundle struct {
	UserRepo     userRepoPkg.UserRepository
	ProviderRepo providerRepoPkg.ProviderRepository

	// User endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	GetMeHandler               gin.HandlerFunc
	UpdateUserHandler          gin.HandlerFunc
	UpdateUserFCMTokenHandler  gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc
	DeleteUserHandler          gin.HandlerFunc

	// Provider endpoints
	RegisterProviderHandler        gin.HandlerFunc
	AuthenticateProviderHandler    gin.HandlerFunc
	GetProviderByIDHandler         gin.HandlerFunc
	SearchProvidersHandler         gin.HandlerFunc
	UpdateProviderHandler          gin.HandlerFunc
	SetAvailabilityHandler         gin.HandlerFunc
	ChangePlanHandler              gin.HandlerFunc
	AddPortfolioItemHandler        gin.HandlerFunc
	AddReviewHandler               gin.HandlerFunc
	UpdateProviderFCMTokenHandler  gin.HandlerFunc
	RevokeProviderAuthTokenHandler gin.HandlerFunc
	DeleteProviderHandler          gin.HandlerFunc

	// Service and proposal endpoints
	CreateServiceHandler    gin.HandlerFunc
	GetServiceHandler       gin.HandlerFunc
	ListOpenServicesHandler gin.HandlerFunc
	ListMyServicesHandler   gin.HandlerFunc
	ListMyProposalsHandler  gin.HandlerFunc
	SubmitProposalHandler   gin.HandlerFunc
	AcceptProposalHandler   gin.HandlerFunc
	CompleteServiceHandler  gin.HandlerFunc

	// Chat endpoints
	OpenChatHandler     gin.HandlerFunc
	ListChatsHandler    gin.HandlerFunc
	SendMessageHandler  gin.HandlerFunc
	ListMessagesHandler gin.HandlerFunc

	// AI endpoints
	SummarizeReviewsHandler   gin.HandlerFunc
	RecommendProvidersHandler gin.HandlerFunc

	// Payment endpoints
	StartCheckoutHandler gin.HandlerFunc
	GetCheckoutHandler   gin.HandlerFunc
	ListPlansHandler     gin.HandlerFunc

	// Upload endpoints
	UploadImageHandler  gin.HandlerFunc
	UploadAvatarHandler gin.HandlerFunc
}
