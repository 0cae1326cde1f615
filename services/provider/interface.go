package provider

import (
	"context"

	providerRepo "obrafacil/database/repository/provider"
	userRepo "obrafacil/database/repository/user"
	"obrafacil/models"
)

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Plan     string `json:"plan"`
}

// ReviewInput is the payload for a new provider review. The author name is
// resolved from the authenticated account, never from the request body.
type ReviewInput struct {
	AuthorID string
	Rating   float64
	Comment  string
	ImageURL string
}

// ProfileUpdate carries the editable provider profile fields. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Name     *string
	Category *string
	Location *string
	Bio      *string
	Skills   *[]string
}

// ProviderService defines business logic for provider accounts.
type ProviderService interface {
	// RegisterProvider validates and creates a new provider with signup defaults.
	RegisterProvider(p models.Provider) (*AuthResponse, error)
	// AuthenticateProvider verifies credentials and returns ID and token.
	AuthenticateProvider(email, password string) (*AuthResponse, error)
	// GetProviderByID retrieves a provider (safe view) by its unique ID.
	GetProviderByID(providerID string) (*models.Provider, error)
	// SearchProviders returns providers matching the criteria, best rating first.
	SearchProviders(criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error)
	// UpdateProfile updates the editable profile fields.
	UpdateProfile(providerID string, upd ProfileUpdate) (*models.Provider, error)
	// SetAvailability toggles the provider between available and busy.
	SetAvailability(providerID, status string) error
	// ChangePlan switches the provider's subscription plan tier.
	ChangePlan(providerID, plan string) error
	// AddPortfolioItem appends a portfolio entry referencing an uploaded image.
	AddPortfolioItem(ctx context.Context, providerID string, item models.PortfolioItem) error
	// SetAvatar stores the avatar URL.
	SetAvatar(providerID, avatarURL string) error
	// AddReview appends a review and recomputes the aggregate rating atomically.
	AddReview(ctx context.Context, providerID string, input ReviewInput) (*models.Provider, error)
	// UpdateFCMToken stores the push token for the provider's current device.
	UpdateFCMToken(providerID, token string) error
	// RevokeAuthToken revokes the provider's authentication token (logout).
	RevokeAuthToken(providerID string) error
	// DeleteProvider removes a provider record.
	DeleteProvider(providerID string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo  providerRepo.ProviderRepository
	Users userRepo.UserRepository
}
