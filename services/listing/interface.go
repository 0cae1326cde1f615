package listing

import (
	"context"

	listingRepo "obrafacil/database/repository/listing"
	providerRepo "obrafacil/database/repository/provider"
	userRepo "obrafacil/database/repository/user"
	"obrafacil/models"
	"obrafacil/services/notification"
)

// ServiceInput is the validated payload for a new service posting.
type ServiceInput struct {
	Title       string  `json:"title" binding:"required,min=5"`
	Description string  `json:"description" binding:"required,min=20"`
	Category    string  `json:"category" binding:"required"`
	Budget      float64 `json:"budget" binding:"required,gt=0"`
}

// ProposalInput is the validated payload for a new bid.
type ProposalInput struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Message string  `json:"message" binding:"required,min=10"`
}

// ListingService defines business logic for services and proposals.
type ListingService interface {
	// CreateService persists a new posting with status "open". The client name
	// is resolved from the caller's own profile, never from input.
	CreateService(ctx context.Context, clientID string, input ServiceInput) (*models.Service, error)
	// GetService retrieves a service with its embedded proposals.
	GetService(serviceID string) (*models.Service, error)
	// ListOpenServices returns open postings, optionally filtered by category.
	ListOpenServices(category string) ([]models.Service, error)
	// ListClientServices returns the postings of one client.
	ListClientServices(clientID string) ([]models.Service, error)
	// ListProviderProposals returns the services a provider has bid on.
	ListProviderProposals(providerID string) ([]models.Service, error)
	// SubmitProposal appends a pending bid. Provider identity fields are
	// resolved from the caller's provider profile.
	SubmitProposal(ctx context.Context, providerID, serviceID string, input ProposalInput) (*models.Proposal, error)
	// AcceptProposal atomically transitions the service to in_progress, the
	// chosen proposal to accepted and the winning provider to busy.
	AcceptProposal(ctx context.Context, callerID, serviceID, proposalID string) (*models.Service, error)
	// CompleteService atomically transitions the service to completed and
	// releases the assigned provider back to available.
	CompleteService(ctx context.Context, callerID, serviceID string) (*models.Service, error)
}

// DefaultListingService is the production implementation.
type DefaultListingService struct {
	Repo      listingRepo.ListingRepository
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
	Notify    notification.NotificationService // optional, best-effort
}
