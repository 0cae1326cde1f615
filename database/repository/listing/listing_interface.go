package listingRepo

import (
	"context"

	"obrafacil/models"
)

// ServicePrecheck validates the service-side preconditions of a transition and
// names the provider document the transaction must also load. It must be pure:
// the repository may invoke it again when the transaction retries.
type ServicePrecheck func(svc *models.Service) (providerID string, err error)

// TransitionApply produces the committed state of the service and provider for
// a transition. Both inputs are snapshots read inside the transaction; the
// returned values are written back together or not at all.
type TransitionApply func(svc *models.Service, prov *models.Provider) (*models.Service, *models.Provider, error)

// ServiceSearchCriteria filters open-service listings.
type ServiceSearchCriteria struct {
	Category string
	Status   string
	Limit    int64
}

// ListingRepository defines data access for services and their embedded proposals.
type ListingRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// Create inserts a new service record.
	Create(svc *models.Service) error
	// List returns services matching the criteria, newest first.
	List(criteria ServiceSearchCriteria) ([]models.Service, error)
	// ListByClient returns the services posted by a client, newest first.
	ListByClient(clientID string) ([]models.Service, error)
	// ListByProposalProvider returns services containing a proposal from the provider.
	ListByProposalProvider(providerID string) ([]models.Service, error)
	// AddProposal appends a pending proposal iff the service is still open and
	// the provider has no proposal on it yet.
	AddProposal(serviceID, providerID string, proposal models.Proposal) error
	// Transition runs a two-document state transition (service + provider)
	// inside a single transaction: load service, precheck, load provider,
	// apply, conditionally write both. Any precondition error aborts with no
	// partial writes.
	Transition(ctx context.Context, serviceID string, pre ServicePrecheck, apply TransitionApply) (*models.Service, *models.Provider, error)
}
