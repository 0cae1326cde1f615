package providerRepo

import (
	"context"

	"obrafacil/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderSearchCriteria defines criteria for a provider search.
type ProviderSearchCriteria struct {
	Category  string
	Location  string
	MinRating float64
	Plan      string
	Limit     int64
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetByEmail retrieves a provider by its email address.
	GetByEmail(email string) (*models.Provider, error)
	// GetByIDWithProjection retrieves a provider by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error)
	// GetManyByIDs retrieves the providers whose ids are in the given set.
	GetManyByIDs(ids []string) ([]models.Provider, error)
	// Search returns providers matching the criteria, best rating first.
	Search(criteria ProviderSearchCriteria) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// UpdateWithDocument patches a provider document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// Delete removes a provider record by its ID.
	Delete(id string) error
	// AddReview appends a review and recomputes the aggregate rating inside a
	// single transaction. The fold function receives the current provider state
	// and returns the updated rating fields, or an error to abort.
	AddReview(ctx context.Context, providerID string, fold ReviewFold) (*models.Provider, error)
}

// ReviewFold computes the post-review state of a provider. It must be pure:
// the repository may invoke it again when the transaction retries.
type ReviewFold func(prov *models.Provider) (*models.Provider, error)
