package listingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepo implements ListingRepository using MongoDB. Proposals are
// embedded in the service document, so a proposal write is a service write.
type MongoListingRepo struct {
	coll         *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoListingRepo creates a new ListingRepository backed by the "services"
// collection. The provider collection is needed for cross-document transitions.
func NewMongoListingRepo(db *mongo.Database) ListingRepository {
	return &MongoListingRepo{
		coll:         db.Collection("services"),
		providerColl: db.Collection("providers"),
	}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoListingRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoListingRepo) Create(svc *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoListingRepo) List(criteria ServiceSearchCriteria) ([]models.Service, error) {
	filter := bson.M{}
	if criteria.Category != "" {
		filter["category"] = bson.M{"$regex": criteria.Category, "$options": "i"}
	}
	if criteria.Status != "" {
		filter["status"] = criteria.Status
	}
	limit := criteria.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return r.find(filter, limit)
}

func (r *MongoListingRepo) ListByClient(clientID string) ([]models.Service, error) {
	return r.find(bson.M{"clientId": clientID}, 100)
}

func (r *MongoListingRepo) ListByProposalProvider(providerID string) ([]models.Service, error) {
	return r.find(bson.M{"proposals.providerId": providerID}, 100)
}

func (r *MongoListingRepo) find(filter bson.M, limit int64) ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("service query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return services, nil
}

// AddProposal appends the proposal under a conditional filter so a bid can
// never land on a closed service or duplicate an earlier bid by the same
// provider, regardless of interleaving.
func (r *MongoListingRepo) AddProposal(serviceID, providerID string, proposal models.Proposal) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":                   serviceID,
		"status":               models.ServiceOpen,
		"proposals.providerId": bson.M{"$ne": providerID},
	}
	update := bson.M{"$push": bson.M{"proposals": proposal}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add proposal to service %s: %w", serviceID, err)
	}
	if result.MatchedCount == 0 {
		// Re-read to report the precise reason.
		svc, err := r.GetByID(serviceID)
		if err != nil {
			return err
		}
		if svc.Status != models.ServiceOpen {
			return utils.ErrNotOpen
		}
		return utils.ErrDuplicateBid
	}
	return nil
}
