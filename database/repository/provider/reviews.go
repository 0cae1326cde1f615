package providerRepo

import (
	"context"
	"errors"
	"fmt"

	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddReview loads the provider, applies the fold and writes the result back,
// all inside one Mongo transaction so two concurrent reviewers both land in the
// aggregate. The fold decides rejection (duplicate author) before any write.
func (r *MongoProviderRepo) AddReview(ctx context.Context, providerID string, fold ReviewFold) (*models.Provider, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated *models.Provider
	txnFn := func(sc mongo.SessionContext) error {
		var prov models.Provider
		if err := r.coll.FindOne(sc, bson.M{"id": providerID}).Decode(&prov); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return utils.ErrNotFound
			}
			return fmt.Errorf("failed to fetch provider with id %s: %w", providerID, err)
		}

		next, err := fold(&prov)
		if err != nil {
			return err
		}

		update := bson.M{"$set": bson.M{
			"reviews":     next.Reviews,
			"rating":      next.Rating,
			"reviewCount": next.ReviewCount,
			"updatedAt":   next.UpdatedAt,
		}}
		res, err := r.coll.UpdateOne(sc, bson.M{"id": providerID}, update)
		if err != nil {
			return fmt.Errorf("failed to write review for provider %s: %w", providerID, err)
		}
		if res.MatchedCount == 0 {
			return utils.ErrNotFound
		}
		updated = next
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, err
	}

	return updated, nil
}
