package listingRepo

import (
	"context"
	"errors"
	"fmt"

	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Transition executes a service/provider state transition inside one Mongo
// transaction. The read set is the service document and the provider document
// the precheck names; the write set is the full post-transition state of both.
// A concurrent writer invalidating the snapshot aborts the commit and the
// driver retries; a precondition error aborts with no partial writes.
func (r *MongoListingRepo) Transition(
	ctx context.Context,
	serviceID string,
	pre ServicePrecheck,
	apply TransitionApply,
) (*models.Service, *models.Provider, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var outSvc *models.Service
	var outProv *models.Provider

	txnFn := func(sc mongo.SessionContext) error {
		var svc models.Service
		if err := r.coll.FindOne(sc, bson.M{"id": serviceID}).Decode(&svc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return utils.ErrNotFound
			}
			return fmt.Errorf("failed to fetch service with id %s: %w", serviceID, err)
		}

		providerID, err := pre(&svc)
		if err != nil {
			return err
		}

		var prov models.Provider
		if err := r.providerColl.FindOne(sc, bson.M{"id": providerID}).Decode(&prov); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return utils.ErrNotFound
			}
			return fmt.Errorf("failed to fetch provider with id %s: %w", providerID, err)
		}

		nextSvc, nextProv, err := apply(&svc, &prov)
		if err != nil {
			return err
		}

		// Conditional on the status read above so a racing transition cannot
		// apply twice even outside snapshot isolation.
		svcRes, err := r.coll.UpdateOne(sc,
			bson.M{"id": serviceID, "status": svc.Status},
			bson.M{"$set": nextSvc},
		)
		if err != nil {
			return fmt.Errorf("failed to update service %s: %w", serviceID, err)
		}
		if svcRes.MatchedCount == 0 {
			return utils.ErrNotOpen
		}

		provRes, err := r.providerColl.UpdateOne(sc,
			bson.M{"id": providerID},
			bson.M{"$set": nextProv},
		)
		if err != nil {
			return fmt.Errorf("failed to update provider %s: %w", providerID, err)
		}
		if provRes.MatchedCount == 0 {
			return utils.ErrNotFound
		}

		outSvc, outProv = nextSvc, nextProv
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
		return nil, nil, err
	}

	return outSvc, outProv, nil
}
