package paymentRepo

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

// PaymentRepository defines data access for checkout sessions and the mirrored
// Stripe catalog.
type PaymentRepository interface {
	// CreateCheckout inserts a new pending checkout session document.
	CreateCheckout(cs *models.CheckoutSession) error
	// GetCheckout retrieves a checkout session by its ID.
	GetCheckout(id string) (*models.CheckoutSession, error)
	// UpdateCheckout patches a checkout session with the given update document.
	UpdateCheckout(id string, updateDoc bson.M) error
	// ReplaceCatalog overwrites the products/prices mirror.
	ReplaceCatalog(products []models.Product, prices []models.Price) error
	// ListCatalog returns the active products and prices.
	ListCatalog() ([]models.Product, []models.Price, error)
}

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	checkouts *mongo.Collection
	products  *mongo.Collection
	prices    *mongo.Collection
}

// NewMongoPaymentRepo creates a PaymentRepository backed by the
// "checkout_sessions", "products" and "prices" collections.
func NewMongoPaymentRepo(db *mongo.Database) PaymentRepository {
	return &MongoPaymentRepo{
		checkouts: db.Collection("checkout_sessions"),
		products:  db.Collection("products"),
		prices:    db.Collection("prices"),
	}
}

func newContext(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}

func (r *MongoPaymentRepo) CreateCheckout(cs *models.CheckoutSession) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.checkouts.InsertOne(ctx, cs); err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) GetCheckout(id string) (*models.CheckoutSession, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cs models.CheckoutSession
	if err := r.checkouts.FindOne(ctx, bson.M{"id": id}).Decode(&cs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch checkout session %s: %w", id, err)
	}
	return &cs, nil
}

func (r *MongoPaymentRepo) UpdateCheckout(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.checkouts.UpdateOne(ctx, bson.M{"id": id}, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update checkout session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *MongoPaymentRepo) ReplaceCatalog(products []models.Product, prices []models.Price) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	if _, err := r.products.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear products mirror: %w", err)
	}
	if _, err := r.prices.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear prices mirror: %w", err)
	}

	if len(products) > 0 {
		docs := make([]interface{}, len(products))
		for i := range products {
			docs[i] = products[i]
		}
		if _, err := r.products.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to write products mirror: %w", err)
		}
	}
	if len(prices) > 0 {
		docs := make([]interface{}, len(prices))
		for i := range prices {
			docs[i] = prices[i]
		}
		if _, err := r.prices.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to write prices mirror: %w", err)
		}
	}
	return nil
}

func (r *MongoPaymentRepo) ListCatalog() ([]models.Product, []models.Price, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.products.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, nil, fmt.Errorf("failed to decode products: %w", err)
	}

	cursor, err = r.prices.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list prices: %w", err)
	}
	var prices []models.Price
	if err := cursor.All(ctx, &prices); err != nil {
		return nil, nil, fmt.Errorf("failed to decode prices: %w", err)
	}
	return products, prices, nil
}
