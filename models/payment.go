package models

import (
	"time"
)

// Checkout session statuses. The worker moves a session from pending to ready
// or failed; the document is the only channel back to the caller.
const (
	CheckoutPending = "pending"
	CheckoutReady   = "ready"
	CheckoutFailed  = "failed"
)

// CheckoutSession mirrors a Stripe Checkout Session being created asynchronously.
type CheckoutSession struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"providerId" json:"providerId"`
	PriceID      string    `bson:"priceId" json:"priceId"`
	Status       string    `bson:"status" json:"status"`
	SessionID    string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	SessionURL   string    `bson:"sessionUrl,omitempty" json:"sessionUrl,omitempty"`
	ErrorMessage string    `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Product mirrors a Stripe product (subscription plan catalog).
type Product struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Active      bool   `bson:"active" json:"active"`
}

// Price mirrors a Stripe price attached to a product.
type Price struct {
	ID         string `bson:"id" json:"id"`
	ProductID  string `bson:"productId" json:"productId"`
	UnitAmount int64  `bson:"unitAmount" json:"unitAmount"` // in centavos
	Currency   string `bson:"currency" json:"currency"`
	Interval   string `bson:"interval,omitempty" json:"interval,omitempty"`
	Active     bool   `bson:"active" json:"active"`
}

// CheckoutTaskPayload is the asynq task payload consumed by the checkout worker.
type CheckoutTaskPayload struct {
	CheckoutID string `json:"checkoutId"`
	ProviderID string `json:"providerId"`
	PriceID    string `json:"priceId"`
}
