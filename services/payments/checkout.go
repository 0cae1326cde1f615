package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paymentRepo "obrafacil/database/repository/payment"
	providerRepo "obrafacil/database/repository/provider"
	"obrafacil/models"
	"obrafacil/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// TypeCheckoutCreate is the asynq task type consumed by the checkout worker.
const TypeCheckoutCreate = "checkout:create"

// PaymentService defines checkout and catalog operations. Checkout session
// creation is asynchronous: StartCheckout records a pending document and
// enqueues a task; the worker fills in the Stripe session id/URL (or an error)
// and callers poll GetCheckout.
type PaymentService interface {
	StartCheckout(ctx context.Context, providerID, priceID string) (*models.CheckoutSession, error)
	GetCheckout(ctx context.Context, callerID, checkoutID string) (*models.CheckoutSession, error)
	ListPlans(ctx context.Context) ([]models.Product, []models.Price, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo      paymentRepo.PaymentRepository
	Providers providerRepo.ProviderRepository
	Queue     *asynq.Client
}

// StartCheckout validates the provider and price, records the pending session
// and hands the Stripe call to the worker.
func (s *DefaultPaymentService) StartCheckout(ctx context.Context, providerID, priceID string) (*models.CheckoutSession, error) {
	if priceID == "" {
		return nil, fmt.Errorf("plano inválido")
	}
	if _, err := s.Providers.GetByIDWithProjection(providerID, bson.M{"id": 1}); err != nil {
		return nil, err
	}

	now := time.Now()
	cs := &models.CheckoutSession{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		PriceID:    priceID,
		Status:     models.CheckoutPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.CreateCheckout(cs); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(models.CheckoutTaskPayload{
		CheckoutID: cs.ID,
		ProviderID: providerID,
		PriceID:    priceID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout task: %w", err)
	}

	task := asynq.NewTask(TypeCheckoutCreate, payload)
	if _, err := s.Queue.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		utils.GetLogger().Error("StartCheckout: enqueue failed", zap.Error(err))
		// Leave a failed marker so the poller does not wait forever.
		_ = s.Repo.UpdateCheckout(cs.ID, bson.M{"$set": bson.M{
			"status":       models.CheckoutFailed,
			"errorMessage": "não foi possível iniciar o pagamento, tente novamente",
			"updatedAt":    time.Now(),
		}})
		return nil, utils.ErrUnavailable
	}
	return cs, nil
}

// GetCheckout returns the session, owner-only.
func (s *DefaultPaymentService) GetCheckout(ctx context.Context, callerID, checkoutID string) (*models.CheckoutSession, error) {
	cs, err := s.Repo.GetCheckout(checkoutID)
	if err != nil {
		return nil, err
	}
	if cs.ProviderID != callerID {
		return nil, utils.ErrNotOwner
	}
	return cs, nil
}

// ListPlans returns the mirrored subscription catalog.
func (s *DefaultPaymentService) ListPlans(ctx context.Context) ([]models.Product, []models.Price, error) {
	return s.Repo.ListCatalog()
}
