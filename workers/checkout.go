package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"obrafacil/config"
	paymentRepo "obrafacil/database/repository/payment"
	"obrafacil/models"
	"obrafacil/services/payments"
	"obrafacil/utils"

	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CheckoutWorker consumes checkout tasks and fills in the mirrored session
// document with the Stripe Checkout Session, or a failure message.
type CheckoutWorker struct {
	srv  *asynq.Server
	repo paymentRepo.PaymentRepository
}

// NewCheckoutWorker builds the worker on the shared Redis queue.
func NewCheckoutWorker(repo paymentRepo.PaymentRepository) *CheckoutWorker {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})
	return &CheckoutWorker{srv: srv, repo: repo}
}

// Start runs the worker in the background.
func (w *CheckoutWorker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(payments.TypeCheckoutCreate, w.handleCheckoutCreate)

	go func() {
		if err := w.srv.Run(mux); err != nil {
			utils.GetLogger().Error("checkout worker stopped", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown stops the worker, waiting for in-flight tasks.
func (w *CheckoutWorker) Shutdown() {
	w.srv.Shutdown()
}

func (w *CheckoutWorker) handleCheckoutCreate(ctx context.Context, task *asynq.Task) error {
	var p models.CheckoutTaskPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		utils.GetLogger().Error("checkout worker: invalid payload", zap.Error(err))
		return fmt.Errorf("invalid checkout payload: %w", err)
	}

	appURL := config.AppConfig.StripeAppURL
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(p.ProviderID),
		SuccessURL:        stripe.String(appURL + "/planos/sucesso?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(appURL + "/planos"),
	}

	sess, err := session.New(params)
	if err != nil {
		utils.GetLogger().Error("checkout worker: stripe session creation failed",
			zap.String("checkoutId", p.CheckoutID), zap.Error(err))
		// Persist the failure for the poller; details stay server-side only.
		updErr := w.repo.UpdateCheckout(p.CheckoutID, bson.M{"$set": bson.M{
			"status":       models.CheckoutFailed,
			"errorMessage": "não foi possível criar a sessão de pagamento, tente novamente",
			"updatedAt":    time.Now(),
		}})
		if updErr != nil {
			return updErr
		}
		return nil
	}

	return w.repo.UpdateCheckout(p.CheckoutID, bson.M{"$set": bson.M{
		"status":     models.CheckoutReady,
		"sessionId":  sess.ID,
		"sessionUrl": sess.URL,
		"updatedAt":  time.Now(),
	}})
}
