package payments

import (
	"context"
	"fmt"

	"obrafacil/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/product"
)

// SyncCatalog refreshes the products/prices mirror from Stripe. Run at boot
// and whenever the plan catalog changes upstream.
func (s *DefaultPaymentService) SyncCatalog(ctx context.Context) error {
	var products []models.Product
	prodIter := product.List(&stripe.ProductListParams{
		Active: stripe.Bool(true),
	})
	for prodIter.Next() {
		p := prodIter.Product()
		products = append(products, models.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Active:      p.Active,
		})
	}
	if err := prodIter.Err(); err != nil {
		return fmt.Errorf("failed to list stripe products: %w", err)
	}

	var prices []models.Price
	priceIter := price.List(&stripe.PriceListParams{
		Active: stripe.Bool(true),
	})
	for priceIter.Next() {
		p := priceIter.Price()
		mirrored := models.Price{
			ID:         p.ID,
			UnitAmount: p.UnitAmount,
			Currency:   string(p.Currency),
			Active:     p.Active,
		}
		if p.Product != nil {
			mirrored.ProductID = p.Product.ID
		}
		if p.Recurring != nil {
			mirrored.Interval = string(p.Recurring.Interval)
		}
		prices = append(prices, mirrored)
	}
	if err := priceIter.Err(); err != nil {
		return fmt.Errorf("failed to list stripe prices: %w", err)
	}

	return s.Repo.ReplaceCatalog(products, prices)
}
