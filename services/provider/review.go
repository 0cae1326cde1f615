package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// AddReview validates the payload and folds the review into the provider's
// aggregate rating inside a single transaction. Two concurrent reviews from
// different authors both land; a duplicate author aborts with no writes.
func (s *DefaultProviderService) AddReview(ctx context.Context, providerID string, input ReviewInput) (*models.Provider, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("a nota deve estar entre 1 e 5")
	}
	if len(input.Comment) < 10 {
		return nil, fmt.Errorf("o comentário deve ter pelo menos 10 caracteres")
	}
	if input.AuthorID == "" {
		return nil, utils.ErrNotOwner
	}

	author, err := s.Users.GetByIDWithProjection(input.AuthorID, bson.M{"name": 1})
	if err != nil {
		return nil, fmt.Errorf("falha ao resolver o autor da avaliação: %w", err)
	}

	review := models.Review{
		AuthorID:   input.AuthorID,
		AuthorName: author.Name,
		Rating:     input.Rating,
		Comment:    input.Comment,
		ImageURL:   input.ImageURL,
		CreatedAt:  time.Now(),
	}

	updated, err := s.Repo.AddReview(ctx, providerID, func(prov *models.Provider) (*models.Provider, error) {
		return foldReview(prov, review)
	})
	if err != nil {
		return nil, err
	}
	safe := updated.PublicView()
	return &safe, nil
}

// foldReview computes the provider state after appending the review: one
// review per author, running mean rounded to two decimals. Pure so the
// transaction can re-run it on retry.
func foldReview(prov *models.Provider, review models.Review) (*models.Provider, error) {
	for _, r := range prov.Reviews {
		if r.AuthorID == review.AuthorID {
			return nil, utils.ErrDuplicateReview
		}
	}

	next := *prov
	next.Reviews = append(append([]models.Review{}, prov.Reviews...), review)
	next.Rating = round2((prov.Rating*float64(prov.ReviewCount) + review.Rating) / float64(prov.ReviewCount+1))
	next.ReviewCount = prov.ReviewCount + 1
	next.UpdatedAt = review.CreatedAt
	return &next, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
