package provider

import (
	"testing"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratedProvider(rating float64, count int, reviews ...models.Review) *models.Provider {
	return &models.Provider{
		ID:          "prov-1",
		Name:        "Maria",
		Rating:      rating,
		ReviewCount: count,
		Reviews:     reviews,
	}
}

func TestFoldReview(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run("first review sets the rating", func(t *testing.T) {
		next, err := foldReview(ratedProvider(0, 0), models.Review{
			AuthorID: "user-1", Rating: 4, Comment: "Ótimo trabalho, recomendo.", CreatedAt: now,
		})
		require.NoError(t, err)
		assert.Equal(t, 4.0, next.Rating)
		assert.Equal(t, 1, next.ReviewCount)
		assert.Len(t, next.Reviews, 1)
	})

	t.Run("running mean over existing reviews", func(t *testing.T) {
		prov := ratedProvider(4.0, 2,
			models.Review{AuthorID: "user-1", Rating: 4},
			models.Review{AuthorID: "user-2", Rating: 4},
		)
		next, err := foldReview(prov, models.Review{AuthorID: "user-3", Rating: 5})
		require.NoError(t, err)
		// (4*2 + 5) / 3 = 4.333... rounded to two decimals
		assert.Equal(t, 4.33, next.Rating)
		assert.Equal(t, 3, next.ReviewCount)
	})

	t.Run("rounds half up to two decimals", func(t *testing.T) {
		prov := ratedProvider(4.5, 2,
			models.Review{AuthorID: "user-1", Rating: 4},
			models.Review{AuthorID: "user-2", Rating: 5},
		)
		next, err := foldReview(prov, models.Review{AuthorID: "user-3", Rating: 3})
		require.NoError(t, err)
		// (4.5*2 + 3) / 3 = 4.0
		assert.Equal(t, 4.0, next.Rating)
	})

	t.Run("duplicate author aborts", func(t *testing.T) {
		prov := ratedProvider(5.0, 1, models.Review{AuthorID: "user-1", Rating: 5})
		_, err := foldReview(prov, models.Review{AuthorID: "user-1", Rating: 1})
		assert.ErrorIs(t, err, utils.ErrDuplicateReview)
	})

	t.Run("input provider is not mutated", func(t *testing.T) {
		prov := ratedProvider(4.0, 1, models.Review{AuthorID: "user-1", Rating: 4})
		_, err := foldReview(prov, models.Review{AuthorID: "user-2", Rating: 5})
		require.NoError(t, err)
		assert.Equal(t, 4.0, prov.Rating)
		assert.Equal(t, 1, prov.ReviewCount)
		assert.Len(t, prov.Reviews, 1)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.33, round2(13.0/3.0))
	assert.Equal(t, 4.67, round2(14.0/3.0))
	assert.Equal(t, 5.0, round2(5.0))
}
