package listing

import (
	"testing"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openService() *models.Service {
	return &models.Service{
		ID:       "svc-1",
		ClientID: "client-1",
		Title:    "Reforma do banheiro",
		Status:   models.ServiceOpen,
		Budget:   5000,
		Proposals: []models.Proposal{
			{ID: "prop-1", ProviderID: "prov-1", Amount: 4500, Status: models.ProposalPending},
			{ID: "prop-2", ProviderID: "prov-2", Amount: 4800, Status: models.ProposalPending},
		},
	}
}

func availableProvider(id string) *models.Provider {
	return &models.Provider{ID: id, Name: "João", Status: models.ProviderAvailable}
}

func TestAcceptPrecheck(t *testing.T) {
	t.Run("happy path names the proposal's provider", func(t *testing.T) {
		providerID, err := acceptPrecheck(openService(), "client-1", "prop-2")
		require.NoError(t, err)
		assert.Equal(t, "prov-2", providerID)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := acceptPrecheck(openService(), "someone-else", "prop-1")
		assert.ErrorIs(t, err, utils.ErrNotOwner)
	})

	t.Run("already in progress is rejected", func(t *testing.T) {
		svc := openService()
		svc.Status = models.ServiceInProgress
		_, err := acceptPrecheck(svc, "client-1", "prop-1")
		assert.ErrorIs(t, err, utils.ErrNotOpen)
	})

	t.Run("unknown proposal is rejected", func(t *testing.T) {
		_, err := acceptPrecheck(openService(), "client-1", "prop-99")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("already accepted proposal is rejected", func(t *testing.T) {
		svc := openService()
		svc.Proposals[0].Status = models.ProposalAccepted
		_, err := acceptPrecheck(svc, "client-1", "prop-1")
		assert.ErrorIs(t, err, utils.ErrNotOpen)
	})
}

func TestAcceptApply(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("writes assignment on both sides", func(t *testing.T) {
		svc := openService()
		prov := availableProvider("prov-1")

		nextSvc, nextProv, err := acceptApply(svc, prov, "prop-1", now)
		require.NoError(t, err)

		assert.Equal(t, models.ServiceInProgress, nextSvc.Status)
		assert.Equal(t, "prov-1", nextSvc.AssignedProviderID)
		assert.Equal(t, "prop-1", nextSvc.AcceptedProposalID)
		assert.Equal(t, 4500.0, nextSvc.AcceptedProposalAmount)
		assert.Equal(t, models.ProposalAccepted, nextSvc.Proposals[0].Status)

		assert.Equal(t, models.ProviderBusy, nextProv.Status)
		require.NotNil(t, nextProv.ServiceAcceptedAt)
		assert.Equal(t, now, *nextProv.ServiceAcceptedAt)
	})

	t.Run("losing proposals stay pending", func(t *testing.T) {
		nextSvc, _, err := acceptApply(openService(), availableProvider("prov-1"), "prop-1", now)
		require.NoError(t, err)
		assert.Equal(t, models.ProposalPending, nextSvc.Proposals[1].Status)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		svc := openService()
		prov := availableProvider("prov-1")

		_, _, err := acceptApply(svc, prov, "prop-1", now)
		require.NoError(t, err)

		assert.Equal(t, models.ServiceOpen, svc.Status)
		assert.Equal(t, models.ProposalPending, svc.Proposals[0].Status)
		assert.Equal(t, models.ProviderAvailable, prov.Status)
		assert.Nil(t, prov.ServiceAcceptedAt)
	})
}

func TestCompleteTransition(t *testing.T) {
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

	inProgress := func() *models.Service {
		svc := openService()
		svc.Status = models.ServiceInProgress
		svc.AssignedProviderID = "prov-1"
		svc.AcceptedProposalID = "prop-1"
		return svc
	}

	t.Run("precheck names the assigned provider", func(t *testing.T) {
		providerID, err := completePrecheck(inProgress(), "client-1")
		require.NoError(t, err)
		assert.Equal(t, "prov-1", providerID)
	})

	t.Run("precheck rejects non-owner", func(t *testing.T) {
		_, err := completePrecheck(inProgress(), "someone-else")
		assert.ErrorIs(t, err, utils.ErrNotOwner)
	})

	t.Run("precheck rejects open service", func(t *testing.T) {
		_, err := completePrecheck(openService(), "client-1")
		assert.ErrorIs(t, err, utils.ErrNotInProgress)
	})

	t.Run("apply releases the provider", func(t *testing.T) {
		busy := availableProvider("prov-1")
		busy.Status = models.ProviderBusy
		acceptedAt := now.Add(-72 * time.Hour)
		busy.ServiceAcceptedAt = &acceptedAt

		nextSvc, nextProv, err := completeApply(inProgress(), busy, now)
		require.NoError(t, err)

		assert.Equal(t, models.ServiceCompleted, nextSvc.Status)
		require.NotNil(t, nextSvc.CompletedAt)
		assert.Equal(t, now, *nextSvc.CompletedAt)

		assert.Equal(t, models.ProviderAvailable, nextProv.Status)
		assert.Nil(t, nextProv.ServiceAcceptedAt)
	})
}
