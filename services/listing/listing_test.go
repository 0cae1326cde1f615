package listing

import (
	"context"
	"testing"

	listingRepo "obrafacil/database/repository/listing"
	providerRepo "obrafacil/database/repository/provider"
	userRepo "obrafacil/database/repository/user"
	"obrafacil/models"
	"obrafacil/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeListingRepo keeps services and providers in memory and runs transitions
// the way the Mongo implementation does: precheck, load provider, apply,
// write both or nothing.
type fakeListingRepo struct {
	services  map[string]*models.Service
	providers map[string]*models.Provider
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		services:  map[string]*models.Service{},
		providers: map[string]*models.Provider{},
	}
}

func (f *fakeListingRepo) GetByID(id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	copied := *svc
	return &copied, nil
}

func (f *fakeListingRepo) Create(svc *models.Service) error {
	copied := *svc
	f.services[svc.ID] = &copied
	return nil
}

func (f *fakeListingRepo) List(criteria listingRepo.ServiceSearchCriteria) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if criteria.Status != "" && svc.Status != criteria.Status {
			continue
		}
		if criteria.Category != "" && svc.Category != criteria.Category {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeListingRepo) ListByClient(clientID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.ClientID == clientID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) ListByProposalProvider(providerID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		for _, p := range svc.Proposals {
			if p.ProviderID == providerID {
				out = append(out, *svc)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeListingRepo) AddProposal(serviceID, providerID string, proposal models.Proposal) error {
	svc, ok := f.services[serviceID]
	if !ok {
		return utils.ErrNotFound
	}
	if svc.Status != models.ServiceOpen {
		return utils.ErrNotOpen
	}
	for _, p := range svc.Proposals {
		if p.ProviderID == providerID {
			return utils.ErrDuplicateBid
		}
	}
	svc.Proposals = append(svc.Proposals, proposal)
	return nil
}

func (f *fakeListingRepo) Transition(ctx context.Context, serviceID string, pre listingRepo.ServicePrecheck, apply listingRepo.TransitionApply) (*models.Service, *models.Provider, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, nil, utils.ErrNotFound
	}
	svcCopy := *svc

	providerID, err := pre(&svcCopy)
	if err != nil {
		return nil, nil, err
	}
	prov, ok := f.providers[providerID]
	if !ok {
		return nil, nil, utils.ErrNotFound
	}
	provCopy := *prov

	nextSvc, nextProv, err := apply(&svcCopy, &provCopy)
	if err != nil {
		return nil, nil, err
	}
	f.services[serviceID] = nextSvc
	f.providers[providerID] = nextProv
	return nextSvc, nextProv, nil
}

// stubUserRepo answers identity lookups; everything else is unused here.
type stubUserRepo struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (s *stubUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

type stubProviderRepo struct {
	providerRepo.ProviderRepository
	providers map[string]*models.Provider
}

func (s *stubProviderRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error) {
	p, ok := s.providers[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func newTestService() (*DefaultListingService, *fakeListingRepo) {
	repo := newFakeListingRepo()
	repo.providers["prov-1"] = &models.Provider{ID: "prov-1", Name: "João", Status: models.ProviderAvailable}
	repo.providers["prov-2"] = &models.Provider{ID: "prov-2", Name: "Ana", Status: models.ProviderAvailable}

	svc := &DefaultListingService{
		Repo: repo,
		Users: &stubUserRepo{users: map[string]*models.User{
			"client-1": {ID: "client-1", Name: "Carlos"},
		}},
		Providers: &stubProviderRepo{providers: repo.providers},
	}
	return svc, repo
}

func TestCreateService(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateService(context.Background(), "client-1", ServiceInput{
		Title:       "Pintura da sala",
		Description: "Pintar paredes e teto da sala de estar, aprox. 30m².",
		Category:    "pintura",
		Budget:      1200,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "client-1", created.ClientID)
	assert.Equal(t, "Carlos", created.ClientName)
	assert.Equal(t, models.ServiceOpen, created.Status)
	assert.Empty(t, created.Proposals)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestSubmitProposal(t *testing.T) {
	t.Run("resolves provider display fields server-side", func(t *testing.T) {
		svc, repo := newTestService()
		repo.services["svc-1"] = &models.Service{
			ID: "svc-1", ClientID: "client-1", Title: "Pintura", Status: models.ServiceOpen,
		}

		prop, err := svc.SubmitProposal(context.Background(), "prov-1", "svc-1", ProposalInput{
			Amount:  1000,
			Message: "Posso começar na segunda-feira.",
		})
		require.NoError(t, err)
		assert.Equal(t, "João", prop.ProviderName)
		assert.Equal(t, models.ProposalPending, prop.Status)

		stored, _ := repo.GetByID("svc-1")
		require.Len(t, stored.Proposals, 1)
	})

	t.Run("duplicate bid from the same provider is rejected", func(t *testing.T) {
		svc, repo := newTestService()
		repo.services["svc-1"] = &models.Service{
			ID: "svc-1", ClientID: "client-1", Status: models.ServiceOpen,
			Proposals: []models.Proposal{{ID: "prop-0", ProviderID: "prov-1", Status: models.ProposalPending}},
		}

		_, err := svc.SubmitProposal(context.Background(), "prov-1", "svc-1", ProposalInput{
			Amount: 900, Message: "Segunda proposta do mesmo prestador.",
		})
		assert.ErrorIs(t, err, utils.ErrDuplicateBid)
	})
}

func TestAcceptProposal(t *testing.T) {
	seed := func(repo *fakeListingRepo) {
		repo.services["svc-1"] = &models.Service{
			ID: "svc-1", ClientID: "client-1", Title: "Pintura", Status: models.ServiceOpen,
			Proposals: []models.Proposal{
				{ID: "prop-1", ProviderID: "prov-1", Amount: 1000, Status: models.ProposalPending},
				{ID: "prop-2", ProviderID: "prov-2", Amount: 1100, Status: models.ProposalPending},
			},
		}
	}

	t.Run("commits service, proposal and provider together", func(t *testing.T) {
		svc, repo := newTestService()
		seed(repo)

		updated, err := svc.AcceptProposal(context.Background(), "client-1", "svc-1", "prop-1")
		require.NoError(t, err)

		assert.Equal(t, models.ServiceInProgress, updated.Status)
		assert.Equal(t, "prov-1", updated.AssignedProviderID)
		assert.Equal(t, 1000.0, updated.AcceptedProposalAmount)

		winner := repo.providers["prov-1"]
		assert.Equal(t, models.ProviderBusy, winner.Status)
		assert.NotNil(t, winner.ServiceAcceptedAt)

		loser := repo.providers["prov-2"]
		assert.Equal(t, models.ProviderAvailable, loser.Status)
	})

	t.Run("second acceptance of any proposal fails", func(t *testing.T) {
		svc, repo := newTestService()
		seed(repo)

		_, err := svc.AcceptProposal(context.Background(), "client-1", "svc-1", "prop-1")
		require.NoError(t, err)

		_, err = svc.AcceptProposal(context.Background(), "client-1", "svc-1", "prop-2")
		assert.ErrorIs(t, err, utils.ErrNotOpen)

		// The second provider was never touched.
		assert.Equal(t, models.ProviderAvailable, repo.providers["prov-2"].Status)
	})

	t.Run("non-owner leaves everything untouched", func(t *testing.T) {
		svc, repo := newTestService()
		seed(repo)

		_, err := svc.AcceptProposal(context.Background(), "intruder", "svc-1", "prop-1")
		assert.ErrorIs(t, err, utils.ErrNotOwner)

		stored, _ := repo.GetByID("svc-1")
		assert.Equal(t, models.ServiceOpen, stored.Status)
		assert.Equal(t, models.ProviderAvailable, repo.providers["prov-1"].Status)
	})
}

func TestCompleteService(t *testing.T) {
	svc, repo := newTestService()
	repo.services["svc-1"] = &models.Service{
		ID: "svc-1", ClientID: "client-1", Title: "Pintura",
		Status: models.ServiceInProgress, AssignedProviderID: "prov-1",
	}
	busy := repo.providers["prov-1"]
	busy.Status = models.ProviderBusy

	updated, err := svc.CompleteService(context.Background(), "client-1", "svc-1")
	require.NoError(t, err)

	assert.Equal(t, models.ServiceCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, models.ProviderAvailable, repo.providers["prov-1"].Status)
	assert.Nil(t, repo.providers["prov-1"].ServiceAcceptedAt)
}
