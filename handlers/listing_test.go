package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"obrafacil/middleware"
	"obrafacil/models"
	"obrafacil/services/listing"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubListingService returns canned values so the tests exercise only the
// HTTP layer: binding, auth context and status mapping.
type stubListingService struct {
	acceptErr error
	accepted  *models.Service
}

func (s *stubListingService) CreateService(ctx context.Context, clientID string, input listing.ServiceInput) (*models.Service, error) {
	return &models.Service{
		ID:       "svc-1",
		ClientID: clientID,
		Title:    input.Title,
		Status:   models.ServiceOpen,
	}, nil
}

func (s *stubListingService) GetService(serviceID string) (*models.Service, error) {
	if serviceID != "svc-1" {
		return nil, utils.ErrNotFound
	}
	return &models.Service{ID: "svc-1", Status: models.ServiceOpen}, nil
}

func (s *stubListingService) ListOpenServices(category string) ([]models.Service, error) {
	return []models.Service{{ID: "svc-1"}}, nil
}

func (s *stubListingService) ListClientServices(clientID string) ([]models.Service, error) {
	return nil, nil
}

func (s *stubListingService) ListProviderProposals(providerID string) ([]models.Service, error) {
	return nil, nil
}

func (s *stubListingService) SubmitProposal(ctx context.Context, providerID, serviceID string, input listing.ProposalInput) (*models.Proposal, error) {
	return &models.Proposal{ID: "prop-1", ProviderID: providerID, Status: models.ProposalPending}, nil
}

func (s *stubListingService) AcceptProposal(ctx context.Context, callerID, serviceID, proposalID string) (*models.Service, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.accepted, nil
}

func (s *stubListingService) CompleteService(ctx context.Context, callerID, serviceID string) (*models.Service, error) {
	return &models.Service{ID: serviceID, Status: models.ServiceCompleted}, nil
}

func listingRouter(svc listing.ListingService, callerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewListingHandler(svc)

	r := gin.New()
	if callerID != "" {
		r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, callerID) })
	}
	r.POST("/api/services", h.CreateServiceHandler)
	r.GET("/api/services/:id", h.GetServiceHandler)
	r.POST("/api/services/:id/proposals/:proposalId/accept", h.AcceptProposalHandler)
	return r
}

func TestCreateServiceHandler(t *testing.T) {
	t.Run("valid payload returns 201", func(t *testing.T) {
		r := listingRouter(&stubListingService{}, "client-1")

		body := `{"title":"Pintura da sala","description":"Pintar paredes e teto da sala de estar.","category":"pintura","budget":1200}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"svc-1"`)
	})

	t.Run("short description is rejected with 400", func(t *testing.T) {
		r := listingRouter(&stubListingService{}, "client-1")

		body := `{"title":"Pintura","description":"curta","category":"pintura","budget":1200}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing auth context returns 401", func(t *testing.T) {
		r := listingRouter(&stubListingService{}, "")

		body := `{"title":"Pintura da sala","description":"Pintar paredes e teto da sala de estar.","category":"pintura","budget":1200}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetServiceHandler(t *testing.T) {
	r := listingRouter(&stubListingService{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/svc-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAcceptProposalHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not owner maps to 403", utils.ErrNotOwner, http.StatusForbidden},
		{"already closed maps to 409", utils.ErrNotOpen, http.StatusConflict},
		{"missing proposal maps to 404", utils.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := listingRouter(&stubListingService{acceptErr: tc.err}, "client-1")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/services/svc-1/proposals/prop-1/accept", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}

	t.Run("success returns the updated service", func(t *testing.T) {
		r := listingRouter(&stubListingService{
			accepted: &models.Service{ID: "svc-1", Status: models.ServiceInProgress, AssignedProviderID: "prov-1"},
		}, "client-1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/services/svc-1/proposals/prop-1/accept", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), models.ServiceInProgress)
	})
}
