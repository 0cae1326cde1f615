package handlers

import (
	"net/http"

	"obrafacil/middleware"
	"obrafacil/services/listing"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
)

// ListingHandler exposes service-posting and proposal endpoints.
type ListingHandler struct {
	ListingService listing.ListingService
}

func NewListingHandler(svc listing.ListingService) *ListingHandler {
	return &ListingHandler{ListingService: svc}
}

// CreateServiceHandler handles POST /api/services (authenticated client).
func (h *ListingHandler) CreateServiceHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var input listing.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, err := h.ListingService.CreateService(c.Request.Context(), callerID, input)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// GetServiceHandler handles GET /api/services/:id.
func (h *ListingHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.ListingService.GetService(c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ListOpenServicesHandler handles GET /api/services (public feed of open postings).
func (h *ListingHandler) ListOpenServicesHandler(c *gin.Context) {
	services, err := h.ListingService.ListOpenServices(c.Query("category"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListMyServicesHandler handles GET /api/services/mine (authenticated client).
func (h *ListingHandler) ListMyServicesHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	services, err := h.ListingService.ListClientServices(callerID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListMyProposalsHandler handles GET /api/services/proposals/mine
// (authenticated provider): the services the caller has bid on.
func (h *ListingHandler) ListMyProposalsHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	services, err := h.ListingService.ListProviderProposals(callerID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

// SubmitProposalHandler handles POST /api/services/:id/proposals
// (authenticated provider).
func (h *ListingHandler) SubmitProposalHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var input listing.ProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.ListingService.SubmitProposal(c.Request.Context(), callerID, c.Param("id"), input)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

// AcceptProposalHandler handles POST /api/services/:id/proposals/:proposalId/accept
// (authenticated client, owner only).
func (h *ListingHandler) AcceptProposalHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	svc, err := h.ListingService.AcceptProposal(c.Request.Context(), callerID, c.Param("id"), c.Param("proposalId"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CompleteServiceHandler handles POST /api/services/:id/complete
// (authenticated client, owner only).
func (h *ListingHandler) CompleteServiceHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	svc, err := h.ListingService.CompleteService(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}
