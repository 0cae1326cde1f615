package handlers

import (
	"net/http"
	"strconv"

	providerRepo "obrafacil/database/repository/provider"
	"obrafacil/middleware"
	"obrafacil/models"
	"obrafacil/services/provider"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider-account endpoints.
type ProviderHandler struct {
	ProviderService provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{ProviderService: svc}
}

type registerProviderRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Category string `json:"category" binding:"required"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

// RegisterProviderHandler handles POST /api/providers/register.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var req registerProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.ProviderService.RegisterProvider(models.Provider{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Category: req.Category,
		Location: req.Location,
		Bio:      req.Bio,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateProviderHandler handles POST /api/providers/login.
func (h *ProviderHandler) AuthenticateProviderHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.ProviderService.AuthenticateProvider(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProviderByIDHandler handles GET /api/providers/:id (public safe view).
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	prov, err := h.ProviderService.GetProviderByID(c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

// SearchProvidersHandler handles GET /api/providers (public).
func (h *ProviderHandler) SearchProvidersHandler(c *gin.Context) {
	minRating, _ := strconv.ParseFloat(c.Query("minRating"), 64)
	criteria := providerRepo.ProviderSearchCriteria{
		Category:  c.Query("category"),
		Location:  c.Query("location"),
		MinRating: minRating,
		Plan:      c.Query("plan"),
	}

	providers, err := h.ProviderService.SearchProviders(criteria)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, providers)
}

type updateProviderRequest struct {
	Name     *string   `json:"name"`
	Category *string   `json:"category"`
	Location *string   `json:"location"`
	Bio      *string   `json:"bio"`
	Skills   *[]string `json:"skills"`
}

// UpdateProviderHandler handles PATCH /api/providers/me.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req updateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prov, err := h.ProviderService.UpdateProfile(callerID, provider.ProfileUpdate{
		Name:     req.Name,
		Category: req.Category,
		Location: req.Location,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

type availabilityRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetAvailabilityHandler handles PUT /api/providers/me/availability.
func (h *ProviderHandler) SetAvailabilityHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ProviderService.SetAvailability(callerID, req.Status); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "disponibilidade atualizada"})
}

type changePlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// ChangePlanHandler handles PUT /api/providers/me/plan.
func (h *ProviderHandler) ChangePlanHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req changePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ProviderService.ChangePlan(callerID, req.Plan); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plano atualizado"})
}

type portfolioItemRequest struct {
	ImageURL    string `json:"imageUrl" binding:"required"`
	Description string `json:"description"`
}

// AddPortfolioItemHandler handles POST /api/providers/me/portfolio.
func (h *ProviderHandler) AddPortfolioItemHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req portfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := models.PortfolioItem{ImageURL: req.ImageURL, Description: req.Description}
	if err := h.ProviderService.AddPortfolioItem(c.Request.Context(), callerID, item); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "item adicionado ao portfólio"})
}

type reviewRequest struct {
	Rating   float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment  string  `json:"comment" binding:"required,min=10"`
	ImageURL string  `json:"imageUrl"`
}

// AddReviewHandler handles POST /api/providers/:id/reviews. The author is the
// authenticated client; author fields are never taken from the payload.
func (h *ProviderHandler) AddReviewHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prov, err := h.ProviderService.AddReview(c.Request.Context(), c.Param("id"), provider.ReviewInput{
		AuthorID: callerID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, prov)
}

// UpdateProviderFCMTokenHandler handles PUT /api/providers/me/fcm-token.
func (h *ProviderHandler) UpdateProviderFCMTokenHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ProviderService.UpdateFCMToken(callerID, req.Token); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token atualizado"})
}

// RevokeProviderAuthTokenHandler handles DELETE /api/providers/me/token (logout).
func (h *ProviderHandler) RevokeProviderAuthTokenHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}
	if err := h.ProviderService.RevokeAuthToken(callerID); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sessão encerrada"})
}

// DeleteProviderHandler handles DELETE /api/providers/me.
func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}
	if err := h.ProviderService.DeleteProvider(callerID); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conta removida"})
}
