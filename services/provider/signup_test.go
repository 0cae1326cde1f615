package provider

import (
	"testing"

	providerRepo "obrafacil/database/repository/provider"
	"obrafacil/models"
	"obrafacil/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubSignupRepo covers only the methods the signup path touches.
type stubSignupRepo struct {
	providerRepo.ProviderRepository
	byEmail map[string]*models.Provider
	created *models.Provider
}

func (s *stubSignupRepo) GetByEmail(email string) (*models.Provider, error) {
	p, ok := s.byEmail[email]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (s *stubSignupRepo) Create(p *models.Provider) error {
	copied := *p
	s.created = &copied
	s.byEmail[p.Email] = &copied
	return nil
}

func TestRegisterProviderDefaults(t *testing.T) {
	repo := &stubSignupRepo{byEmail: map[string]*models.Provider{}}
	svc := &DefaultProviderService{Repo: repo}

	resp, err := svc.RegisterProvider(models.Provider{
		Name:     "Maria",
		Email:    "Maria@Example.com",
		Password: "segredo123",
		Category: "pintura",
		Location: "São Paulo",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, models.PlanBasic, resp.Plan)
	assert.Equal(t, "maria@example.com", resp.Email)

	stored := repo.created
	assert.Equal(t, models.ProviderAvailable, stored.Status)
	assert.Equal(t, models.PlanBasic, stored.Plan)
	assert.Zero(t, stored.Rating)
	assert.Zero(t, stored.ReviewCount)
	assert.NotNil(t, stored.Reviews)
	assert.Empty(t, stored.Reviews)
	assert.NotNil(t, stored.Portfolio)
	assert.Empty(t, stored.Portfolio)
	assert.False(t, stored.Verified)
	assert.Nil(t, stored.ServiceAcceptedAt)
	assert.Empty(t, stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo123")))
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
}

func TestRegisterProviderValidation(t *testing.T) {
	svc := &DefaultProviderService{Repo: &stubSignupRepo{byEmail: map[string]*models.Provider{}}}

	_, err := svc.RegisterProvider(models.Provider{Email: "x@example.com", Password: "segredo123"})
	assert.Error(t, err, "missing name")

	_, err = svc.RegisterProvider(models.Provider{Name: "Maria", Email: "x@example.com", Password: "abc", Category: "pintura"})
	assert.Error(t, err, "short password")

	_, err = svc.RegisterProvider(models.Provider{Name: "Maria", Email: "x@example.com", Password: "segredo123"})
	assert.Error(t, err, "missing category")
}

func TestRegisterProviderDuplicateEmail(t *testing.T) {
	repo := &stubSignupRepo{byEmail: map[string]*models.Provider{}}
	svc := &DefaultProviderService{Repo: repo}

	_, err := svc.RegisterProvider(models.Provider{
		Name: "Maria", Email: "m@example.com", Password: "segredo123", Category: "pintura",
	})
	require.NoError(t, err)

	_, err = svc.RegisterProvider(models.Provider{
		Name: "Outra", Email: "m@example.com", Password: "segredo123", Category: "elétrica",
	})
	assert.Error(t, err)
}
