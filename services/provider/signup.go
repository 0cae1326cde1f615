package provider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// RegisterProvider validates the registration payload and persists the new
// provider with its signup defaults: rating 0, no reviews, empty skills and
// portfolio, plan "básico", status "Disponível", unverified.
func (s *DefaultProviderService) RegisterProvider(p models.Provider) (*AuthResponse, error) {
	if p.Name == "" || p.Email == "" || p.Password == "" {
		return nil, fmt.Errorf("nome, email e senha são obrigatórios")
	}
	if len(p.Password) < 6 {
		return nil, fmt.Errorf("a senha deve ter pelo menos 6 caracteres")
	}
	if p.Category == "" {
		return nil, fmt.Errorf("informe a categoria de atuação")
	}

	existing, err := s.Repo.GetByEmail(strings.ToLower(p.Email))
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		utils.GetLogger().Error("RegisterProvider: failed to check for existing provider", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}
	if existing != nil {
		return nil, fmt.Errorf("já existe uma conta com este email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}

	now := time.Now()
	p.ID = uuid.New().String()
	p.Email = strings.ToLower(p.Email)
	p.PasswordHash = string(hashed)
	p.Password = ""
	p.Rating = 0
	p.ReviewCount = 0
	p.Reviews = []models.Review{}
	p.Skills = []string{}
	p.Portfolio = []models.PortfolioItem{}
	p.Status = models.ProviderAvailable
	p.Plan = models.PlanBasic
	p.Verified = false
	p.ServiceAcceptedAt = nil
	p.CreatedAt = now
	p.UpdatedAt = now

	token, err := utils.GenerateToken(p.ID, p.Email, models.UserTypeProvider, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}
	p.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&p); err != nil {
		utils.GetLogger().Error("RegisterProvider: failed to create provider", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}

	return &AuthResponse{
		ID:       p.ID,
		Token:    token,
		Name:     p.Name,
		Email:    p.Email,
		Category: p.Category,
		Plan:     p.Plan,
	}, nil
}

// AuthenticateProvider verifies credentials, rotates the token hash and
// returns a fresh token.
func (s *DefaultProviderService) AuthenticateProvider(email, password string) (*AuthResponse, error) {
	p, err := s.Repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("email ou senha inválidos")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("email ou senha inválidos")
	}

	token, err := utils.GenerateToken(p.ID, p.Email, models.UserTypeProvider, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("AuthenticateProvider: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("login falhou, tente novamente")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateWithDocument(p.ID, bson.M{"$set": bson.M{"tokenHash": tokenHash}}); err != nil {
		utils.GetLogger().Error("AuthenticateProvider: failed to persist token hash", zap.Error(err))
		return nil, fmt.Errorf("login falhou, tente novamente")
	}

	return &AuthResponse{
		ID:       p.ID,
		Token:    token,
		Name:     p.Name,
		Email:    p.Email,
		Category: p.Category,
		Plan:     p.Plan,
	}, nil
}

// RevokeAuthToken clears the stored token hash and evicts the auth cache entry.
func (s *DefaultProviderService) RevokeAuthToken(providerID string) error {
	if err := s.Repo.UpdateWithDocument(providerID, bson.M{"$unset": bson.M{"tokenHash": ""}}); err != nil {
		return err
	}
	authCache := utils.GetAuthCacheClient()
	_ = authCache.Del(authCache.Context(), utils.AuthCachePrefix+providerID).Err()
	return nil
}
