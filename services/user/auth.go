package user

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

// RegisterUser validates the registration payload, hashes the password and
// persists the new client with its signup defaults.
func (s *DefaultUserService) RegisterUser(u models.User) (*AuthResponse, error) {
	if u.Name == "" || u.Email == "" || u.Password == "" {
		return nil, fmt.Errorf("nome, email e senha são obrigatórios")
	}
	if len(u.Password) < 6 {
		return nil, fmt.Errorf("a senha deve ter pelo menos 6 caracteres")
	}
	switch u.UserType {
	case models.UserTypeClient, models.UserTypeProvider, models.UserTypeAgency:
	case "":
		u.UserType = models.UserTypeClient
	default:
		return nil, fmt.Errorf("tipo de usuário inválido")
	}

	existing, err := s.Repo.GetByEmail(strings.ToLower(u.Email))
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		utils.GetLogger().Error("RegisterUser: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}
	if existing != nil {
		return nil, fmt.Errorf("já existe uma conta com este email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}

	u.ID = uuid.New().String()
	u.Email = strings.ToLower(u.Email)
	u.PasswordHash = string(hashed)
	u.Password = ""
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt

	token, err := utils.GenerateToken(u.ID, u.Email, u.UserType, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("RegisterUser: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}
	u.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&u); err != nil {
		utils.GetLogger().Error("RegisterUser: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("cadastro falhou, tente novamente")
	}

	return &AuthResponse{
		ID:       u.ID,
		Token:    token,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}, nil
}

// AuthenticateUser verifies credentials, rotates the token hash and returns a
// fresh token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("email ou senha inválidos")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("email ou senha inválidos")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.UserType, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("login falhou, tente novamente")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateWithDocument(u.ID, bson.M{"$set": bson.M{"tokenHash": tokenHash}}); err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to persist token hash", zap.Error(err))
		return nil, fmt.Errorf("login falhou, tente novamente")
	}

	return &AuthResponse{
		ID:       u.ID,
		Token:    token,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}, nil
}

// RevokeAuthToken clears the stored token hash and evicts the auth cache entry.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	if err := s.Repo.UpdateWithDocument(userID, bson.M{"$unset": bson.M{"tokenHash": ""}}); err != nil {
		return err
	}
	authCache := utils.GetAuthCacheClient()
	_ = authCache.Del(authCache.Context(), utils.AuthCachePrefix+userID).Err()
	return nil
}
