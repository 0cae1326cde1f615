package user

import (
	userRepo "obrafacil/database/repository/user"
	"obrafacil/models"
)

// AuthResponse is returned after a successful registration or login.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// UserService defines business logic for client accounts.
type UserService interface {
	// RegisterUser validates registration details and creates a new client record.
	RegisterUser(u models.User) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns ID and token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user (safe view) by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// UpdateUser updates an existing user's editable profile fields.
	UpdateUser(userID string, name, taxID string) (*models.User, error)
	// UpdateFCMToken stores the push token for the user's current device.
	UpdateFCMToken(userID, token string) error
	// RevokeAuthToken revokes the user's authentication token (logout).
	RevokeAuthToken(userID string) error
	// DeleteUser removes a user record.
	DeleteUser(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
