package models

import (
	"time"
)

// User account types.
const (
	UserTypeClient   = "cliente"
	UserTypeProvider = "prestador"
	UserTypeAgency   = "agência"
)

// User represents a client account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	TaxID        string    `bson:"taxId,omitempty" json:"taxId,omitempty"` // CPF or CNPJ
	UserType     string    `bson:"userType" json:"userType"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicView strips credentials so a user can be returned to callers.
func (u User) PublicView() User {
	u.Password = ""
	u.PasswordHash = ""
	u.TokenHash = ""
	u.FCMToken = ""
	return u
}
