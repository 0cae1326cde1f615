package models

import (
	"time"
)

// Provider availability statuses.
const (
	ProviderAvailable = "Disponível"
	ProviderBusy      = "Em Serviço"
)

// Subscription plan tiers.
const (
	PlanBasic        = "básico"
	PlanProfessional = "profissional"
	PlanAgency       = "agência"
)

// Review is a client review appended to a provider's review list.
type Review struct {
	AuthorID   string    `bson:"authorId" json:"authorId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Rating     float64   `bson:"rating" json:"rating"` // 1 to 5
	Comment    string    `bson:"comment" json:"comment"`
	ImageURL   string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// PortfolioItem is a single portfolio entry (image plus description).
type PortfolioItem struct {
	ImageURL    string `bson:"imageUrl" json:"imageUrl"`
	Description string `bson:"description" json:"description"`
}

// Provider represents a service professional or agency profile.
type Provider struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`

	Category  string `bson:"category" json:"category"`
	Location  string `bson:"location" json:"location"`
	AvatarURL string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`

	Rating      float64  `bson:"rating" json:"rating"`
	ReviewCount int      `bson:"reviewCount" json:"reviewCount"`
	Reviews     []Review `bson:"reviews" json:"reviews"`

	Status            string          `bson:"status" json:"status"` // "Disponível" or "Em Serviço"
	Plan              string          `bson:"plan" json:"plan"`     // "básico", "profissional" or "agência"
	Skills            []string        `bson:"skills" json:"skills"`
	Portfolio         []PortfolioItem `bson:"portfolio" json:"portfolio"`
	Verified          bool            `bson:"verified" json:"verified"`
	ServiceAcceptedAt *time.Time      `bson:"serviceAcceptedAt,omitempty" json:"serviceAcceptedAt,omitempty"`

	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicView strips credentials so a provider can be returned to other callers.
func (p Provider) PublicView() Provider {
	p.Password = ""
	p.PasswordHash = ""
	p.TokenHash = ""
	p.FCMToken = ""
	return p
}
