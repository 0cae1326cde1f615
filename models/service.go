package models

import (
	"time"
)

// Service statuses. A service only moves forward: open -> in_progress -> completed.
const (
	ServiceOpen       = "open"
	ServiceInProgress = "in_progress"
	ServiceCompleted  = "completed"
)

// Proposal statuses.
const (
	ProposalPending  = "pending"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"
)

// Proposal is a provider's bid on a service, embedded under the service document.
type Proposal struct {
	ID             string    `bson:"id" json:"id"`
	ProviderID     string    `bson:"providerId" json:"providerId"`
	ProviderName   string    `bson:"providerName" json:"providerName"`
	ProviderAvatar string    `bson:"providerAvatar,omitempty" json:"providerAvatar,omitempty"`
	Amount         float64   `bson:"amount" json:"amount"`
	Message        string    `bson:"message" json:"message"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Service is a client-posted job listing.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	ClientID    string  `bson:"clientId" json:"clientId"`
	ClientName  string  `bson:"clientName" json:"clientName"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Category    string  `bson:"category" json:"category"`
	Budget      float64 `bson:"budget" json:"budget"`
	Status      string  `bson:"status" json:"status"`

	AssignedProviderID     string  `bson:"assignedProviderId,omitempty" json:"assignedProviderId,omitempty"`
	AcceptedProposalID     string  `bson:"acceptedProposalId,omitempty" json:"acceptedProposalId,omitempty"`
	AcceptedProposalAmount float64 `bson:"acceptedProposalAmount,omitempty" json:"acceptedProposalAmount,omitempty"`

	Proposals []Proposal `bson:"proposals" json:"proposals"`

	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// ProposalByID returns a pointer into the service's embedded proposal list, or nil.
func (s *Service) ProposalByID(id string) *Proposal {
	for i := range s.Proposals {
		if s.Proposals[i].ID == id {
			return &s.Proposals[i]
		}
	}
	return nil
}
