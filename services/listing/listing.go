package listing

import (
	"context"
	"time"

	listingRepo "obrafacil/database/repository/listing"
	"obrafacil/models"
	"obrafacil/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateService persists a new posting. Identity fields come from the
// authenticated caller's own profile so a client cannot post under another
// name.
func (s *DefaultListingService) CreateService(ctx context.Context, clientID string, input ServiceInput) (*models.Service, error) {
	client, err := s.Users.GetByIDWithProjection(clientID, bson.M{"id": 1, "name": 1})
	if err != nil {
		return nil, err
	}

	svc := &models.Service{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		ClientName:  client.Name,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Budget:      input.Budget,
		Status:      models.ServiceOpen,
		Proposals:   []models.Proposal{},
		CreatedAt:   time.Now(),
	}
	if err := s.Repo.Create(svc); err != nil {
		utils.GetLogger().Error("CreateService: persist failed", zap.Error(err))
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a service with its embedded proposals.
func (s *DefaultListingService) GetService(serviceID string) (*models.Service, error) {
	return s.Repo.GetByID(serviceID)
}

// ListOpenServices returns open postings, newest first.
func (s *DefaultListingService) ListOpenServices(category string) ([]models.Service, error) {
	return s.Repo.List(listingRepo.ServiceSearchCriteria{
		Category: category,
		Status:   models.ServiceOpen,
	})
}

// ListClientServices returns the postings of one client.
func (s *DefaultListingService) ListClientServices(clientID string) ([]models.Service, error) {
	return s.Repo.ListByClient(clientID)
}

// ListProviderProposals returns the services a provider has bid on.
func (s *DefaultListingService) ListProviderProposals(providerID string) ([]models.Service, error) {
	return s.Repo.ListByProposalProvider(providerID)
}

// SubmitProposal appends a pending bid. The provider's display fields are
// resolved server-side; a provider cannot bid on its own client posting or
// bid twice on the same service.
func (s *DefaultListingService) SubmitProposal(ctx context.Context, providerID, serviceID string, input ProposalInput) (*models.Proposal, error) {
	prov, err := s.Providers.GetByIDWithProjection(providerID, bson.M{"id": 1, "name": 1, "avatarUrl": 1})
	if err != nil {
		return nil, err
	}

	svc, err := s.Repo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ClientID == providerID {
		return nil, utils.ErrOwnService
	}

	proposal := models.Proposal{
		ID:             uuid.New().String(),
		ProviderID:     prov.ID,
		ProviderName:   prov.Name,
		ProviderAvatar: prov.AvatarURL,
		Amount:         input.Amount,
		Message:        input.Message,
		Status:         models.ProposalPending,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.AddProposal(serviceID, providerID, proposal); err != nil {
		return nil, err
	}

	if s.Notify != nil {
		if err := s.Notify.SendUserPush(ctx, svc.ClientID,
			"Nova proposta recebida",
			prov.Name+" enviou uma proposta para \""+svc.Title+"\"",
			map[string]string{"serviceId": svc.ID, "proposalId": proposal.ID},
		); err != nil {
			utils.GetLogger().Debug("SubmitProposal: push notification failed", zap.Error(err))
		}
	}
	return &proposal, nil
}

// AcceptProposal runs the acceptance transition inside one transaction: the
// service, the chosen proposal and the winning provider change together or not
// at all.
func (s *DefaultListingService) AcceptProposal(ctx context.Context, callerID, serviceID, proposalID string) (*models.Service, error) {
	now := time.Now()

	svc, _, err := s.Repo.Transition(ctx, serviceID,
		func(svc *models.Service) (string, error) {
			return acceptPrecheck(svc, callerID, proposalID)
		},
		func(svc *models.Service, prov *models.Provider) (*models.Service, *models.Provider, error) {
			return acceptApply(svc, prov, proposalID, now)
		},
	)
	if err != nil {
		return nil, err
	}

	if s.Notify != nil {
		if err := s.Notify.SendProviderPush(ctx, svc.AssignedProviderID,
			"Proposta aceita!",
			"Sua proposta para \""+svc.Title+"\" foi aceita pelo cliente",
			map[string]string{"serviceId": svc.ID, "proposalId": proposalID},
		); err != nil {
			utils.GetLogger().Debug("AcceptProposal: push notification failed", zap.Error(err))
		}
	}
	return svc, nil
}

// CompleteService finishes an in-progress service and releases the assigned
// provider back to available, in one transaction.
func (s *DefaultListingService) CompleteService(ctx context.Context, callerID, serviceID string) (*models.Service, error) {
	now := time.Now()

	svc, _, err := s.Repo.Transition(ctx, serviceID,
		func(svc *models.Service) (string, error) {
			return completePrecheck(svc, callerID)
		},
		func(svc *models.Service, prov *models.Provider) (*models.Service, *models.Provider, error) {
			return completeApply(svc, prov, now)
		},
	)
	if err != nil {
		return nil, err
	}

	if s.Notify != nil {
		if err := s.Notify.SendProviderPush(ctx, svc.AssignedProviderID,
			"Serviço concluído",
			"O cliente marcou \""+svc.Title+"\" como concluído",
			map[string]string{"serviceId": svc.ID},
		); err != nil {
			utils.GetLogger().Debug("CompleteService: push notification failed", zap.Error(err))
		}
	}
	return svc, nil
}
