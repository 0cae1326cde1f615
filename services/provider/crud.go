package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	providerRepo "obrafacil/database/repository/provider"
	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetProviderByID returns the safe view of a provider.
func (s *DefaultProviderService) GetProviderByID(providerID string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	safe := p.PublicView()
	return &safe, nil
}

// SearchProviders returns providers matching the criteria, stripped of credentials.
func (s *DefaultProviderService) SearchProviders(criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	providers, err := s.Repo.Search(criteria)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		providers[i] = providers[i].PublicView()
	}
	return providers, nil
}

// UpdateProfile patches the editable profile fields.
func (s *DefaultProviderService) UpdateProfile(providerID string, upd ProfileUpdate) (*models.Provider, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != nil && *upd.Name != "" {
		set["name"] = *upd.Name
	}
	if upd.Category != nil && *upd.Category != "" {
		set["category"] = *upd.Category
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Skills != nil {
		set["skills"] = *upd.Skills
	}
	if err := s.Repo.UpdateWithDocument(providerID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.GetProviderByID(providerID)
}

// SetAvailability toggles the provider between "Disponível" and "Em Serviço".
func (s *DefaultProviderService) SetAvailability(providerID, status string) error {
	if status != models.ProviderAvailable && status != models.ProviderBusy {
		return fmt.Errorf("status de disponibilidade inválido: %s", status)
	}
	return s.Repo.UpdateWithDocument(providerID, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
}

// ChangePlan switches the subscription plan tier.
func (s *DefaultProviderService) ChangePlan(providerID, plan string) error {
	switch plan {
	case models.PlanBasic, models.PlanProfessional, models.PlanAgency:
	default:
		return fmt.Errorf("plano inválido: %s", plan)
	}
	return s.Repo.UpdateWithDocument(providerID, bson.M{"$set": bson.M{
		"plan":      plan,
		"updatedAt": time.Now(),
	}})
}

// AddPortfolioItem appends a portfolio entry. The image URL must already be an
// uploaded asset (see SetAvatar / the storage handler).
func (s *DefaultProviderService) AddPortfolioItem(ctx context.Context, providerID string, item models.PortfolioItem) error {
	if item.ImageURL == "" {
		return fmt.Errorf("imagem do portfólio é obrigatória")
	}
	if !strings.HasPrefix(item.ImageURL, "https://") {
		return fmt.Errorf("URL de imagem inválida")
	}
	return s.Repo.UpdateWithDocument(providerID, bson.M{
		"$push": bson.M{"portfolio": item},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

// SetAvatar stores the avatar URL.
func (s *DefaultProviderService) SetAvatar(providerID, avatarURL string) error {
	if !strings.HasPrefix(avatarURL, "https://") {
		return fmt.Errorf("URL de imagem inválida")
	}
	return s.Repo.UpdateWithDocument(providerID, bson.M{"$set": bson.M{
		"avatarUrl": avatarURL,
		"updatedAt": time.Now(),
	}})
}

// UpdateFCMToken stores the push token for the provider's current device.
func (s *DefaultProviderService) UpdateFCMToken(providerID, token string) error {
	if token == "" {
		return fmt.Errorf("token FCM vazio")
	}
	return s.Repo.UpdateWithDocument(providerID, bson.M{"$set": bson.M{"fcmToken": token}})
}

// DeleteProvider removes the provider record and its cached auth entry.
func (s *DefaultProviderService) DeleteProvider(providerID string) error {
	if err := s.Repo.Delete(providerID); err != nil {
		return err
	}
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(authCache.Context(), utils.AuthCachePrefix+providerID).Err(); err != nil {
		utils.GetLogger().Warn("DeleteProvider: failed to evict auth cache", zap.Error(err))
	}
	return nil
}
