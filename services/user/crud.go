package user

import (
	"fmt"
	"time"

	"obrafacil/models"
	"obrafacil/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID returns the safe view of a user.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	safe := u.PublicView()
	return &safe, nil
}

// UpdateUser updates the editable profile fields only. Email, user type and
// credentials are never patched here.
func (s *DefaultUserService) UpdateUser(userID string, name, taxID string) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if taxID != "" {
		set["taxId"] = taxID
	}
	if err := s.Repo.UpdateWithDocument(userID, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	return s.GetUserByID(userID)
}

// UpdateFCMToken stores the push token for the user's current device.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if token == "" {
		return fmt.Errorf("token FCM vazio")
	}
	return s.Repo.UpdateWithDocument(userID, bson.M{"$set": bson.M{"fcmToken": token}})
}

// DeleteUser removes the user record and its cached auth entry.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		return err
	}
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(authCache.Context(), utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("DeleteUser: failed to evict auth cache", zap.Error(err))
	}
	return nil
}
