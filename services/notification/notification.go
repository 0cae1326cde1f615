package notification

import (
	"context"
	"fmt"

	providerRepo "obrafacil/database/repository/provider"
	userRepo "obrafacil/database/repository/user"
	"obrafacil/utils"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error
	SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Client    *messaging.Client
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
}

func NewDefaultNotificationService(
	client *messaging.Client,
	users userRepo.UserRepository,
	providers providerRepo.ProviderRepository,
) *DefaultNotificationService {
	return &DefaultNotificationService{Client: client, Users: users, Providers: providers}
}

// SendUserPush looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByIDWithProjection(userID, bson.M{"id": 1, "fcmToken": 1})
	if err != nil {
		return fmt.Errorf("notification: could not find user %s: %w", userID, err)
	}
	return s.send(ctx, u.FCMToken, title, body, data)
}

// SendProviderPush looks up a provider's FCM token and sends a push.
func (s *DefaultNotificationService) SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error {
	p, err := s.Providers.GetByIDWithProjection(providerID, bson.M{"id": 1, "fcmToken": 1})
	if err != nil {
		return fmt.Errorf("notification: could not find provider %s: %w", providerID, err)
	}
	return s.send(ctx, p.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return fmt.Errorf("notification: recipient has no FCM token")
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	response, err := s.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("notification: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("notification sent", zap.String("response", response))
	return nil
}
