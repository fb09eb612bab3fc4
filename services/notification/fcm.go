package notification

import (
	"context"
	"fmt"

	userRepo "oneday/database/repository/user"
	"oneday/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService looks up tokens in the user repository and
// sends through FCM. A nil sender turns every push into a logged no-op.
type DefaultNotificationService struct {
	users  userRepo.UserRepository
	sender Sender
	logger *zap.Logger
}

func NewDefaultNotificationService(users userRepo.UserRepository, sender Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{users: users, sender: sender, logger: logger}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
// Users without a token are skipped.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	if s.sender == nil {
		s.logger.Debug("push skipped: FCM not configured", zap.String("userId", userID), zap.String("title", title))
		return nil
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		s.logger.Debug("push skipped: no FCM token", zap.String("userId", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return models.NewExternalServiceError("fcm send", err)
	}
	s.logger.Info("push sent", zap.String("userId", userID), zap.String("messageId", id))
	return nil
}

// NotifyMatch tells the user a mutual match was made.
func (s *DefaultNotificationService) NotifyMatch(ctx context.Context, userID string, match models.Match) error {
	body := fmt.Sprintf("%s님과 매칭되었어요! 지금 대화를 시작해보세요.", match.Participant.Name)
	return s.SendUserPushNotification(ctx, userID, MatchTitle, body, map[string]string{
		"type":      "match",
		"matchId":   match.ID,
		"bookingId": match.BookingID,
	})
}

// SendReminder delivers a queued reminder.
func (s *DefaultNotificationService) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	return s.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, map[string]string{
		"type":      "review_reminder",
		"bookingId": p.BookingID,
	})
}
