package notification

import (
	"context"
	"time"

	"oneday/models"

	"firebase.google.com/go/v4/messaging"
)

const (
	MatchTitle = "새로운 매칭!"

	ReviewReminderTitle = "리뷰 작성 마감이 4시간 남았어요"
	// ReviewReminderLead is how long after completion the reminder fires.
	ReviewReminderLead = 20 * time.Hour
)

// Sender delivers one FCM message. *messaging.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService sends pushes to users.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyMatch(ctx context.Context, userID string, match models.Match) error
	SendReminder(ctx context.Context, p models.ReminderPayload) error
}

// ReviewReminder builds the reminder for a completed booking.
func ReviewReminder(userID string, b models.Booking) models.ReminderPayload {
	completedAt := b.BookedAt
	if b.CompletedAt != nil {
		completedAt = *b.CompletedAt
	}
	return models.ReminderPayload{
		UserID:    userID,
		BookingID: b.ID,
		Title:     ReviewReminderTitle,
		Body:      b.Listing.Title + " 클래스는 어떠셨나요? 리뷰를 남기고 매칭을 시작하세요.",
		FireAt:    completedAt.Add(ReviewReminderLead),
	}
}
