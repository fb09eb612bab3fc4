package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"oneday/database/repository/user/usertest"
	"oneday/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "msg-1", nil
}

func TestNotifyMatchSendsToToken(t *testing.T) {
	repo := usertest.NewRepo(&models.User{ID: "u1", FCMToken: "tok"})
	sender := &fakeSender{}
	svc, err := NewDefaultNotificationService(repo, sender, nil)
	require.NoError(t, err)

	err = svc.NotifyMatch(context.Background(), "u1", models.Match{
		ID:          "m1",
		BookingID:   "b1",
		Participant: models.Participant{ID: 1, Name: "민지"},
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok", sender.sent[0].Token)
	assert.Equal(t, MatchTitle, sender.sent[0].Notification.Title)
	assert.Equal(t, "m1", sender.sent[0].Data["matchId"])
}

func TestPushSkippedWithoutToken(t *testing.T) {
	repo := usertest.NewRepo(&models.User{ID: "u1"})
	sender := &fakeSender{}
	svc, err := NewDefaultNotificationService(repo, sender, nil)
	require.NoError(t, err)

	require.NoError(t, svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil))
	assert.Empty(t, sender.sent)
}

func TestSendFailureIsExternal(t *testing.T) {
	repo := usertest.NewRepo(&models.User{ID: "u1", FCMToken: "tok"})
	svc, err := NewDefaultNotificationService(repo, &fakeSender{err: errors.New("unavailable")}, nil)
	require.NoError(t, err)

	err = svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil)
	var ext *models.ExternalServiceError
	assert.ErrorAs(t, err, &ext)
}

func TestReviewReminderFiresTwentyHoursAfterCompletion(t *testing.T) {
	done := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)
	b := models.Booking{ID: "b1", CompletedAt: &done, Listing: models.ClassListing{Title: "도자기"}}

	p := ReviewReminder("u1", b)
	assert.Equal(t, done.Add(20*time.Hour), p.FireAt)
	assert.Equal(t, ReviewReminderTitle, p.Title)
	assert.Equal(t, "b1", p.BookingID)
}
