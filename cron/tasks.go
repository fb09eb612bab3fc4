package cron

import (
	"encoding/json"
	"time"

	"oneday/models"

	"github.com/hibiken/asynq"
)

const (
	TypeChatReply      = "chat:reply"
	TypeReviewReminder = "reminder:review"

	queueDefault = "default"
)

func NewChatReplyTask(p models.ChatReplyPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.TaskID(p.ReplyID),
		asynq.MaxRetry(0),
		asynq.Queue(queueDefault),
	}
	return asynq.NewTask(TypeChatReply, b), opts, nil
}

// ReminderTaskID is unique per user and booking.
func ReminderTaskID(userID, bookingID string) string {
	return "review:" + userID + ":" + bookingID
}

func NewReminderTask(p models.ReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(p.FireAt),
		asynq.TaskID(ReminderTaskID(p.UserID, p.BookingID)),
		asynq.MaxRetry(0),
		asynq.Queue(queueDefault),
	}
	return asynq.NewTask(TypeReviewReminder, b), opts, nil
}
