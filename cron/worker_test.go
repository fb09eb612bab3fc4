package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"oneday/models"
	"oneday/services/chat"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noopPending struct{}

func (noopPending) Cancel() {}

// capture remembers the reply id instead of running anything.
type capture struct{ replyID string }

func (c *capture) ScheduleReply(_ context.Context, _, replyID string, _ time.Duration) (chat.Pending, error) {
	c.replyID = replyID
	return noopPending{}, nil
}

type reminderSink struct {
	got []models.ReminderPayload
	err error
}

func (r *reminderSink) SendReminder(_ context.Context, p models.ReminderPayload) error {
	r.got = append(r.got, p)
	return r.err
}

func payload(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestChatReplyHandlerDeliversPendingReply(t *testing.T) {
	sched := &capture{}
	conv := chat.NewConversation("c1", sched, nil, nil)
	conv.Seed("민지")
	_, err := conv.Send(context.Background(), "hi")
	require.NoError(t, err)
	require.NotEmpty(t, sched.replyID)

	registry := chat.RegistryFunc(func(id string) (*chat.Conversation, bool) {
		return conv, id == "c1"
	})
	h := handleChatReply(registry, zap.NewNop())

	task := asynq.NewTask(TypeChatReply, payload(t, models.ChatReplyPayload{ConversationID: "c1", ReplyID: sched.replyID}))
	require.NoError(t, h(context.Background(), task))
	assert.Len(t, conv.Messages(), 3)

	// a second delivery of the same reply is dropped
	require.NoError(t, h(context.Background(), task))
	assert.Len(t, conv.Messages(), 3)

	gone := asynq.NewTask(TypeChatReply, payload(t, models.ChatReplyPayload{ConversationID: "other", ReplyID: "x"}))
	assert.NoError(t, h(context.Background(), gone))
}

func TestChatReplyHandlerRejectsBadPayload(t *testing.T) {
	h := handleChatReply(chat.RegistryFunc(func(string) (*chat.Conversation, bool) { return nil, false }), zap.NewNop())
	err := h(context.Background(), asynq.NewTask(TypeChatReply, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReviewReminderHandler(t *testing.T) {
	sink := &reminderSink{}
	h := handleReviewReminder(sink, zap.NewNop())
	p := models.ReminderPayload{UserID: "u1", BookingID: "b1", Title: "t", Body: "b"}

	require.NoError(t, h(context.Background(), asynq.NewTask(TypeReviewReminder, payload(t, p))))
	require.Len(t, sink.got, 1)
	assert.Equal(t, "b1", sink.got[0].BookingID)

	sink.err = errors.New("fcm down")
	assert.Error(t, h(context.Background(), asynq.NewTask(TypeReviewReminder, payload(t, p))))
}

func TestTaskOptions(t *testing.T) {
	task, opts, err := NewChatReplyTask(models.ChatReplyPayload{ConversationID: "c1", ReplyID: "r1"}, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, TypeChatReply, task.Type())
	assert.Len(t, opts, 4)

	fire := time.Date(2025, 5, 2, 14, 0, 0, 0, time.UTC)
	task, _, err = NewReminderTask(models.ReminderPayload{UserID: "u1", BookingID: "b1", FireAt: fire})
	require.NoError(t, err)
	assert.Equal(t, TypeReviewReminder, task.Type())
}

func TestReminderTaskIDMatchesCancelKey(t *testing.T) {
	p := models.ReminderPayload{UserID: "u1", BookingID: "b1", FireAt: time.Now().Add(time.Hour)}
	_, opts, err := NewReminderTask(p)
	require.NoError(t, err)

	var taskID interface{}
	for _, o := range opts {
		if o.Type() == asynq.TaskIDOpt {
			taskID = o.Value()
		}
	}
	assert.Equal(t, ReminderTaskID("u1", "b1"), taskID)
	assert.Equal(t, "review:u1:b1", taskID)
}
