package cron

import (
	"context"
	"errors"
	"time"

	"oneday/models"
	"oneday/services/chat"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer puts deferred work on the asynq queue. It schedules chat replies
// and review reminders.
type Enqueuer struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	logger    *zap.Logger
}

func NewEnqueuer(opt asynq.RedisConnOpt, logger *zap.Logger) *Enqueuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enqueuer{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		logger:    logger,
	}
}

type queuedReply struct {
	inspector *asynq.Inspector
	taskID    string
	logger    *zap.Logger
}

// Cancel deletes the scheduled task. A task that already ran is ignored.
func (q queuedReply) Cancel() {
	err := q.inspector.DeleteTask(queueDefault, q.taskID)
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		q.logger.Warn("failed to cancel queued reply", zap.String("taskId", q.taskID), zap.Error(err))
	}
}

// ScheduleReply implements chat.ReplyScheduler.
func (e *Enqueuer) ScheduleReply(ctx context.Context, conversationID, replyID string, delay time.Duration) (chat.Pending, error) {
	task, opts, err := NewChatReplyTask(models.ChatReplyPayload{ConversationID: conversationID, ReplyID: replyID}, delay)
	if err != nil {
		return nil, err
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return nil, models.NewExternalServiceError("enqueue chat reply", err)
	}
	return queuedReply{inspector: e.inspector, taskID: replyID, logger: e.logger}, nil
}

// ScheduleReminder queues the reminder for p.FireAt. Re-completing the same
// booking keeps the first reminder.
func (e *Enqueuer) ScheduleReminder(ctx context.Context, p models.ReminderPayload) error {
	task, opts, err := NewReminderTask(p)
	if err != nil {
		return err
	}
	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return models.NewExternalServiceError("enqueue reminder", err)
	}
	e.logger.Info("review reminder scheduled",
		zap.String("taskId", info.ID),
		zap.String("userId", p.UserID),
		zap.Time("fireAt", p.FireAt),
	)
	return nil
}

// CancelReminder deletes the queued review reminder. A reminder that already
// fired or was never queued is ignored.
func (e *Enqueuer) CancelReminder(_ context.Context, userID, bookingID string) error {
	taskID := ReminderTaskID(userID, bookingID)
	err := e.inspector.DeleteTask(queueDefault, taskID)
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return models.NewExternalServiceError("cancel reminder", err)
}

func (e *Enqueuer) Close() error {
	return errors.Join(e.client.Close(), e.inspector.Close())
}
