package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oneday/config"
	"oneday/models"
	"oneday/services/chat"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderSender delivers a due reminder.
type ReminderSender interface {
	SendReminder(ctx context.Context, p models.ReminderPayload) error
}

// RedisOpt is the asynq connection to the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker runs the asynq server for chat replies and reminders.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewWorker(opt asynq.RedisConnOpt, conversations chat.Registry, reminders ReminderSender, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queueDefault: 1,
		},
		Logger: logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeChatReply, handleChatReply(conversations, logger))
	mux.HandleFunc(TypeReviewReminder, handleReviewReminder(reminders, logger))

	return &Worker{srv: srv, mux: mux, logger: logger}
}

// Start runs the server in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				w.logger.Info("async worker started")
				return
			}
			w.logger.Error("async worker failed to start",
				zap.Int("attempt", attempt),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		w.logger.Error("async worker gave up; deferred tasks will not run")
	}()
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func handleChatReply(conversations chat.Registry, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ChatReplyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid chat reply payload: %v: %w", err, asynq.SkipRetry)
		}
		c, ok := conversations.Conversation(p.ConversationID)
		if !ok {
			logger.Debug("chat reply dropped: conversation gone", zap.String("conversation", p.ConversationID))
			return nil
		}
		c.DeliverReply(p.ReplyID)
		return nil
	}
}

func handleReviewReminder(reminders ReminderSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}
		logger.Info("sending review reminder", zap.String("userId", p.UserID), zap.String("bookingId", p.BookingID))
		if err := reminders.SendReminder(ctx, p); err != nil {
			logger.Error("failed to send reminder", zap.String("userId", p.UserID), zap.Error(err))
			return err
		}
		return nil
	}
}
