package chat

import (
	"context"
	"time"
)

// Registry resolves a conversation id to a live conversation.
type Registry interface {
	Conversation(id string) (*Conversation, bool)
}

// RegistryFunc adapts a function to Registry.
type RegistryFunc func(id string) (*Conversation, bool)

func (f RegistryFunc) Conversation(id string) (*Conversation, bool) { return f(id) }

// TimerScheduler delivers replies in process with time.AfterFunc.
type TimerScheduler struct {
	registry Registry
}

func NewTimerScheduler(r Registry) *TimerScheduler {
	return &TimerScheduler{registry: r}
}

type timerPending struct {
	t *time.Timer
}

func (p timerPending) Cancel() { p.t.Stop() }

func (s *TimerScheduler) ScheduleReply(_ context.Context, conversationID, replyID string, delay time.Duration) (Pending, error) {
	t := time.AfterFunc(delay, func() {
		if c, ok := s.registry.Conversation(conversationID); ok {
			c.DeliverReply(replyID)
		}
	})
	return timerPending{t: t}, nil
}
