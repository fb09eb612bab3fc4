// Package chat is the post-match conversation with a simulated counterpart.
package chat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"oneday/models"
	"oneday/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Replies is the phrase set the simulated counterpart answers with.
var Replies = []string{
	"네 반가워요! 😊",
	"저도 클래스 재밌었어요!",
	"다음에 또 함께해요~",
	"오 좋아요!",
	"ㅎㅎ 그러게요",
	"맞아요~ 저도 그랬어요",
	"다음 주에 시간 되세요?",
	"저도요! 👍",
}

const (
	minReplyDelay = time.Second
	maxReplyDelay = 3 * time.Second
)

// Greeting is the counterpart's opening line after a match.
func Greeting(name string) string {
	return fmt.Sprintf("안녕하세요! 클래스에서 뵀던 %s입니다 😊", name)
}

// Pending is a scheduled reply that has not fired yet.
type Pending interface {
	Cancel()
}

// ReplyScheduler defers delivery of one reply to conversationID.
type ReplyScheduler interface {
	ScheduleReply(ctx context.Context, conversationID, replyID string, delay time.Duration) (Pending, error)
}

// Conversation is one session's message list.
type Conversation struct {
	mu          sync.Mutex
	id          string
	counterpart string
	messages    []models.Message
	pending     map[string]Pending
	closed      bool
	subscribers map[int]chan models.Message
	nextSub     int
	scheduler   ReplyScheduler
	now         func() time.Time
	logger      *zap.Logger
}

func NewConversation(id string, scheduler ReplyScheduler, now func() time.Time, logger *zap.Logger) *Conversation {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Conversation{
		id:          id,
		pending:     make(map[string]Pending),
		subscribers: make(map[int]chan models.Message),
		scheduler:   scheduler,
		now:         now,
		logger:      logger,
	}
}

func (c *Conversation) ID() string { return c.id }

// Seed starts the conversation with counterpart, replacing earlier messages
// with the counterpart's greeting. Replies still pending for a previous
// counterpart are cancelled.
func (c *Conversation) Seed(counterpart string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.counterpart = counterpart
	greeting := c.newMessage(Greeting(counterpart), models.SenderOther)
	c.messages = []models.Message{greeting}
	utils.ChatMessages.WithLabelValues(string(models.SenderOther)).Inc()
	c.publish(greeting)
}

// Matched reports whether a counterpart is attached.
func (c *Conversation) Matched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterpart != ""
}

func (c *Conversation) Counterpart() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counterpart
}

// Messages returns a snapshot of the message list.
func (c *Conversation) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Message{}, c.messages...)
}

// Send appends an outbound message. When a counterpart is attached one
// reply is scheduled 1 to 3 seconds later.
func (c *Conversation) Send(ctx context.Context, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, models.NewValidationError("text", "메시지를 입력해주세요")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return models.Message{}, models.NewConflictError("채팅이 종료되었어요")
	}

	msg := c.newMessage(text, models.SenderMe)
	c.messages = append(c.messages, msg)
	utils.ChatMessages.WithLabelValues(string(models.SenderMe)).Inc()
	c.publish(msg)

	if c.counterpart == "" || c.scheduler == nil {
		return msg, nil
	}

	replyID := uuid.NewString()
	delay := minReplyDelay + rand.N(maxReplyDelay-minReplyDelay)
	p, err := c.scheduler.ScheduleReply(ctx, c.id, replyID, delay)
	if err != nil {
		// the outbound message stays; only the simulated reply is lost
		c.logger.Warn("chat: failed to schedule reply", zap.String("conversation", c.id), zap.Error(err))
		return msg, nil
	}
	c.pending[replyID] = p
	return msg, nil
}

// DeliverReply appends the counterpart's reply for replyID. Replies that were
// cancelled, already delivered, or arrive after Close are dropped.
func (c *Conversation) DeliverReply(replyID string) (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return models.Message{}, false
	}
	if _, ok := c.pending[replyID]; !ok {
		return models.Message{}, false
	}
	delete(c.pending, replyID)

	msg := c.newMessage(Replies[rand.IntN(len(Replies))], models.SenderOther)
	c.messages = append(c.messages, msg)
	utils.ChatMessages.WithLabelValues(string(models.SenderOther)).Inc()
	c.publish(msg)
	return msg, true
}

// PendingReplies is the number of scheduled replies not yet delivered.
func (c *Conversation) PendingReplies() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Conversation) cancelPendingLocked() {
	for id, p := range c.pending {
		p.Cancel()
		delete(c.pending, id)
	}
}

const subscriberBuffer = 32

// Subscribe streams every message appended after the call. The channel is
// closed by the returned cancel func or by Close.
func (c *Conversation) Subscribe() (<-chan models.Message, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan models.Message, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
}

// publish must be called with c.mu held. Slow subscribers are dropped.
func (c *Conversation) publish(msg models.Message) {
	for id, ch := range c.subscribers {
		select {
		case ch <- msg:
		default:
			c.logger.Warn("chat: dropping slow subscriber", zap.String("conversation", c.id))
			delete(c.subscribers, id)
			close(ch)
		}
	}
}

// Close cancels every pending reply and ends all subscriptions. The
// conversation rejects sends afterwards.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelPendingLocked()
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
}

func (c *Conversation) newMessage(text string, sender models.Sender) models.Message {
	return models.Message{
		ID:     uuid.NewString(),
		Text:   text,
		Sender: sender,
		SentAt: c.now(),
	}
}
