package chat

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"oneday/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduled struct {
	replyID string
	delay   time.Duration
}

type fakePending struct{ cancelled *bool }

func (p fakePending) Cancel() { *p.cancelled = true }

// recordingScheduler captures replies instead of firing them.
type recordingScheduler struct {
	mu        sync.Mutex
	calls     []scheduled
	cancelled []*bool
	err       error
}

func (s *recordingScheduler) ScheduleReply(_ context.Context, _, replyID string, delay time.Duration) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.calls = append(s.calls, scheduled{replyID: replyID, delay: delay})
	flag := new(bool)
	s.cancelled = append(s.cancelled, flag)
	return fakePending{cancelled: flag}, nil
}

func TestSeed(t *testing.T) {
	c := NewConversation("c1", nil, nil, nil)
	assert.False(t, c.Matched())

	c.Seed("민지")

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "안녕하세요! 클래스에서 뵀던 민지입니다 😊", msgs[0].Text)
	assert.Equal(t, models.SenderOther, msgs[0].Sender)
	assert.True(t, c.Matched())
}

func TestSend_RejectsBlank(t *testing.T) {
	c := NewConversation("c1", &recordingScheduler{}, nil, nil)
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := c.Send(context.Background(), text)
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, c.Messages())
}

func TestSend_NoReplyWithoutMatch(t *testing.T) {
	s := &recordingScheduler{}
	c := NewConversation("c1", s, nil, nil)

	msg, err := c.Send(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, models.SenderMe, msg.Sender)
	assert.Empty(t, s.calls)
	assert.Len(t, c.Messages(), 1)
}

func TestSend_SchedulesOneReplyInRange(t *testing.T) {
	s := &recordingScheduler{}
	c := NewConversation("c1", s, nil, nil)
	c.Seed("민지")

	for i := 0; i < 20; i++ {
		_, err := c.Send(context.Background(), "hi")
		require.NoError(t, err)
	}

	require.Len(t, s.calls, 20)
	for _, call := range s.calls {
		assert.GreaterOrEqual(t, call.delay, time.Second)
		assert.Less(t, call.delay, 3*time.Second)
	}
	assert.Equal(t, 20, c.PendingReplies())
}

func TestDeliverReply(t *testing.T) {
	s := &recordingScheduler{}
	c := NewConversation("c1", s, nil, nil)
	c.Seed("민지")
	_, _ = c.Send(context.Background(), "hi")

	msg, ok := c.DeliverReply(s.calls[0].replyID)
	require.True(t, ok)
	assert.Equal(t, models.SenderOther, msg.Sender)
	assert.True(t, slices.Contains(Replies, msg.Text))
	assert.Len(t, c.Messages(), 3)

	_, ok = c.DeliverReply(s.calls[0].replyID)
	assert.False(t, ok, "a reply is delivered at most once")
	_, ok = c.DeliverReply("unknown")
	assert.False(t, ok)
}

func TestClose_CancelsPending(t *testing.T) {
	s := &recordingScheduler{}
	c := NewConversation("c1", s, nil, nil)
	c.Seed("민지")
	_, _ = c.Send(context.Background(), "hi")

	c.Close()

	assert.True(t, *s.cancelled[0])
	assert.Zero(t, c.PendingReplies())
	_, ok := c.DeliverReply(s.calls[0].replyID)
	assert.False(t, ok)
	assert.Len(t, c.Messages(), 2)

	_, err := c.Send(context.Background(), "still there?")
	var cerr *models.ConflictError
	assert.ErrorAs(t, err, &cerr)
}

func TestSend_SchedulerFailureKeepsMessage(t *testing.T) {
	s := &recordingScheduler{err: errors.New("queue down")}
	c := NewConversation("c1", s, nil, nil)
	c.Seed("민지")

	_, err := c.Send(context.Background(), "hi")

	require.NoError(t, err)
	assert.Len(t, c.Messages(), 2)
	assert.Zero(t, c.PendingReplies())
}

func TestTimerScheduler_DeliversAndCancels(t *testing.T) {
	var c *Conversation
	sched := NewTimerScheduler(RegistryFunc(func(id string) (*Conversation, bool) {
		return c, id == "c1"
	}))
	c = NewConversation("c1", sched, nil, nil)
	c.Seed("민지")

	_, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Len(t, c.Messages(), 2)

	require.Eventually(t, func() bool { return len(c.Messages()) == 3 }, 3500*time.Millisecond, 50*time.Millisecond)

	_, err = c.Send(context.Background(), "again")
	require.NoError(t, err)
	c.Close()
	time.Sleep(3100 * time.Millisecond)
	assert.Len(t, c.Messages(), 4, "no reply after close")
}

func TestSubscribe_StreamsAppendedMessages(t *testing.T) {
	sched := &recordingScheduler{}
	c := NewConversation("c1", sched, nil, nil)
	stream, cancel := c.Subscribe()
	defer cancel()

	c.Seed("민지")
	_, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, sched.calls, 1)
	_, ok := c.DeliverReply(sched.calls[0].replyID)
	require.True(t, ok)

	var senders []models.Sender
	for range 3 {
		select {
		case m := <-stream:
			senders = append(senders, m.Sender)
		case <-time.After(time.Second):
			t.Fatal("expected a streamed message")
		}
	}
	assert.Equal(t, []models.Sender{models.SenderOther, models.SenderMe, models.SenderOther}, senders)
}

func TestSubscribe_ClosedByCloseAndCancel(t *testing.T) {
	c := NewConversation("c1", nil, nil, nil)
	first, cancelFirst := c.Subscribe()
	second, cancelSecond := c.Subscribe()

	cancelFirst()
	cancelFirst()
	_, open := <-first
	assert.False(t, open)

	c.Close()
	_, open = <-second
	assert.False(t, open)
	cancelSecond()

	late, _ := c.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestSeed_CancelsRepliesForPreviousCounterpart(t *testing.T) {
	sched := &recordingScheduler{}
	c := NewConversation("c1", sched, nil, nil)
	c.Seed("민지")
	_, err := c.Send(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, sched.calls, 1)
	old := sched.calls[0].replyID

	c.Seed("하은")

	assert.True(t, *sched.cancelled[0])
	assert.Zero(t, c.PendingReplies())
	_, ok := c.DeliverReply(old)
	assert.False(t, ok)
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Greeting("하은"), msgs[0].Text)
}
