package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"oneday/database/repository/user/usertest"
	"oneday/models"
	"oneday/services/catalog"
	"oneday/services/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

var t0 = time.Date(2025, 2, 7, 21, 0, 0, 0, time.UTC)

var profile = models.ProfileUpdate{
	Nickname:  "원데이",
	BirthYear: "1995",
	Company:   "스타트업",
	Job:       "개발",
	Region:    "seoul-gangnam",
	Interests: []string{"커피", "여행", "사진"},
}

func wineClass() models.ClassListing {
	return models.ClassListing{
		ID:         "wine",
		Title:      "와인 클래스",
		Type:       models.ClassTypeGroup,
		BasePrice:  45000,
		TotalPrice: 50000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-07", Time: "19:00", MaxCapacity: 4, CurrentEnrollment: 3},
		},
	}
}

type recordedReminder struct {
	payloads  []models.ReminderPayload
	cancelled []string
}

func (r *recordedReminder) ScheduleReminder(_ context.Context, p models.ReminderPayload) error {
	r.payloads = append(r.payloads, p)
	return nil
}

func (r *recordedReminder) CancelReminder(_ context.Context, userID, bookingID string) error {
	r.cancelled = append(r.cancelled, userID+":"+bookingID)
	return nil
}

type recordedNotifier struct{ matches []models.Match }

func (r *recordedNotifier) NotifyMatch(_ context.Context, _ string, m models.Match) error {
	r.matches = append(r.matches, m)
	return nil
}

func newManager(c *clock, d Deps) *Manager {
	d.Catalog = catalog.New(wineClass())
	d.Now = c.Now
	return NewManager(usertest.NewRepo(), d)
}

func TestEndToEndBookingMatchAndChat(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: t0.Add(-time.Hour)}
	m := newManager(c, Deps{})
	s := m.StartDemo()
	defer m.End(s.ID())

	l, ok := s.catalog.Get("wine")
	require.True(t, ok)
	slot, _ := l.Slot("s1")
	assert.True(t, slot.IsClosingSoon())

	_, err := s.UpdateProfile(ctx, profile)
	require.NoError(t, err)

	b, err := s.Book(ctx, "wine", "s1", models.DemoWelcomeCouponID)
	require.NoError(t, err)
	assert.Equal(t, 45000, b.PaidPrice)
	coupons, err := s.Coupons(ctx, 0)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.True(t, coupons[0].Used)

	c.Set(t0)
	_, err = s.CompleteBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, ScreenAfterClass, s.Screen().Name())

	c.Set(t0.Add(time.Hour))
	_, err = s.SubmitReview(ctx, b.ID, 5, "좋았어요")
	require.NoError(t, err)

	view, err := s.AfterClass(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Matching.Disclosure)
	assert.True(t, view.Matching.Disclosure.Locked)
	assert.Empty(t, view.Matching.Disclosure.Names)

	_, err = s.PurchaseMembership(ctx, "premium", "")
	require.NoError(t, err)

	c.Set(t0.Add(2 * time.Hour))
	view, err = s.AfterClass(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, view.Matching.Disclosure.Locked)
	assert.Equal(t, []string{"민지"}, view.Matching.Disclosure.Names)

	_, err = s.Pick(b.ID, 1)
	require.NoError(t, err)
	out, err := s.ConfirmSelection(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, matching.OutcomeMatch, out.Kind)
	assert.Len(t, s.Matches(), 1)
	assert.Equal(t, ScreenChat, s.Screen().Name())
	assert.Len(t, s.Messages().Messages, 1)

	_, err = s.SendMessage(ctx, "hi")
	require.NoError(t, err)
	assert.Len(t, s.Messages().Messages, 2)

	assert.Eventually(t, func() bool {
		return len(s.Messages().Messages) == 3
	}, 4*time.Second, 50*time.Millisecond)
	msgs := s.Messages().Messages
	assert.Equal(t, models.SenderOther, msgs[2].Sender)
}

func TestBookWithoutProfileRedirects(t *testing.T) {
	ctx := context.Background()
	m := newManager(&clock{t: t0}, Deps{})
	s := m.StartDemo()
	defer m.End(s.ID())

	_, err := s.Book(ctx, "wine", "s1", "")
	assert.ErrorIs(t, err, models.ErrProfileIncomplete)
	setup, ok := s.Screen().(ProfileSetup)
	require.True(t, ok)
	assert.Equal(t, Detail{ListingID: "wine", SlotID: "s1"}, setup.Return)
	assert.Empty(t, s.Bookings().Upcoming)

	_, err = s.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, Detail{ListingID: "wine", SlotID: "s1"}, s.Screen())
}

func TestInterestSentLeavesChatEmpty(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: t0}
	m := newManager(c, Deps{})
	s := m.StartDemo()
	defer m.End(s.ID())

	_, err := s.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	b, err := s.Book(ctx, "wine", "s1", "")
	require.NoError(t, err)
	_, err = s.CompleteBooking(ctx, b.ID)
	require.NoError(t, err)
	_, err = s.SubmitReview(ctx, b.ID, 4, "재밌었어요")
	require.NoError(t, err)

	_, err = s.Pick(b.ID, 2)
	require.NoError(t, err)
	out, err := s.ConfirmSelection(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, matching.OutcomeInterest, out.Kind)
	assert.Len(t, s.Interests(), 1)
	assert.Empty(t, s.Matches())
	assert.False(t, s.Messages().Matched)
	assert.Empty(t, s.Messages().Messages)
}

func TestPersistedSessionSchedulesReminderAndPush(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: t0}
	reminders := &recordedReminder{}
	notifier := &recordedNotifier{}
	repo := usertest.NewRepo(&models.User{ID: "u1", Email: "a@b.c"})
	m := NewManager(repo, Deps{
		Catalog:   catalog.New(wineClass()),
		Now:       c.Now,
		Reminders: reminders,
		Notifier:  notifier,
	})
	s := m.StartPersisted("u1")
	defer m.End(s.ID())
	assert.False(t, s.Demo())

	_, err := s.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	b, err := s.Book(ctx, "wine", "s1", "")
	require.NoError(t, err)
	_, err = s.CompleteBooking(ctx, b.ID)
	require.NoError(t, err)

	require.Len(t, reminders.payloads, 1)
	assert.Equal(t, t0.Add(20*time.Hour), reminders.payloads[0].FireAt)
	assert.Equal(t, "u1", reminders.payloads[0].UserID)

	_, err = s.SubmitReview(ctx, b.ID, 0, "최고")
	require.Error(t, err)
	assert.Empty(t, reminders.cancelled)

	_, err = s.SubmitReview(ctx, b.ID, 5, "최고")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1:" + b.ID}, reminders.cancelled)
	_, err = s.Pick(b.ID, 1)
	require.NoError(t, err)
	_, err = s.ConfirmSelection(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, notifier.matches, 1)
}

func TestDemoSessionSkipsReminder(t *testing.T) {
	ctx := context.Background()
	reminders := &recordedReminder{}
	m := newManager(&clock{t: t0}, Deps{Reminders: reminders})
	s := m.StartDemo()
	defer m.End(s.ID())

	_, err := s.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	b, err := s.Book(ctx, "wine", "s1", "")
	require.NoError(t, err)
	_, err = s.CompleteBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, reminders.payloads)

	_, err = s.SubmitReview(ctx, b.ID, 5, "좋아요")
	require.NoError(t, err)
	assert.Empty(t, reminders.cancelled)
}

func TestMembershipReturnsToOpeningScreen(t *testing.T) {
	ctx := context.Background()
	m := newManager(&clock{t: t0}, Deps{})
	s := m.StartDemo()
	defer m.End(s.ID())

	_, err := s.Navigate(Target{Screen: ScreenDetail, ListingID: "wine"})
	require.NoError(t, err)
	_, err = s.Navigate(Target{Screen: ScreenMembership})
	require.NoError(t, err)

	v, err := s.View(ctx)
	require.NoError(t, err)
	mv, ok := v.Data.(MembershipView)
	require.True(t, ok)
	assert.Len(t, mv.Plans, 3)
	assert.Nil(t, mv.Active)

	_, err = s.PurchaseMembership(ctx, "basic", models.DemoWelcomeCouponID)
	require.NoError(t, err)
	assert.Equal(t, Detail{ListingID: "wine"}, s.Screen())

	has, err := s.HasMembership(ctx)
	require.NoError(t, err)
	assert.True(t, has)
	require.NoError(t, s.CancelMembership(ctx))
	has, err = s.HasMembership(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestViewRendersEveryScreen(t *testing.T) {
	ctx := context.Background()
	m := newManager(&clock{t: t0}, Deps{})
	s := m.StartDemo()
	defer m.End(s.ID())

	_, err := s.UpdateProfile(ctx, profile)
	require.NoError(t, err)
	b, err := s.Book(ctx, "wine", "s1", "")
	require.NoError(t, err)
	_, err = s.CompleteBooking(ctx, b.ID)
	require.NoError(t, err)

	targets := []Target{
		{Screen: ScreenLogin},
		{Screen: ScreenProfileSetup},
		{Screen: ScreenHome, Query: catalog.Query{Sort: catalog.SortPriceAsc}},
		{Screen: ScreenDetail, ListingID: "wine", SlotID: "s1"},
		{Screen: ScreenAfterClass, BookingID: b.ID},
		{Screen: ScreenChat},
		{Screen: ScreenMyPage, Tab: TabCompleted},
		{Screen: ScreenMembership},
		{Screen: ScreenFavorites},
		{Screen: ScreenProfile},
		{Screen: ScreenProfileEdit},
	}
	for _, target := range targets {
		t.Run(string(target.Screen), func(t *testing.T) {
			_, err := s.Navigate(target)
			require.NoError(t, err)
			v, err := s.View(ctx)
			require.NoError(t, err)
			assert.Equal(t, target.Screen, v.Screen)
		})
	}

	_, err = s.Navigate(Target{Screen: "nowhere"})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestToggleFavoriteUnknownListing(t *testing.T) {
	m := newManager(&clock{t: t0}, Deps{})
	s := m.StartDemo()
	defer m.End(s.ID())

	_, err := s.ToggleFavorite(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	on, err := s.ToggleFavorite(context.Background(), "wine")
	require.NoError(t, err)
	assert.True(t, on)
	favs, err := s.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "wine", favs[0].ID)
}

func TestManagerEndClosesConversation(t *testing.T) {
	m := newManager(&clock{t: t0}, Deps{})
	s := m.StartDemo()

	conv, ok := m.Conversation(s.ID())
	require.True(t, ok)
	assert.Same(t, s.Conversation(), conv)

	assert.True(t, m.End(s.ID()))
	assert.False(t, m.End(s.ID()))
	_, ok = m.Get(s.ID())
	assert.False(t, ok)

	_, err := conv.Send(context.Background(), "hello")
	var conflict *models.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
