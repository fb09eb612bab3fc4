// Package session is the application state of one signed-in or demo user.
// It composes the booking, ledger, matching and chat services over a single
// SessionStore and tracks which screen the user is on.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"oneday/models"
	"oneday/services/booking"
	"oneday/services/catalog"
	"oneday/services/chat"
	"oneday/services/ledger"
	"oneday/services/matching"
	"oneday/services/notification"
	"oneday/services/store"
	"oneday/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchNotifier pushes the match announcement to the user's device.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, userID string, match models.Match) error
}

// ReminderScheduler queues the review reminder for later delivery and
// withdraws it once the review is written.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, p models.ReminderPayload) error
	CancelReminder(ctx context.Context, userID, bookingID string) error
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Catalog   *catalog.Catalog
	Replies   chat.ReplyScheduler
	Notifier  MatchNotifier
	Reminders ReminderScheduler
	Now       func() time.Time
	Logger    *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Catalog == nil {
		d.Catalog = catalog.New()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

type Session struct {
	mu sync.Mutex

	id        string
	store     store.SessionStore
	ledger    *ledger.Ledger
	bookings  *booking.Service
	catalog   *catalog.Catalog
	flows     map[string]*matching.Flow
	matches   []models.Match
	interests []models.InterestSent
	chat      *chat.Conversation
	screen    Screen

	notifier  MatchNotifier
	reminders ReminderScheduler
	now       func() time.Time
	logger    *zap.Logger
}

// New builds a session over st. The session starts on Home.
func New(id string, st store.SessionStore, d Deps) *Session {
	d = d.withDefaults()
	logger := d.Logger.With(zap.String("session", id))
	if uid := st.UserID(); uid != "" {
		logger = logger.With(zap.String("userId", uid))
	}
	l := ledger.New(st, d.Now, logger)
	return &Session{
		id:        id,
		store:     st,
		ledger:    l,
		bookings:  booking.NewService(st, l, d.Now, logger),
		catalog:   d.Catalog,
		flows:     make(map[string]*matching.Flow),
		chat:      chat.NewConversation(id, d.Replies, d.Now, logger),
		screen:    Home{},
		notifier:  d.Notifier,
		reminders: d.Reminders,
		now:       d.Now,
		logger:    logger,
	}
}

func (s *Session) ID() string     { return s.id }
func (s *Session) UserID() string { return s.store.UserID() }
func (s *Session) Demo() bool     { return s.store.UserID() == "" }

// Conversation is the session's chat. It is fixed for the session lifetime.
func (s *Session) Conversation() *chat.Conversation { return s.chat }

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Navigate moves to the target screen, resolved against the current one.
func (s *Session) Navigate(t Target) (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := t.Resolve(s.screen)
	if err != nil {
		return nil, err
	}
	s.screen = next
	return next, nil
}

func (s *Session) listing(id string) (models.ClassListing, error) {
	l, ok := s.catalog.Get(id)
	if !ok {
		return models.ClassListing{}, models.ErrNotFound
	}
	return l, nil
}

// Book reserves a slot. When the profile is incomplete the session moves to
// ProfileSetup and models.ErrProfileIncomplete is returned.
func (s *Session) Book(ctx context.Context, listingID, slotID, couponID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.listing(listingID)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.Book(ctx, l, slotID, couponID)
	if errors.Is(err, models.ErrProfileIncomplete) {
		s.screen = ProfileSetup{Return: Detail{ListingID: listingID, SlotID: slotID}}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.screen = MyPage{Tab: TabUpcoming}
	return b, nil
}

func (s *Session) CancelBooking(bookingID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings.Cancel(bookingID)
}

// CompleteBooking marks the class attended and opens its after-class flow.
func (s *Session) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.bookings.Complete(bookingID)
	if err != nil {
		return nil, err
	}
	s.flows[b.ID] = matching.NewFlow(*b, uuid.NewString)
	s.screen = AfterClass{BookingID: b.ID}

	if uid := s.UserID(); uid != "" && s.reminders != nil {
		if err := s.reminders.ScheduleReminder(ctx, notification.ReviewReminder(uid, *b)); err != nil {
			s.logger.Warn("failed to schedule review reminder", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

// Bookings is the MyPage history.
type Bookings struct {
	Upcoming  []models.Booking `json:"upcoming"`
	Completed []models.Booking `json:"completed"`
	Cancelled []models.Booking `json:"cancelled"`
}

func (s *Session) Bookings() Bookings {
	return Bookings{
		Upcoming:  s.bookings.Upcoming(),
		Completed: s.bookings.Completed(),
		Cancelled: s.bookings.Cancelled(),
	}
}

func (s *Session) flow(bookingID string) (*matching.Flow, error) {
	f, ok := s.flows[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return f, nil
}

// AfterClassView is a completed booking together with its matching state.
type AfterClassView struct {
	Booking  models.Booking `json:"booking"`
	Matching matching.View  `json:"matching"`
}

func (s *Session) AfterClass(ctx context.Context, bookingID string) (AfterClassView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.afterClassLocked(ctx, bookingID)
}

func (s *Session) afterClassLocked(ctx context.Context, bookingID string) (AfterClassView, error) {
	f, err := s.flow(bookingID)
	if err != nil {
		return AfterClassView{}, err
	}
	b, _ := s.bookings.CompletedBooking(bookingID)
	member, err := s.ledger.HasMembership(ctx)
	if err != nil {
		return AfterClassView{}, err
	}
	return AfterClassView{Booking: b, Matching: f.View(s.now(), member)}, nil
}

// SubmitReview records the review and withdraws the pending deadline reminder.
func (s *Session) SubmitReview(ctx context.Context, bookingID string, rating int, content string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.flow(bookingID)
	if err != nil {
		return nil, err
	}
	r, err := f.SubmitReview(s.now(), rating, content)
	if err != nil {
		return nil, err
	}
	if uid := s.UserID(); uid != "" && s.reminders != nil {
		if err := s.reminders.CancelReminder(ctx, uid, bookingID); err != nil {
			s.logger.Warn("failed to cancel review reminder", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	return r, nil
}

func (s *Session) Pick(bookingID string, participantID int) (*models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.flow(bookingID)
	if err != nil {
		return nil, err
	}
	return f.Pick(s.now(), participantID)
}

// ConfirmSelection resolves the pick. A match reseeds the chat with the
// counterpart, notifies the user and moves to the chat screen.
func (s *Session) ConfirmSelection(ctx context.Context, bookingID string) (matching.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.flow(bookingID)
	if err != nil {
		return matching.Outcome{Kind: matching.OutcomeNone}, err
	}
	out, err := f.Confirm(s.now())
	if err != nil {
		return out, err
	}

	switch out.Kind {
	case matching.OutcomeMatch:
		m := *out.Match
		s.matches = append(s.matches, m)
		s.chat.Seed(m.Participant.Name)
		s.screen = Chat{}
		if uid := s.UserID(); uid != "" && s.notifier != nil {
			if err := s.notifier.NotifyMatch(ctx, uid, m); err != nil {
				s.logger.Warn("failed to send match push", zap.String("matchId", m.ID), zap.Error(err))
			}
		}
		s.logger.Info("matched", zap.String("bookingId", bookingID), zap.String("with", m.Participant.Name))
	case matching.OutcomeInterest:
		s.interests = append(s.interests, *out.Interest)
		s.logger.Info("interest sent", zap.String("bookingId", bookingID), zap.Int("participant", out.Interest.Participant.ID))
	default:
		return out, nil
	}
	utils.MatchOutcomes.WithLabelValues(string(out.Kind)).Inc()
	return out, nil
}

func (s *Session) Matches() []models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Match{}, s.matches...)
}

func (s *Session) Interests() []models.InterestSent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.InterestSent{}, s.interests...)
}

// ChatView is the chat screen's model.
type ChatView struct {
	Matched     bool             `json:"matched"`
	Counterpart string           `json:"counterpart,omitempty"`
	Messages    []models.Message `json:"messages"`
}

func (s *Session) Messages() ChatView {
	return ChatView{
		Matched:     s.chat.Matched(),
		Counterpart: s.chat.Counterpart(),
		Messages:    s.chat.Messages(),
	}
}

func (s *Session) SendMessage(ctx context.Context, text string) (models.Message, error) {
	return s.chat.Send(ctx, text)
}

// PurchaseMembership buys planID. When the purchase started from the
// membership screen the session returns to the screen that opened it.
func (s *Session) PurchaseMembership(ctx context.Context, planID, couponID string) (*models.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.ledger.PurchaseMembership(ctx, planID, couponID)
	if err != nil {
		return nil, err
	}
	if ms, ok := s.screen.(Membership); ok && ms.Return != nil {
		s.screen = ms.Return
	}
	return m, nil
}

func (s *Session) CancelMembership(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CancelMembership(ctx)
}

func (s *Session) ActiveMembership(ctx context.Context) (*models.Membership, error) {
	return s.ledger.ActiveMembership(ctx)
}

func (s *Session) HasMembership(ctx context.Context) (bool, error) {
	return s.ledger.HasMembership(ctx)
}

// Coupons lists the user's coupons. A positive maxPrice keeps only those
// selectable against that price.
func (s *Session) Coupons(ctx context.Context, maxPrice int) ([]models.Coupon, error) {
	if maxPrice > 0 {
		return s.ledger.EligibleCoupons(ctx, maxPrice)
	}
	return s.ledger.Coupons(ctx)
}

func (s *Session) ToggleFavorite(ctx context.Context, listingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.listing(listingID); err != nil {
		return false, err
	}
	return s.store.ToggleFavorite(ctx, listingID)
}

func (s *Session) Favorites(ctx context.Context) ([]models.ClassListing, error) {
	ids, err := s.store.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	return s.catalog.Favorites(ids), nil
}

func (s *Session) Profile(ctx context.Context) (models.Profile, error) {
	return s.store.Profile(ctx)
}

// UpdateProfile validates and saves the profile. Leaving ProfileSetup goes
// back to the screen that required it, or Home.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	if err := update.Validate(); err != nil {
		return models.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.UpdateProfile(ctx, update)
	if err != nil {
		return models.Profile{}, err
	}
	switch sc := s.screen.(type) {
	case ProfileSetup:
		if sc.Return != nil {
			s.screen = sc.Return
		} else {
			s.screen = Home{}
		}
	case ProfileEdit:
		s.screen = Profile{}
	}
	return p, nil
}

// View renders the current screen.
func (s *Session) View(ctx context.Context) (ScreenView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render(ctx, s, s.screen)
}

// Close stops pending chat replies. The session must not be used afterwards.
func (s *Session) Close() {
	s.chat.Close()
}
