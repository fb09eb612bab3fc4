// Package booking manages reservations from creation to completion or cancellation.
package booking

import (
	"context"
	"sync"
	"time"

	"oneday/models"
	"oneday/services/ledger"
	"oneday/services/pricing"
	"oneday/services/store"
	"oneday/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service holds one session's bookings. Catalog capacity is never touched:
// booking does not consume a seat and cancelling does not free one.
type Service struct {
	mu        sync.Mutex
	store     store.SessionStore
	ledger    *ledger.Ledger
	now       func() time.Time
	logger    *zap.Logger
	upcoming  []models.Booking
	completed []models.Booking
	cancelled []models.Booking
}

func NewService(s store.SessionStore, l *ledger.Ledger, now func() time.Time, logger *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, ledger: l, now: now, logger: logger}
}

// Book reserves slotID of listing, optionally applying couponID.
// It returns models.ErrProfileIncomplete without side effects when the user
// has not finished profile setup.
func (s *Service) Book(ctx context.Context, listing models.ClassListing, slotID, couponID string) (*models.Booking, error) {
	slot, ok := listing.Slot(slotID)
	if !ok {
		return nil, errUnknownSlot
	}
	if slot.Remaining() <= 0 {
		utils.Bookings.WithLabelValues("full").Inc()
		return nil, ErrSlotFull
	}

	profile, err := s.store.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if !profile.ProfileComplete {
		utils.Bookings.WithLabelValues("profile_incomplete").Inc()
		return nil, models.ErrProfileIncomplete
	}

	coupon, err := s.ledger.EligibleCoupon(ctx, couponID, listing.TotalPrice)
	if err != nil {
		return nil, err
	}
	if coupon != nil {
		if err := s.ledger.Redeem(ctx, coupon.ID); err != nil {
			return nil, err
		}
	}

	b := models.Booking{
		ID:        uuid.NewString(),
		Listing:   listing,
		Slot:      slot,
		CouponID:  couponID,
		PaidPrice: pricing.ComputeFinalPrice(listing.TotalPrice, coupon),
		Status:    models.BookingUpcoming,
		BookedAt:  s.now(),
	}

	s.mu.Lock()
	s.upcoming = append(s.upcoming, b)
	s.mu.Unlock()

	utils.Bookings.WithLabelValues("booked").Inc()
	s.logger.Info("class booked",
		zap.String("bookingId", b.ID),
		zap.String("listingId", listing.ID),
		zap.String("slotId", slot.ID),
		zap.Int("paidPrice", b.PaidPrice),
	)
	return &b, nil
}

// Cancel moves an upcoming booking to the cancelled history.
func (s *Service) Cancel(bookingID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.takeUpcomingLocked(bookingID)
	if err != nil {
		return nil, err
	}
	at := s.now()
	b.Status = models.BookingCancelled
	b.CancelledAt = &at
	s.cancelled = append(s.cancelled, b)

	utils.Bookings.WithLabelValues("cancelled").Inc()
	s.logger.Info("booking cancelled", zap.String("bookingId", bookingID))
	return &b, nil
}

// Complete marks an upcoming booking as attended, stamping completedAt and
// attaching the attendee roster that the matching flow starts from.
func (s *Service) Complete(bookingID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.takeUpcomingLocked(bookingID)
	if err != nil {
		return nil, err
	}
	at := s.now()
	b.Status = models.BookingCompleted
	b.CompletedAt = &at
	b.Participants = rosterFor(b.Listing.Type)
	s.completed = append(s.completed, b)

	utils.Bookings.WithLabelValues("completed").Inc()
	s.logger.Info("class completed",
		zap.String("bookingId", bookingID),
		zap.Int("participants", len(b.Participants)),
	)
	return &b, nil
}

func (s *Service) takeUpcomingLocked(bookingID string) (models.Booking, error) {
	for i, b := range s.upcoming {
		if b.ID == bookingID {
			s.upcoming = append(s.upcoming[:i], s.upcoming[i+1:]...)
			return b, nil
		}
	}
	return models.Booking{}, errBookingNotFound
}

// CompletedBooking looks up a completed booking by id.
func (s *Service) CompletedBooking(bookingID string) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.completed {
		if b.ID == bookingID {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (s *Service) Upcoming() []models.Booking  { return s.snapshot(&s.upcoming) }
func (s *Service) Completed() []models.Booking { return s.snapshot(&s.completed) }
func (s *Service) Cancelled() []models.Booking { return s.snapshot(&s.cancelled) }

func (s *Service) snapshot(list *[]models.Booking) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking{}, (*list)...)
}
