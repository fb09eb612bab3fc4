// Package matching runs the post-class flow: review, pick, and mutual match.
// Every window is derived from completedAt on read; nothing is scheduled.
package matching

import (
	"strings"
	"sync"
	"time"

	"oneday/models"
)

const (
	ReviewWindow    = 24 * time.Hour
	SelectionWindow = 48 * time.Hour
)

type Phase string

const (
	PhaseReview    Phase = "review"    // waiting for the review
	PhaseSelection Phase = "selection" // review written, picking open
	PhaseExpired   Phase = "expired"
)

type OutcomeKind string

const (
	OutcomeNone     OutcomeKind = "none"
	OutcomeMatch    OutcomeKind = "match"
	OutcomeInterest OutcomeKind = "interest_sent"
)

// Outcome is the result of confirming a pick.
type Outcome struct {
	Kind     OutcomeKind          `json:"kind"`
	Match    *models.Match        `json:"match,omitempty"`
	Interest *models.InterestSent `json:"interest,omitempty"`
}

// Disclosure describes who pre-selected the user. Names stay hidden behind
// the upsell unless the user has an active membership.
type Disclosure struct {
	Locked bool     `json:"locked"`
	Count  int      `json:"count"`
	Names  []string `json:"names,omitempty"`
}

// View is the read model of a flow at one instant.
type View struct {
	BookingID         string               `json:"bookingId"`
	Phase             Phase                `json:"phase"`
	CompletedAt       time.Time            `json:"completedAt"`
	ReviewDeadline    time.Time            `json:"reviewDeadline"`
	SelectionDeadline time.Time            `json:"selectionDeadline"`
	CanReview         bool                 `json:"canReview"`
	CanSelect         bool                 `json:"canSelect"`
	ReviewWritten     bool                 `json:"reviewWritten"`
	Review            *models.Review       `json:"review,omitempty"`
	Participants      []models.Participant `json:"participants,omitempty"`
	PickedID          int                  `json:"pickedId,omitempty"`
	Disclosure        *Disclosure          `json:"disclosure,omitempty"`
}

// Flow is the matching state of one completed booking.
type Flow struct {
	mu           sync.Mutex
	bookingID    string
	completedAt  time.Time
	participants []models.Participant
	review       *models.Review
	pick         *models.Participant
	confirmed    map[int]OutcomeKind
	newID        func() string
}

// NewFlow starts the flow of a completed booking. newID mints match ids.
func NewFlow(b models.Booking, newID func() string) *Flow {
	completedAt := b.BookedAt
	if b.CompletedAt != nil {
		completedAt = *b.CompletedAt
	}
	return &Flow{
		bookingID:    b.ID,
		completedAt:  completedAt,
		participants: append([]models.Participant(nil), b.Participants...),
		confirmed:    make(map[int]OutcomeKind),
		newID:        newID,
	}
}

func (f *Flow) BookingID() string { return f.bookingID }

func (f *Flow) elapsed(now time.Time) time.Duration {
	return now.Sub(f.completedAt)
}

func (f *Flow) canReviewLocked(now time.Time) bool {
	return f.review == nil && f.elapsed(now) <= ReviewWindow
}

func (f *Flow) canSelectLocked(now time.Time) bool {
	return f.review != nil && f.elapsed(now) <= SelectionWindow
}

// CanReview reports whether a review may still be submitted.
func (f *Flow) CanReview(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canReviewLocked(now)
}

// CanSelect reports whether participants may be picked and confirmed.
func (f *Flow) CanSelect(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSelectLocked(now)
}

// SubmitReview stores the one review of the class.
func (f *Flow) SubmitReview(now time.Time, rating int, content string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.review != nil {
		return nil, models.NewConflictError("이미 리뷰를 작성했어요")
	}
	if f.elapsed(now) > ReviewWindow {
		return nil, &models.ExpiryError{Window: "review"}
	}
	if rating < 1 || rating > 5 {
		return nil, models.NewValidationError("rating", "별점은 1~5 사이여야 해요")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("content", "리뷰 내용을 입력해주세요")
	}

	f.review = &models.Review{Rating: rating, Content: content, WrittenAt: now}
	r := *f.review
	return &r, nil
}

// Pick makes participantID the current pick. Picking the current pick again
// clears it. It returns the pick after the change, or nil.
func (f *Flow) Pick(now time.Time, participantID int) (*models.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.canSelectLocked(now) {
		return nil, &models.ExpiryError{Window: "selection"}
	}
	p, ok := f.participantLocked(participantID)
	if !ok {
		return nil, models.NewValidationError("participantId", "참가자를 찾을 수 없어요")
	}
	if f.pick != nil && f.pick.ID == participantID {
		f.pick = nil
		return nil, nil
	}
	f.pick = &p
	return &p, nil
}

// Confirm resolves the current pick. Without a pick it does nothing.
func (f *Flow) Confirm(now time.Time) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.canSelectLocked(now) {
		return Outcome{Kind: OutcomeNone}, &models.ExpiryError{Window: "selection"}
	}
	if f.pick == nil {
		return Outcome{Kind: OutcomeNone}, nil
	}
	p := *f.pick
	if _, done := f.confirmed[p.ID]; done {
		return Outcome{Kind: OutcomeNone}, models.NewConflictError("이미 선택을 확정한 참가자예요")
	}
	f.pick = nil

	if p.SelectedMe {
		f.confirmed[p.ID] = OutcomeMatch
		return Outcome{Kind: OutcomeMatch, Match: &models.Match{
			ID:          f.newID(),
			BookingID:   f.bookingID,
			Participant: p,
			MatchedAt:   now,
		}}, nil
	}
	f.confirmed[p.ID] = OutcomeInterest
	return Outcome{Kind: OutcomeInterest, Interest: &models.InterestSent{
		BookingID:   f.bookingID,
		Participant: p,
		SentAt:      now,
	}}, nil
}

func (f *Flow) participantLocked(id int) (models.Participant, bool) {
	for _, p := range f.participants {
		if p.ID == id {
			return p, true
		}
	}
	return models.Participant{}, false
}

func (f *Flow) disclosureLocked(hasMembership bool) Disclosure {
	var names []string
	for _, p := range f.participants {
		if p.SelectedMe {
			names = append(names, p.Name)
		}
	}
	if !hasMembership {
		return Disclosure{Locked: true, Count: len(names)}
	}
	return Disclosure{Count: len(names), Names: names}
}

// View renders the flow at now. Participants and disclosure are withheld
// until the review is written and the selection window is still open.
func (f *Flow) View(now time.Time, hasMembership bool) View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		BookingID:         f.bookingID,
		CompletedAt:       f.completedAt,
		ReviewDeadline:    f.completedAt.Add(ReviewWindow),
		SelectionDeadline: f.completedAt.Add(SelectionWindow),
		CanReview:         f.canReviewLocked(now),
		CanSelect:         f.canSelectLocked(now),
		ReviewWritten:     f.review != nil,
	}
	if f.review != nil {
		r := *f.review
		v.Review = &r
	}

	switch {
	case v.CanSelect:
		v.Phase = PhaseSelection
		v.Participants = append([]models.Participant(nil), f.participants...)
		if !hasMembership {
			// selectedMe must not leak through the roster either
			for i := range v.Participants {
				v.Participants[i].SelectedMe = false
			}
		}
		if f.pick != nil {
			v.PickedID = f.pick.ID
		}
		d := f.disclosureLocked(hasMembership)
		v.Disclosure = &d
	case v.CanReview:
		v.Phase = PhaseReview
	default:
		v.Phase = PhaseExpired
	}
	return v
}
