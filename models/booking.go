package models

import "time"

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Participant is a fellow attendee of a completed class. SelectedMe is fixed
// when the class completes.
type Participant struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Photo      string `json:"photo"`
	Intro      string `json:"intro"`
	SelectedMe bool   `json:"selectedMe"`
}

// Booking is a reservation of one slot of a listing.
type Booking struct {
	ID           string        `json:"id"`
	Listing      ClassListing  `json:"listing"`
	Slot         ScheduleSlot  `json:"slot"`
	CouponID     string        `json:"couponId,omitempty"`
	PaidPrice    int           `json:"paidPrice"`
	Status       BookingStatus `json:"status"`
	BookedAt     time.Time     `json:"bookedAt"`
	CompletedAt  *time.Time    `json:"completedAt,omitempty"`
	CancelledAt  *time.Time    `json:"cancelledAt,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
}

// Discount is the amount the coupon took off the listing price.
func (b Booking) Discount() int {
	return b.Listing.TotalPrice - b.PaidPrice
}
