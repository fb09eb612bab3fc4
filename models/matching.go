package models

import "time"

// Review is the write-once review of a completed class.
type Review struct {
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	WrittenAt time.Time `json:"writtenAt"`
}

// Match pairs the user with a participant who also selected them.
type Match struct {
	ID          string      `json:"id"`
	BookingID   string      `json:"bookingId"`
	Participant Participant `json:"participant"`
	MatchedAt   time.Time   `json:"matchedAt"`
}

// InterestSent records a one-sided selection. Nothing completes it later.
type InterestSent struct {
	BookingID   string      `json:"bookingId"`
	Participant Participant `json:"participant"`
	SentAt      time.Time   `json:"sentAt"`
}
