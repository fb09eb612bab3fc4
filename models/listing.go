package models

// ClassType distinguishes group classes from private sessions.
type ClassType string

const (
	ClassTypeGroup    ClassType = "group"
	ClassTypeOneOnOne ClassType = "one_on_one"
)

// ScheduleSlot is one dated occurrence of a class.
type ScheduleSlot struct {
	ID                string `json:"id" bson:"id"`
	Date              string `json:"date" bson:"date"` // YYYY-MM-DD
	Time              string `json:"time" bson:"time"` // HH:MM
	MaxCapacity       int    `json:"maxCapacity" bson:"maxCapacity"`
	CurrentEnrollment int    `json:"currentEnrollment" bson:"currentEnrollment"`
}

// Remaining returns the number of open seats.
func (s ScheduleSlot) Remaining() int {
	return s.MaxCapacity - s.CurrentEnrollment
}

// IsClosingSoon reports whether exactly one seat is left.
func (s ScheduleSlot) IsClosingSoon() bool {
	return s.Remaining() == 1
}

// IsFull reports whether no seats are left.
func (s ScheduleSlot) IsFull() bool {
	return s.Remaining() <= 0
}

// ListingReview is a catalog review left by a past attendee.
type ListingReview struct {
	ID       string `json:"id" bson:"id"`
	UserName string `json:"userName" bson:"userName"`
	Rating   int    `json:"rating" bson:"rating"`
	Content  string `json:"content" bson:"content"`
	Date     string `json:"date" bson:"date"`
}

// ClassListing is immutable catalog data for a one-day class.
type ClassListing struct {
	ID          string          `json:"id" bson:"id"`
	Title       string          `json:"title" bson:"title"`
	Subtitle    string          `json:"subtitle" bson:"subtitle"`
	Description string          `json:"description" bson:"description"`
	Category    string          `json:"category" bson:"category"`
	Type        ClassType       `json:"type" bson:"type"`
	Location    string          `json:"location" bson:"location"`
	Image       string          `json:"image,omitempty" bson:"image,omitempty"`
	Rating      float64         `json:"rating" bson:"rating"`
	ReviewCount int             `json:"reviewCount" bson:"reviewCount"`
	BasePrice   int             `json:"basePrice" bson:"basePrice"`
	PlatformFee int             `json:"platformFee" bson:"platformFee"`
	TotalPrice  int             `json:"totalPrice" bson:"totalPrice"`
	Schedules   []ScheduleSlot  `json:"schedules" bson:"schedules"`
	Reviews     []ListingReview `json:"reviews" bson:"reviews"`
}

// Slot looks up a schedule slot by id.
func (l ClassListing) Slot(id string) (ScheduleSlot, bool) {
	for _, s := range l.Schedules {
		if s.ID == id {
			return s, true
		}
	}
	return ScheduleSlot{}, false
}

// EarliestSlot returns the slot with the smallest date. Dates are ISO formatted
// so lexical order matches chronological order.
func (l ClassListing) EarliestSlot() (ScheduleSlot, bool) {
	if len(l.Schedules) == 0 {
		return ScheduleSlot{}, false
	}
	earliest := l.Schedules[0]
	for _, s := range l.Schedules[1:] {
		if s.Date < earliest.Date {
			earliest = s
		}
	}
	return earliest, true
}
