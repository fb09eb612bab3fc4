package models

import "time"

// MembershipPlan is a purchasable subscription tier.
type MembershipPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        int      `json:"price"`
	DurationDays int      `json:"duration"`
	Features     []string `json:"features"`
	Popular      bool     `json:"popular"`
}

// Membership is the user's current subscription. Whether it is active is
// always derived from EndDate at read time.
type Membership struct {
	PlanID    string    `json:"planId" bson:"planId"`
	Name      string    `json:"name" bson:"name"`
	Price     int       `json:"price" bson:"price"`
	PaidPrice int       `json:"paidPrice" bson:"paidPrice"`
	StartDate time.Time `json:"startDate" bson:"startDate"`
	EndDate   time.Time `json:"endDate" bson:"endDate"`
	Features  []string  `json:"features" bson:"features"`
}

// ActiveAt reports whether m is non-nil and not yet ended at now.
func (m *Membership) ActiveAt(now time.Time) bool {
	return m != nil && now.Before(m.EndDate)
}
