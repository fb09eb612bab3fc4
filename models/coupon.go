package models

import "time"

// Coupon is a single-use discount owned by one user.
type Coupon struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Amount    int       `json:"amount" bson:"amount"`
	Used      bool      `json:"used" bson:"used"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// Redeemable reports whether the coupon can be applied against target.
func (c Coupon) Redeemable(target int) bool {
	return !c.Used && c.Amount <= target
}

const (
	WelcomeCouponName   = "회원가입 기념 5,000원"
	WelcomeCouponAmount = 5000
	DemoWelcomeCouponID = "demo_welcome"
)
