// Package pricing computes what a user pays for a class or plan.
package pricing

import "oneday/models"

// ComputeFinalPrice applies an optional coupon to basePrice. The result is
// never negative.
func ComputeFinalPrice(basePrice int, coupon *models.Coupon) int {
	discount := 0
	if coupon != nil {
		discount = coupon.Amount
	}
	if final := basePrice - discount; final > 0 {
		return final
	}
	return 0
}

// EligibleCoupons returns the unused coupons whose amount does not exceed
// maxPrice, preserving input order.
func EligibleCoupons(coupons []models.Coupon, maxPrice int) []models.Coupon {
	eligible := make([]models.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c.Redeemable(maxPrice) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// FindCoupon looks up a coupon by id.
func FindCoupon(coupons []models.Coupon, id string) (models.Coupon, bool) {
	for _, c := range coupons {
		if c.ID == id {
			return c, true
		}
	}
	return models.Coupon{}, false
}
