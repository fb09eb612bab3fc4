// Package ledger tracks a user's coupons and membership.
package ledger

import (
	"context"
	"time"

	"oneday/models"
	"oneday/services/pricing"
	"oneday/services/store"
	"oneday/utils"

	"go.uber.org/zap"
)

// Ledger funnels every coupon and membership mutation of one session.
type Ledger struct {
	store  store.SessionStore
	now    func() time.Time
	logger *zap.Logger
}

func New(s store.SessionStore, now func() time.Time, logger *zap.Logger) *Ledger {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: s, now: now, logger: logger}
}

// Coupons returns every coupon the user owns, spent or not.
func (l *Ledger) Coupons(ctx context.Context) ([]models.Coupon, error) {
	return l.store.Coupons(ctx)
}

// EligibleCoupons returns the coupons selectable against maxPrice.
func (l *Ledger) EligibleCoupons(ctx context.Context, maxPrice int) ([]models.Coupon, error) {
	coupons, err := l.store.Coupons(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.EligibleCoupons(coupons, maxPrice), nil
}

// EligibleCoupon resolves couponID against target. An empty id yields nil.
func (l *Ledger) EligibleCoupon(ctx context.Context, couponID string, target int) (*models.Coupon, error) {
	if couponID == "" {
		return nil, nil
	}
	coupons, err := l.store.Coupons(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := pricing.FindCoupon(coupons, couponID)
	if !ok || !c.Redeemable(target) {
		return nil, models.NewValidationError("couponId", "사용할 수 없는 쿠폰입니다")
	}
	return &c, nil
}

// Redeem marks the coupon used. Unknown or already used coupons are left
// untouched and no error is returned.
func (l *Ledger) Redeem(ctx context.Context, couponID string) error {
	changed, err := l.store.RedeemCoupon(ctx, couponID)
	if err != nil {
		return err
	}
	if changed {
		utils.CouponRedemptions.Inc()
		l.logger.Info("coupon redeemed", zap.String("couponId", couponID))
	}
	return nil
}

// PurchaseMembership replaces the current membership with planID, redeeming
// couponID together with the write when given.
func (l *Ledger) PurchaseMembership(ctx context.Context, planID, couponID string) (*models.Membership, error) {
	plan, ok := Plan(planID)
	if !ok {
		return nil, models.NewValidationError("planId", "존재하지 않는 멤버십입니다")
	}
	coupon, err := l.EligibleCoupon(ctx, couponID, plan.Price)
	if err != nil {
		return nil, err
	}

	start := l.now()
	m := models.Membership{
		PlanID:    plan.ID,
		Name:      plan.Name,
		Price:     plan.Price,
		PaidPrice: pricing.ComputeFinalPrice(plan.Price, coupon),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, plan.DurationDays),
		Features:  append([]string(nil), plan.Features...),
	}
	if err := l.store.ReplaceMembership(ctx, m, couponID); err != nil {
		return nil, err
	}

	utils.MembershipPurchases.WithLabelValues(plan.ID).Inc()
	if coupon != nil {
		utils.CouponRedemptions.Inc()
	}
	l.logger.Info("membership purchased",
		zap.String("plan", plan.ID),
		zap.Int("paidPrice", m.PaidPrice),
		zap.Time("endDate", m.EndDate),
	)
	return &m, nil
}

// CancelMembership drops the membership immediately. Remaining days are forfeited.
func (l *Ledger) CancelMembership(ctx context.Context) error {
	if err := l.store.ClearMembership(ctx); err != nil {
		return err
	}
	l.logger.Info("membership cancelled")
	return nil
}

// ActiveMembership returns the membership only while it is active.
func (l *Ledger) ActiveMembership(ctx context.Context) (*models.Membership, error) {
	m, err := l.store.Membership(ctx)
	if err != nil {
		return nil, err
	}
	if !m.ActiveAt(l.now()) {
		return nil, nil
	}
	return m, nil
}

// HasMembership is derived on every call from the stored end date.
func (l *Ledger) HasMembership(ctx context.Context) (bool, error) {
	m, err := l.ActiveMembership(ctx)
	return m != nil, err
}
