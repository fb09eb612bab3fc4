package store

import (
	"context"
	"sync"
	"time"

	"oneday/models"
)

// MemoryStore keeps everything in process. It backs demo sessions.
type MemoryStore struct {
	mu         sync.Mutex
	profile    models.Profile
	coupons    []models.Coupon
	membership *models.Membership
	favorites  []string
}

// NewDemoStore returns a store seeded the way a fresh demo account starts:
// one welcome coupon, incomplete profile, no membership.
func NewDemoStore(now time.Time) *MemoryStore {
	return &MemoryStore{
		coupons: []models.Coupon{{
			ID:        models.DemoWelcomeCouponID,
			Name:      models.WelcomeCouponName,
			Amount:    models.WelcomeCouponAmount,
			CreatedAt: now,
		}},
		favorites: []string{},
	}
}

func (s *MemoryStore) UserID() string { return "" }

func (s *MemoryStore) Profile(context.Context) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, update models.ProfileUpdate) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = update.Apply()
	return s.profile, nil
}

func (s *MemoryStore) Coupons(context.Context) ([]models.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Coupon(nil), s.coupons...), nil
}

func (s *MemoryStore) RedeemCoupon(_ context.Context, couponID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redeemLocked(couponID), nil
}

func (s *MemoryStore) redeemLocked(couponID string) bool {
	for i := range s.coupons {
		if s.coupons[i].ID == couponID && !s.coupons[i].Used {
			s.coupons[i].Used = true
			return true
		}
	}
	return false
}

func (s *MemoryStore) Membership(context.Context) (*models.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.membership == nil {
		return nil, nil
	}
	m := *s.membership
	return &m, nil
}

func (s *MemoryStore) ReplaceMembership(_ context.Context, m models.Membership, couponID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if couponID != "" && !s.redeemLocked(couponID) {
		return models.NewValidationError("couponId", "사용할 수 없는 쿠폰입니다")
	}
	s.membership = &m
	return nil
}

func (s *MemoryStore) ClearMembership(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.membership = nil
	return nil
}

func (s *MemoryStore) Favorites(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favorites...), nil
}

func (s *MemoryStore) ToggleFavorite(_ context.Context, listingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.favorites {
		if id == listingID {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			return false, nil
		}
	}
	s.favorites = append(s.favorites, listingID)
	return true, nil
}
