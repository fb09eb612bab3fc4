// Package usertest provides an in-memory UserRepository for tests.
package usertest

import (
	"context"
	"slices"
	"sync"

	userRepo "oneday/database/repository/user"
	"oneday/models"
)

var _ userRepo.UserRepository = (*Repo)(nil)

// Repo is a map-backed UserRepository. Err, when set, is returned by every call.
type Repo struct {
	mu    sync.Mutex
	users map[string]*models.User
	Err   error
}

func NewRepo(users ...*models.User) *Repo {
	r := &Repo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *Repo) Get(id string) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

func (r *Repo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return models.NewConflictError("이미 가입된 이메일입니다")
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *Repo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	cp.Coupons = append([]models.Coupon(nil), u.Coupons...)
	cp.Favorites = append([]string(nil), u.Favorites...)
	return &cp, nil
}

func (r *Repo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Repo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	return r.any(func(u *models.User) bool { return u.Phone == phone })
}

func (r *Repo) ExistsByNickname(_ context.Context, nickname, excludeID string) (bool, error) {
	return r.any(func(u *models.User) bool { return u.Nickname == nickname && u.ID != excludeID })
}

func (r *Repo) any(pred func(*models.User) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, u := range r.users {
		if pred(u) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repo) mutate(id string, fn func(u *models.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return models.ErrNotFound
	}
	return fn(u)
}

func (r *Repo) UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error) {
	if err := r.mutate(id, func(u *models.User) error {
		u.Profile = profile
		return nil
	}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) UpdateFCMToken(_ context.Context, id, token string) error {
	return r.mutate(id, func(u *models.User) error {
		u.FCMToken = token
		return nil
	})
}

func (r *Repo) AddFavorite(_ context.Context, id, listingID string) error {
	return r.mutate(id, func(u *models.User) error {
		if !slices.Contains(u.Favorites, listingID) {
			u.Favorites = append(u.Favorites, listingID)
		}
		return nil
	})
}

func (r *Repo) RemoveFavorite(_ context.Context, id, listingID string) error {
	return r.mutate(id, func(u *models.User) error {
		u.Favorites = slices.DeleteFunc(u.Favorites, func(s string) bool { return s == listingID })
		return nil
	})
}

func redeem(u *models.User, couponID string) bool {
	for i := range u.Coupons {
		if u.Coupons[i].ID == couponID && !u.Coupons[i].Used {
			u.Coupons[i].Used = true
			return true
		}
	}
	return false
}

func (r *Repo) RedeemCoupon(_ context.Context, id, couponID string) (bool, error) {
	var changed bool
	err := r.mutate(id, func(u *models.User) error {
		changed = redeem(u, couponID)
		return nil
	})
	return changed, err
}

func (r *Repo) ReplaceMembership(_ context.Context, id string, m models.Membership, couponID string) error {
	return r.mutate(id, func(u *models.User) error {
		if couponID != "" && !redeem(u, couponID) {
			return models.NewValidationError("couponId", "사용할 수 없는 쿠폰입니다")
		}
		u.Membership = &m
		return nil
	})
}

func (r *Repo) ClearMembership(_ context.Context, id string) error {
	return r.mutate(id, func(u *models.User) error {
		u.Membership = nil
		return nil
	})
}
