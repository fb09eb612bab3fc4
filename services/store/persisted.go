package store

import (
	"context"
	"errors"
	"slices"

	userRepo "oneday/database/repository/user"
	"oneday/models"
)

// PersistedStore mirrors every mutation to the user document of one account.
type PersistedStore struct {
	repo   userRepo.UserRepository
	userID string
}

func NewPersistedStore(repo userRepo.UserRepository, userID string) *PersistedStore {
	return &PersistedStore{repo: repo, userID: userID}
}

func (s *PersistedStore) UserID() string { return s.userID }

// wrap passes domain errors through and marks everything else as a backend failure.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		verr *models.ValidationError
		cerr *models.ConflictError
	)
	if errors.Is(err, models.ErrNotFound) || errors.As(err, &verr) || errors.As(err, &cerr) {
		return err
	}
	return models.NewExternalServiceError(op, err)
}

func (s *PersistedStore) load(ctx context.Context) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, s.userID)
	if err != nil {
		return nil, wrap("load user", err)
	}
	return u, nil
}

func (s *PersistedStore) Profile(ctx context.Context) (models.Profile, error) {
	u, err := s.load(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	return u.Profile, nil
}

func (s *PersistedStore) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	u, err := s.repo.UpdateProfile(ctx, s.userID, update.Apply())
	if err != nil {
		return models.Profile{}, wrap("update profile", err)
	}
	return u.Profile, nil
}

func (s *PersistedStore) Coupons(ctx context.Context) ([]models.Coupon, error) {
	u, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return u.Coupons, nil
}

func (s *PersistedStore) RedeemCoupon(ctx context.Context, couponID string) (bool, error) {
	changed, err := s.repo.RedeemCoupon(ctx, s.userID, couponID)
	return changed, wrap("redeem coupon", err)
}

func (s *PersistedStore) Membership(ctx context.Context) (*models.Membership, error) {
	u, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return u.Membership, nil
}

func (s *PersistedStore) ReplaceMembership(ctx context.Context, m models.Membership, couponID string) error {
	return wrap("replace membership", s.repo.ReplaceMembership(ctx, s.userID, m, couponID))
}

func (s *PersistedStore) ClearMembership(ctx context.Context) error {
	return wrap("clear membership", s.repo.ClearMembership(ctx, s.userID))
}

func (s *PersistedStore) Favorites(ctx context.Context) ([]string, error) {
	u, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

func (s *PersistedStore) ToggleFavorite(ctx context.Context, listingID string) (bool, error) {
	favs, err := s.Favorites(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(favs, listingID) {
		return false, wrap("remove favorite", s.repo.RemoveFavorite(ctx, s.userID, listingID))
	}
	return true, wrap("add favorite", s.repo.AddFavorite(ctx, s.userID, listingID))
}
