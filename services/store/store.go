// Package store holds the per-session view of a user's record: profile,
// coupons, membership and favorites. A session picks one implementation when
// it starts and never branches on demo mode afterwards.
package store

import (
	"context"

	"oneday/models"
)

// SessionStore is the persistence surface a session mutates through.
type SessionStore interface {
	Profile(ctx context.Context) (models.Profile, error)
	// UpdateProfile stores the update and marks the profile complete.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error)

	Coupons(ctx context.Context) ([]models.Coupon, error)
	// RedeemCoupon marks an unused coupon as used and reports whether anything changed.
	RedeemCoupon(ctx context.Context, couponID string) (bool, error)

	Membership(ctx context.Context) (*models.Membership, error)
	// ReplaceMembership stores m, redeeming couponID in the same write when set.
	ReplaceMembership(ctx context.Context, m models.Membership, couponID string) error
	ClearMembership(ctx context.Context) error

	Favorites(ctx context.Context) ([]string, error)
	// ToggleFavorite adds or removes listingID and reports whether it is now a favorite.
	ToggleFavorite(ctx context.Context, listingID string) (bool, error)

	// UserID is empty for demo sessions.
	UserID() string
}
