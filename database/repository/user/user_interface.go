package userRepo

import (
	"context"

	"oneday/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. Returns models.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email, or nil if no user has it.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	// ExistsByNickname ignores the user excludeID, so callers can keep their own nickname.
	ExistsByNickname(ctx context.Context, nickname, excludeID string) (bool, error)

	UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error

	AddFavorite(ctx context.Context, id, listingID string) error
	RemoveFavorite(ctx context.Context, id, listingID string) error

	// RedeemCoupon flips an unused coupon to used. It reports whether a coupon changed.
	RedeemCoupon(ctx context.Context, id, couponID string) (bool, error)
	// ReplaceMembership stores m and, when couponID is set, redeems that coupon in the same transaction.
	ReplaceMembership(ctx context.Context, id string, m models.Membership, couponID string) error
	ClearMembership(ctx context.Context, id string) error
}
