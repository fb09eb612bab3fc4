package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"oneday/database/repository/user/usertest"
	"oneday/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileUpdate = models.ProfileUpdate{
	Nickname:  "원데이체험",
	BirthYear: "1995",
	Company:   "스타트업",
	Job:       "기획/전략",
	Region:    "seoul-gangnam",
	Interests: []string{"커피", "여행", "사진"},
}

func TestDemoStore_InitialState(t *testing.T) {
	ctx := context.Background()
	s := NewDemoStore(time.Now())

	coupons, err := s.Coupons(ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, models.DemoWelcomeCouponID, coupons[0].ID)
	assert.Equal(t, 5000, coupons[0].Amount)
	assert.False(t, coupons[0].Used)

	m, err := s.Membership(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)

	p, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.False(t, p.ProfileComplete)
	assert.Empty(t, s.UserID())
}

func TestMemoryStore_RedeemIsOneShot(t *testing.T) {
	ctx := context.Background()
	s := NewDemoStore(time.Now())

	changed, err := s.RedeemCoupon(ctx, models.DemoWelcomeCouponID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.RedeemCoupon(ctx, models.DemoWelcomeCouponID)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = s.RedeemCoupon(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMemoryStore_ReplaceMembershipWithSpentCoupon(t *testing.T) {
	ctx := context.Background()
	s := NewDemoStore(time.Now())
	_, _ = s.RedeemCoupon(ctx, models.DemoWelcomeCouponID)

	err := s.ReplaceMembership(ctx, models.Membership{PlanID: "basic"}, models.DemoWelcomeCouponID)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	m, _ := s.Membership(ctx)
	assert.Nil(t, m, "membership must not be written when the coupon could not be redeemed")
}

func TestMemoryStore_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	s := NewDemoStore(time.Now())

	on, err := s.ToggleFavorite(ctx, "class1")
	require.NoError(t, err)
	assert.True(t, on)

	favs, _ := s.Favorites(ctx)
	assert.Equal(t, []string{"class1"}, favs)

	on, err = s.ToggleFavorite(ctx, "class1")
	require.NoError(t, err)
	assert.False(t, on)

	favs, _ = s.Favorites(ctx)
	assert.Empty(t, favs)
}

func TestMemoryStore_UpdateProfileCompletes(t *testing.T) {
	s := NewDemoStore(time.Now())

	p, err := s.UpdateProfile(context.Background(), profileUpdate)

	require.NoError(t, err)
	assert.True(t, p.ProfileComplete)
	assert.Equal(t, "원데이체험", p.Nickname)
}

func newPersisted(t *testing.T) (*PersistedStore, *usertest.Repo) {
	t.Helper()
	repo := usertest.NewRepo(&models.User{
		ID:      "u1",
		Email:   "a@b.c",
		Coupons: []models.Coupon{{ID: "welcome_1", Amount: 5000}},
	})
	return NewPersistedStore(repo, "u1"), repo
}

func TestPersistedStore_MembershipWithCoupon(t *testing.T) {
	ctx := context.Background()
	s, repo := newPersisted(t)

	err := s.ReplaceMembership(ctx, models.Membership{PlanID: "premium"}, "welcome_1")
	require.NoError(t, err)

	u := repo.Get("u1")
	require.NotNil(t, u.Membership)
	assert.Equal(t, "premium", u.Membership.PlanID)
	assert.True(t, u.Coupons[0].Used)

	require.NoError(t, s.ClearMembership(ctx))
	m, err := s.Membership(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestPersistedStore_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	s, repo := newPersisted(t)

	on, err := s.ToggleFavorite(ctx, "class3")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"class3"}, repo.Get("u1").Favorites)

	on, err = s.ToggleFavorite(ctx, "class3")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, repo.Get("u1").Favorites)
}

func TestPersistedStore_WrapsBackendFailures(t *testing.T) {
	s, repo := newPersisted(t)
	repo.Err = errors.New("connection refused")

	_, err := s.Coupons(context.Background())

	var eerr *models.ExternalServiceError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "load user", eerr.Op)
}

func TestPersistedStore_NotFoundPassesThrough(t *testing.T) {
	s := NewPersistedStore(usertest.NewRepo(), "missing")

	_, err := s.Profile(context.Background())

	assert.ErrorIs(t, err, models.ErrNotFound)
}
