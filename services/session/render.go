package session

import (
	"context"
	"fmt"

	"oneday/models"
	"oneday/services/catalog"
	"oneday/services/ledger"
	"oneday/services/pricing"
)

// ScreenView is what a client draws: the screen name and its model.
type ScreenView struct {
	Screen ScreenName  `json:"screen"`
	Data   interface{} `json:"data,omitempty"`
}

type HomeView struct {
	Query     catalog.Query         `json:"query"`
	Classes   []models.ClassListing `json:"classes"`
	Favorites []string              `json:"favorites"`
}

type DetailView struct {
	Listing      models.ClassListing  `json:"listing"`
	SelectedSlot *models.ScheduleSlot `json:"selectedSlot,omitempty"`
	Coupons      []models.Coupon      `json:"coupons"`
	Favorite     bool                 `json:"favorite"`
}

type MyPageView struct {
	Tab MyPageTab `json:"tab"`
	Bookings
}

type MembershipView struct {
	Plans   []models.MembershipPlan `json:"plans"`
	Active  *models.Membership      `json:"active,omitempty"`
	Coupons []models.Coupon         `json:"coupons"`
}

type ProfileView struct {
	Profile    models.Profile     `json:"profile"`
	Membership *models.Membership `json:"membership,omitempty"`
	Coupons    []models.Coupon    `json:"coupons"`
	Matches    []models.Match     `json:"matches"`
}

// render is the one dispatcher from screen to view model. Callers hold s.mu.
func render(ctx context.Context, s *Session, sc Screen) (ScreenView, error) {
	v := ScreenView{Screen: sc.Name()}
	var err error

	switch sc := sc.(type) {
	case Login:
	case Chat:
		v.Data = s.Messages()
	case ProfileSetup, ProfileEdit:
		v.Data, err = s.store.Profile(ctx)
	case Home:
		var favs []string
		if favs, err = s.store.Favorites(ctx); err == nil {
			v.Data = HomeView{Query: sc.Query, Classes: s.catalog.Browse(sc.Query), Favorites: favs}
		}
	case Detail:
		v.Data, err = renderDetail(ctx, s, sc)
	case AfterClass:
		v.Data, err = s.afterClassLocked(ctx, sc.BookingID)
	case MyPage:
		v.Data = MyPageView{Tab: sc.Tab, Bookings: s.Bookings()}
	case Membership:
		v.Data, err = renderMembership(ctx, s)
	case Favorites:
		v.Data, err = s.Favorites(ctx)
	case Profile:
		v.Data, err = renderProfile(ctx, s)
	default:
		return ScreenView{}, fmt.Errorf("render: unhandled screen %T", sc)
	}
	if err != nil {
		return ScreenView{}, err
	}
	return v, nil
}

func renderDetail(ctx context.Context, s *Session, sc Detail) (DetailView, error) {
	l, err := s.listing(sc.ListingID)
	if err != nil {
		return DetailView{}, err
	}
	coupons, err := s.ledger.EligibleCoupons(ctx, l.TotalPrice)
	if err != nil {
		return DetailView{}, err
	}
	favs, err := s.store.Favorites(ctx)
	if err != nil {
		return DetailView{}, err
	}
	v := DetailView{Listing: l, Coupons: coupons}
	for _, id := range favs {
		if id == l.ID {
			v.Favorite = true
		}
	}
	if slot, ok := l.Slot(sc.SlotID); ok {
		v.SelectedSlot = &slot
	}
	return v, nil
}

func renderMembership(ctx context.Context, s *Session) (MembershipView, error) {
	active, err := s.ledger.ActiveMembership(ctx)
	if err != nil {
		return MembershipView{}, err
	}
	all, err := s.ledger.Coupons(ctx)
	if err != nil {
		return MembershipView{}, err
	}
	// coupons are offered against the most expensive plan
	maxPrice := 0
	for _, p := range ledger.Plans() {
		maxPrice = max(maxPrice, p.Price)
	}
	return MembershipView{
		Plans:   ledger.Plans(),
		Active:  active,
		Coupons: pricing.EligibleCoupons(all, maxPrice),
	}, nil
}

func renderProfile(ctx context.Context, s *Session) (ProfileView, error) {
	p, err := s.store.Profile(ctx)
	if err != nil {
		return ProfileView{}, err
	}
	active, err := s.ledger.ActiveMembership(ctx)
	if err != nil {
		return ProfileView{}, err
	}
	coupons, err := s.ledger.Coupons(ctx)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{
		Profile:    p,
		Membership: active,
		Coupons:    coupons,
		Matches:    append([]models.Match{}, s.matches...),
	}, nil
}
