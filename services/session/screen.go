package session

import (
	"oneday/models"
	"oneday/services/catalog"
)

type ScreenName string

const (
	ScreenLogin        ScreenName = "login"
	ScreenProfileSetup ScreenName = "profileSetup"
	ScreenHome         ScreenName = "home"
	ScreenDetail       ScreenName = "detail"
	ScreenAfterClass   ScreenName = "afterClass"
	ScreenChat         ScreenName = "chat"
	ScreenMyPage       ScreenName = "myPage"
	ScreenMembership   ScreenName = "membership"
	ScreenFavorites    ScreenName = "favorites"
	ScreenProfile      ScreenName = "profile"
	ScreenProfileEdit  ScreenName = "profileEdit"
)

// Screen is the closed set of places a session can be. Only types in this
// package implement it.
type Screen interface {
	Name() ScreenName
	isScreen()
}

type Login struct{}

// ProfileSetup collects the profile. Return is where to go once it is saved.
type ProfileSetup struct{ Return Screen }

type Home struct{ Query catalog.Query }

type Detail struct {
	ListingID string
	SlotID    string
}

type AfterClass struct{ BookingID string }

type Chat struct{}

type MyPageTab string

const (
	TabUpcoming  MyPageTab = "upcoming"
	TabCompleted MyPageTab = "completed"
	TabCancelled MyPageTab = "cancelled"
)

type MyPage struct{ Tab MyPageTab }

// Membership is the plan picker. Return is the screen that opened it.
type Membership struct{ Return Screen }

type Favorites struct{}
type Profile struct{}
type ProfileEdit struct{}

func (Login) Name() ScreenName        { return ScreenLogin }
func (ProfileSetup) Name() ScreenName { return ScreenProfileSetup }
func (Home) Name() ScreenName         { return ScreenHome }
func (Detail) Name() ScreenName       { return ScreenDetail }
func (AfterClass) Name() ScreenName   { return ScreenAfterClass }
func (Chat) Name() ScreenName         { return ScreenChat }
func (MyPage) Name() ScreenName       { return ScreenMyPage }
func (Membership) Name() ScreenName   { return ScreenMembership }
func (Favorites) Name() ScreenName    { return ScreenFavorites }
func (Profile) Name() ScreenName      { return ScreenProfile }
func (ProfileEdit) Name() ScreenName  { return ScreenProfileEdit }

func (Login) isScreen()        {}
func (ProfileSetup) isScreen() {}
func (Home) isScreen()         {}
func (Detail) isScreen()       {}
func (AfterClass) isScreen()   {}
func (Chat) isScreen()         {}
func (MyPage) isScreen()       {}
func (Membership) isScreen()   {}
func (Favorites) isScreen()    {}
func (Profile) isScreen()      {}
func (ProfileEdit) isScreen()  {}

// Target is the wire form of a navigation request.
type Target struct {
	Screen    ScreenName    `json:"screen" binding:"required"`
	ListingID string        `json:"listingId,omitempty"`
	SlotID    string        `json:"slotId,omitempty"`
	BookingID string        `json:"bookingId,omitempty"`
	Tab       MyPageTab     `json:"tab,omitempty"`
	Query     catalog.Query `json:"query,omitempty"`
}

// Resolve turns a target into a screen. from is the current screen, used as
// the return point for the membership and profile setup screens.
func (t Target) Resolve(from Screen) (Screen, error) {
	switch t.Screen {
	case ScreenLogin:
		return Login{}, nil
	case ScreenProfileSetup:
		return ProfileSetup{Return: from}, nil
	case ScreenHome:
		return Home{Query: t.Query}, nil
	case ScreenDetail:
		if t.ListingID == "" {
			return nil, models.NewValidationError("listingId", "클래스를 선택해주세요")
		}
		return Detail{ListingID: t.ListingID, SlotID: t.SlotID}, nil
	case ScreenAfterClass:
		if t.BookingID == "" {
			return nil, models.NewValidationError("bookingId", "예약을 선택해주세요")
		}
		return AfterClass{BookingID: t.BookingID}, nil
	case ScreenChat:
		return Chat{}, nil
	case ScreenMyPage:
		tab := t.Tab
		switch tab {
		case "":
			tab = TabUpcoming
		case TabUpcoming, TabCompleted, TabCancelled:
		default:
			return nil, models.NewValidationError("tab", "알 수 없는 탭입니다")
		}
		return MyPage{Tab: tab}, nil
	case ScreenMembership:
		return Membership{Return: from}, nil
	case ScreenFavorites:
		return Favorites{}, nil
	case ScreenProfile:
		return Profile{}, nil
	case ScreenProfileEdit:
		return ProfileEdit{}, nil
	}
	return nil, models.NewValidationError("screen", "알 수 없는 화면입니다")
}
