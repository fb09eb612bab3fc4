// models/user.go
package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Profile holds the fields collected during profile setup.
type Profile struct {
	Nickname        string   `json:"nickname" bson:"nickname,omitempty"`
	BirthYear       string   `json:"birthYear" bson:"birthYear,omitempty"`
	Company         string   `json:"company" bson:"company,omitempty"`
	Job             string   `json:"job" bson:"job,omitempty"`
	Region          string   `json:"region" bson:"region,omitempty"`
	MBTI            string   `json:"mbti,omitempty" bson:"mbti,omitempty"`
	Interests       []string `json:"interests" bson:"interests,omitempty"`
	Introduction    string   `json:"introduction,omitempty" bson:"introduction,omitempty"`
	ProfileComplete bool     `json:"profileComplete" bson:"profileComplete"`
}

// User is the persisted per-user document.
type User struct {
	ID           string `json:"id" bson:"id"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Phone        string `json:"phone" bson:"phone"`
	Provider     string `json:"provider" bson:"provider"`
	Profile      `bson:",inline"`
	Favorites    []string    `json:"favorites" bson:"favorites"`
	Coupons      []Coupon    `json:"coupons" bson:"coupons"`
	Membership   *Membership `json:"membership" bson:"membership"`
	FCMToken     string      `json:"-" bson:"fcmToken,omitempty"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// ProfileUpdate is the payload submitted from profile setup or edit.
type ProfileUpdate struct {
	Nickname     string   `json:"nickname"`
	BirthYear    string   `json:"birthYear"`
	Company      string   `json:"company"`
	Job          string   `json:"job"`
	Region       string   `json:"region"`
	MBTI         string   `json:"mbti"`
	Interests    []string `json:"interests"`
	Introduction string   `json:"introduction"`
}

const (
	MinInterests = 3
	MaxInterests = 10
)

var nicknamePattern = regexp.MustCompile(`^[가-힣a-zA-Z]+$`)

// ValidateNickname enforces 3 to 8 Hangul or Latin letters.
func ValidateNickname(nickname string) error {
	n := utf8.RuneCountInString(nickname)
	switch {
	case n < 3:
		return &ValidationError{Field: "nickname", Message: "3글자 이상 입력해주세요"}
	case n > 8:
		return &ValidationError{Field: "nickname", Message: "8글자 이하로 입력해주세요"}
	case !nicknamePattern.MatchString(nickname):
		return &ValidationError{Field: "nickname", Message: "한글/영문만 사용 가능합니다"}
	}
	return nil
}

// Validate checks the required profile fields.
func (p ProfileUpdate) Validate() error {
	if err := ValidateNickname(p.Nickname); err != nil {
		return err
	}
	required := map[string]string{
		"birthYear": p.BirthYear,
		"company":   p.Company,
		"job":       p.Job,
		"region":    p.Region,
	}
	for _, field := range []string{"birthYear", "company", "job", "region"} {
		if strings.TrimSpace(required[field]) == "" {
			return &ValidationError{Field: field, Message: "필수 항목을 모두 선택해주세요"}
		}
	}
	if len(p.Interests) < MinInterests {
		return &ValidationError{Field: "interests", Message: "관심사를 3개 이상 선택해주세요"}
	}
	if len(p.Interests) > MaxInterests {
		return &ValidationError{Field: "interests", Message: "관심사는 10개까지 선택할 수 있어요"}
	}
	return nil
}

// Apply returns the completed profile built from the update.
func (p ProfileUpdate) Apply() Profile {
	return Profile{
		Nickname:        p.Nickname,
		BirthYear:       p.BirthYear,
		Company:         p.Company,
		Job:             p.Job,
		Region:          p.Region,
		MBTI:            p.MBTI,
		Interests:       append([]string(nil), p.Interests...),
		Introduction:    p.Introduction,
		ProfileComplete: true,
	}
}
