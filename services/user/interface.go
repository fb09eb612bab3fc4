package user

import (
	"context"
	"errors"
	"time"

	userRepo "oneday/database/repository/user"
	"oneday/services/session"
	"oneday/utils"

	"go.uber.org/zap"
)

var (
	ErrUnknownEmail  = errors.New("가입되지 않은 이메일입니다")
	ErrWrongPassword = errors.New("비밀번호가 올바르지 않습니다")
)

type UserService interface {
	// Registration
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
	SendVerificationCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) error
	CheckNicknameAvailable(ctx context.Context, nickname, callerID string) (bool, error)

	// Authentication
	SignIn(ctx context.Context, email, password string) (*AuthResponse, error)
	StartDemo(ctx context.Context) (*AuthResponse, error)
	SignOut(ctx context.Context, token, sessionID string) error

	UpdateFCMToken(ctx context.Context, userID, token string) error
}

// Verifier issues and checks phone verification codes.
type Verifier interface {
	Send(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) error
}

// Sessions is the part of the session manager the identity flow drives.
type Sessions interface {
	StartDemo() *session.Session
	StartPersisted(userID string) *session.Session
	End(id string) bool
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo            userRepo.UserRepository
	Sessions        Sessions
	Tokens          utils.TokenCache
	Verifier        Verifier
	SessionTTL      time.Duration
	NicknameTimeout time.Duration
	Now             func() time.Time
	Logger          *zap.Logger
}

func (s *DefaultUserService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger == nil {
		return utils.GetLogger()
	}
	return s.Logger
}

// SignUpRequest is the email signup form.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// AuthResponse carries the bearer token of a new session.
type AuthResponse struct {
	ID              string `json:"id,omitempty"`
	SessionID       string `json:"sessionId"`
	Token           string `json:"token"`
	Email           string `json:"email,omitempty"`
	Demo            bool   `json:"demo"`
	ProfileComplete bool   `json:"profileComplete"`
}
