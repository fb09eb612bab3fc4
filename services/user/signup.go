package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"oneday/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(phone))
}

func (r SignUpRequest) validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil || !strings.Contains(r.Email, "@") {
		return models.NewValidationError("email", "올바른 이메일 형식이 아닙니다")
	}
	if len(r.Password) < minPasswordLength {
		return models.NewValidationError("password", "비밀번호가 너무 약합니다 (6자 이상)")
	}
	phone := normalizePhone(r.Phone)
	if len(phone) < 10 {
		return models.NewValidationError("phone", "올바른 전화번호를 입력해주세요")
	}
	for _, ch := range phone {
		if ch < '0' || ch > '9' {
			return models.NewValidationError("phone", "올바른 전화번호를 입력해주세요")
		}
	}
	return nil
}

// welcomeCoupon is granted once at signup.
func (s *DefaultUserService) welcomeCoupon() models.Coupon {
	now := s.now()
	return models.Coupon{
		ID:        fmt.Sprintf("welcome_%d", now.UnixMilli()),
		Name:      models.WelcomeCouponName,
		Amount:    models.WelcomeCouponAmount,
		CreatedAt: now,
	}
}

// SignUp registers an email account and signs it in.
func (s *DefaultUserService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := req.validate(); err != nil {
		return nil, err
	}
	req.Phone = normalizePhone(req.Phone)

	taken, err := s.Repo.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return nil, models.NewExternalServiceError("signup", err)
	}
	if taken {
		return nil, models.NewConflictError("이미 가입된 전화번호입니다")
	}
	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, models.NewExternalServiceError("signup", err)
	}
	if existing != nil {
		return nil, models.NewConflictError("이미 가입된 이메일입니다")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Provider:     "email",
		Favorites:    []string{},
		Coupons:      []models.Coupon{s.welcomeCoupon()},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		var conflict *models.ConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		return nil, models.NewExternalServiceError("signup", err)
	}
	s.logger().Info("user registered", zap.String("userId", u.ID))

	sess := s.Sessions.StartPersisted(u.ID)
	resp, err := s.issueToken(ctx, sess)
	if err != nil {
		s.Sessions.End(sess.ID())
		return nil, err
	}
	resp.Email = u.Email
	return resp, nil
}
