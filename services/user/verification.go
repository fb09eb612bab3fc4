package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"oneday/models"
	"oneday/utils"

	"go.uber.org/zap"
)

const defaultNicknameTimeout = 5 * time.Second

// SendVerificationCode issues a fresh code for phone.
func (s *DefaultUserService) SendVerificationCode(ctx context.Context, phone string) error {
	phone = normalizePhone(phone)
	if len(phone) < 10 {
		return models.NewValidationError("phone", "올바른 전화번호를 입력해주세요")
	}
	if err := s.Verifier.Send(ctx, phone); err != nil {
		return models.NewExternalServiceError("send verification code", err)
	}
	return nil
}

// VerifyCode checks code once against the pending code for phone.
func (s *DefaultUserService) VerifyCode(ctx context.Context, phone, code string) error {
	err := s.Verifier.Verify(ctx, normalizePhone(phone), strings.TrimSpace(code))
	if errors.Is(err, utils.ErrCodeMismatch) {
		return models.NewValidationError("code", "인증번호가 일치하지 않습니다")
	}
	if err != nil {
		return models.NewExternalServiceError("verify code", err)
	}
	return nil
}

// CheckNicknameAvailable reports whether nickname is free for callerID, whose
// own nickname never counts as taken. callerID is empty for anonymous and demo
// callers. The lookup is bounded by NicknameTimeout; when it fails or times
// out the nickname is reported available.
func (s *DefaultUserService) CheckNicknameAvailable(ctx context.Context, nickname, callerID string) (bool, error) {
	if err := models.ValidateNickname(nickname); err != nil {
		return false, err
	}
	timeout := s.NicknameTimeout
	if timeout <= 0 {
		timeout = defaultNicknameTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		taken bool
		err   error
	}
	done := make(chan result, 1)
	go func() {
		taken, err := s.Repo.ExistsByNickname(ctx, nickname, callerID)
		done <- result{taken, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			s.logger().Warn("nickname check failed, allowing", zap.String("nickname", nickname), zap.Error(r.err))
			return true, nil
		}
		return !r.taken, nil
	case <-ctx.Done():
		s.logger().Warn("nickname check timed out, allowing", zap.String("nickname", nickname))
		return true, nil
	}
}

// UpdateFCMToken stores the device token used for pushes.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return models.NewValidationError("token", "토큰이 비어 있습니다")
	}
	if err := s.Repo.UpdateFCMToken(ctx, userID, token); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return models.NewExternalServiceError("update fcm token", err)
	}
	return nil
}
