package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// ErrCodeMismatch is returned when a submitted code is wrong or expired.
	ErrCodeMismatch = errors.New("verification code mismatch")
	errNoOTPClient  = errors.New("OTP cache client not initialized")
)

// generateNumericCode returns a uniformly random string of decimal digits.
func generateNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// CodeSender delivers a verification code to a phone number.
type CodeSender func(ctx context.Context, phone, message string) error

// LogCodeSender logs the outgoing message instead of sending an SMS.
func LogCodeSender(_ context.Context, phone, message string) error {
	GetLogger().Info("Sending verification code", zap.String("phone", phone), zap.String("message", message))
	return nil
}

// Verifier issues and checks phone verification codes backed by redis.
type Verifier struct {
	client *redis.Client
	ttl    time.Duration
	send   CodeSender
}

// NewVerifier builds a Verifier. A nil sender logs codes.
func NewVerifier(client *redis.Client, ttl time.Duration, send CodeSender) *Verifier {
	if send == nil {
		send = LogCodeSender
	}
	return &Verifier{client: client, ttl: ttl, send: send}
}

func verificationKey(phone string) string {
	return VerificationPrefix + phone
}

// Send generates a fresh code for the phone, replacing any pending one.
func (v *Verifier) Send(ctx context.Context, phone string) error {
	if v.client == nil {
		return errNoOTPClient
	}
	code, err := generateNumericCode(VerificationCodeLength)
	if err != nil {
		return err
	}
	if err := v.client.Set(ctx, verificationKey(phone), code, v.ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache verification code", zap.Error(err))
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	message := fmt.Sprintf("[원데이] 인증번호 %s (%d분 내 입력)", code, int(v.ttl.Minutes()))
	if err := v.send(ctx, phone, message); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// Verify compares the submitted code and deletes it on success.
func (v *Verifier) Verify(ctx context.Context, phone, code string) error {
	if v.client == nil {
		return errNoOTPClient
	}
	key := verificationKey(phone)
	stored, err := v.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeMismatch
	}
	if err != nil {
		return fmt.Errorf("failed to read verification code: %w", err)
	}
	if stored != code {
		return ErrCodeMismatch
	}
	if err := v.client.Del(ctx, key).Err(); err != nil {
		GetLogger().Warn("Failed to delete verification code", zap.Error(err))
	}
	return nil
}
