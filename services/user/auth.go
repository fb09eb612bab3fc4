package user

import (
	"context"
	"fmt"

	"oneday/models"
	"oneday/services/session"
	"oneday/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignIn checks the password and opens a persisted session.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.logger().Error("SignIn: failed to fetch user", zap.Error(err))
		return nil, models.NewExternalServiceError("signin", err)
	}
	if u == nil {
		return nil, models.NewExternalServiceError("signin", ErrUnknownEmail)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewExternalServiceError("signin", ErrWrongPassword)
	}

	sess := s.Sessions.StartPersisted(u.ID)
	resp, err := s.issueToken(ctx, sess)
	if err != nil {
		s.Sessions.End(sess.ID())
		return nil, err
	}
	resp.Email = u.Email
	resp.ProfileComplete = u.ProfileComplete
	s.logger().Info("user signed in", zap.String("userId", u.ID), zap.String("session", sess.ID()))
	return resp, nil
}

// StartDemo opens a session that keeps everything in memory.
func (s *DefaultUserService) StartDemo(ctx context.Context) (*AuthResponse, error) {
	sess := s.Sessions.StartDemo()
	resp, err := s.issueToken(ctx, sess)
	if err != nil {
		s.Sessions.End(sess.ID())
		return nil, err
	}
	return resp, nil
}

// SignOut revokes the token and ends its session.
func (s *DefaultUserService) SignOut(ctx context.Context, token, sessionID string) error {
	if err := s.Tokens.Delete(ctx, token); err != nil {
		return models.NewExternalServiceError("signout", err)
	}
	s.Sessions.End(sessionID)
	return nil
}

func (s *DefaultUserService) issueToken(ctx context.Context, sess *session.Session) (*AuthResponse, error) {
	token, err := utils.GenerateToken(sess.UserID(), sess.ID(), s.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	cached := utils.AuthSession{
		SessionID: sess.ID(),
		UserID:    sess.UserID(),
		Demo:      sess.Demo(),
		CreatedAt: s.now(),
	}
	if err := s.Tokens.Save(ctx, token, cached, s.SessionTTL); err != nil {
		return nil, models.NewExternalServiceError("cache session", err)
	}
	return &AuthResponse{
		ID:        sess.UserID(),
		SessionID: sess.ID(),
		Token:     token,
		Demo:      sess.Demo(),
	}, nil
}
