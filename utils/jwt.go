package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"oneday/config"

	"github.com/golang-jwt/jwt"
)

// TokenClaims is what a session token carries.
type TokenClaims struct {
	Subject   string // user id; empty for demo sessions
	SessionID string
}

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed HS256 token for a session.
func GenerateToken(subject, sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseToken validates the token and extracts its session claims.
func ParseToken(tokenString string) (TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return TokenClaims{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return TokenClaims{}, errors.New("token does not contain a valid 'sid' claim")
	}
	sub, _ := claims["sub"].(string)
	return TokenClaims{Subject: sub, SessionID: sid}, nil
}
