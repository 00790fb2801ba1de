/*
tokens.go - JWT issuance and verification

PURPOSE:
  Stateless bearer tokens carrying the user id and admin flag. The
  token is the only thing the API trusts about the caller; handlers
  receive the decoded leave.Actor and never re-read the user row for
  authorization.
*/
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/warp/leavedesk/leave"
)

// ErrInvalidToken is returned for malformed, expired or mis-signed
// tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. Admin rides in the token so authorization
// checks need no database round trip.
type Claims struct {
	UserID int64 `json:"uid"`
	Admin  bool  `json:"adm"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager signing with secret; issued tokens
// expire after ttl.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the user.
func (tm *TokenManager) Issue(u leave.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Admin:  u.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the actor it encodes.
func (tm *TokenManager) Verify(tokenString string) (leave.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return leave.Actor{}, ErrInvalidToken
	}
	return leave.Actor{ID: claims.UserID, Admin: claims.Admin}, nil
}
