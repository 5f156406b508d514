package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pressroom/internal/common"
)

// Claims is the token payload: registered claims plus the caller's identity.
// Name rides along so new posts can snapshot the author's display name
// without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}

// TokenManager signs and verifies self-contained session tokens. There is no
// server-side session state and no revocation list: possession of a valid,
// unexpired token is the session proof.
type TokenManager struct {
	key []byte
	exp time.Duration
}

func NewTokenManager(key []byte, exp time.Duration) *TokenManager {
	return &TokenManager{key: key, exp: exp}
}

func (m *TokenManager) Issue(userID, email, role, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.exp)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
		Name:   name,
	})
	return token.SignedString(m.key)
}

// Verify validates signature and expiry. Every failure mode collapses to
// ErrInvalidToken: callers cannot tell an expired token from a tampered one.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
