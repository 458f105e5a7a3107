package authservice

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing          = errors.New("authentication token missing")
	ErrTokenMalformed        = errors.New("malformed authentication token")
	ErrTokenExpired          = errors.New("authentication token expired")
	ErrTokenSignatureInvalid = errors.New("invalid authentication token signature")
)

func newToken(user *User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IssueToken signs the user's identity into an access token. The caller is
// responsible for having authenticated the user first.
func (s *AuthService) IssueToken(user *User) (string, error) {
	return newToken(user, s.secret, AccessTokenTime)
}

// VerifyToken checks the signature and expiry of a token and returns its
// claims. Failures are distinguishable: a missing, malformed, expired, or
// tampered token each map to their own sentinel error.
func (s *AuthService) VerifyToken(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}

	return &claims, nil
}

// ParseUnverifiedClaims decodes a token's claims without checking the
// signature. Clients use it to inspect a stored token for expiry; it must
// never gate access to anything.
func ParseUnverifiedClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	var claims Claims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}
