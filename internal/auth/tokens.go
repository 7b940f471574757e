package auth

import (
	"fmt"
	"time"

	"tritogether/internal/domain/coaching"

	"github.com/golang-jwt/jwt/v4"
)

// SessionClaims is the signed payload of a bearer token: the subject id and
// its role, fixed at sign-in for the lifetime of the token.
type SessionClaims struct {
	jwt.RegisteredClaims
	ID  int    `json:"id"`
	Rol string `json:"rol"`
}

type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, expiry time.Duration) *TokenService {
	if expiry <= 0 {
		expiry = 30 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (s *TokenService) Issue(principal coaching.Principal) (string, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		ID:  principal.ID,
		Rol: string(principal.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(raw string) (coaching.Principal, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return coaching.Principal{}, coaching.ErrUnauthorized
	}
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return coaching.Principal{}, coaching.ErrUnauthorized
	}
	role, err := coaching.ParseRole(claims.Rol)
	if err != nil {
		return coaching.Principal{}, coaching.ErrUnauthorized
	}
	if claims.ID <= 0 {
		return coaching.Principal{}, coaching.ErrUnauthorized
	}
	return coaching.Principal{ID: claims.ID, Role: role}, nil
}
