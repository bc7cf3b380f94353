package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// RevocationList tracks tokens that were logged out before they expired
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenService issues and validates HS256 session tokens
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	revoked   RevocationList
	now       func() time.Time
}

func NewTokenService(secretKey []byte, ttl time.Duration, revoked RevocationList) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		ttl:       ttl,
		revoked:   revoked,
		now:       time.Now,
	}
}

// Issue signs a token for the user with a fresh jti
func (s *TokenService) Issue(userID uint, username string) (string, *JWTClaims, error) {
	now := s.now()
	claims := &JWTClaims{
		Name: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Validate parses the token, checks signature and expiry, then the revocation list
func (s *TokenService) Validate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID() == 0 || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// Revoke blocks the token until it would have expired anyway
func (s *TokenService) Revoke(ctx context.Context, claims UserClaims) error {
	if s.revoked == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.TokenID(), claims.ExpiresAt())
}
