package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is what handlers learn about the acting user
type UserClaims interface {
	UserID() uint
	Username() string
	TokenID() string
	ExpiresAt() time.Time
	Source() string
}

// JWTClaims is the payload of a session token. Subject holds the user id.
type JWTClaims struct {
	Name string `json:"username"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) UserID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (c *JWTClaims) Username() string { return c.Name }
func (c *JWTClaims) TokenID() string  { return c.ID }
func (c *JWTClaims) Source() string   { return "JWT" }

func (c *JWTClaims) ExpiresAt() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}
