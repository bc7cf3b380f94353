package auth

import (
	"context"
)

type claimsKey struct{}

// SetUserClaims attaches validated claims to ctx
func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetUserClaims returns nil for anonymous requests
func GetUserClaims(ctx context.Context) UserClaims {
	claims, _ := ctx.Value(claimsKey{}).(UserClaims)
	return claims
}

// UserIDFrom reports the acting user. A claim without a usable subject counts as anonymous.
func UserIDFrom(ctx context.Context) (uint, bool) {
	claims := GetUserClaims(ctx)
	if claims == nil || claims.UserID() == 0 {
		return 0, false
	}
	return claims.UserID(), true
}
