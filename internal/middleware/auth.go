package middleware

import (
	"net/http"
	"strings"
	"time"

	"pilotconnect/internal/auth"
	"pilotconnect/internal/common"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/logging"
)

// AuthMiddleware accepts "Authorization: Bearer <jwt>" and stores the claims
// on the request context. Anything else is a 401.
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, initTime, nil, constants.MsgMissingBearerToken, http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(r.Context(), strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")))
			if err != nil {
				logging.Debug("Rejected token", "error", err, "path", r.URL.Path)
				common.RespondError(w, initTime, nil, constants.MsgInvalidToken, http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
