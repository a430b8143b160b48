package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// UserClaims are the claims carried by a session token. Email identifies the
// account across sessions and reports.
type UserClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserJWT enforces an HMAC-signed JWT on user-facing endpoints and exposes
// the verified claims through the request context.
func UserJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "auth disabled", http.StatusUnauthorized)
				return
			}
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(auth, "Bearer ")
			claims := &UserClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if claims.Email == "" {
				http.Error(w, "token missing email claim", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserClaims(r.Context(), *claims)))
		})
	}
}

// WithUserClaims stores user claims in context.
func WithUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// UserClaimsFromContext returns the verified user claims if present.
func UserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(UserClaims)
	return claims, ok
}

// UserEmailFromContext returns the authenticated user's email, or "" when the
// request was not authenticated.
func UserEmailFromContext(ctx context.Context) string {
	claims, ok := UserClaimsFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.Email
}
