package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codelab-2025.net/internal/config"
)

type contextKey string

const userIDKey contextKey = "userId"

type MiddlewareProvider struct {
	jwtConfig *config.JwtConfig
}

func New(jwtConfig *config.JwtConfig) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtConfig: jwtConfig,
	}
}

func (m *MiddlewareProvider) secret() []byte {
	return []byte(m.jwtConfig.Secret)
}

// JWTMiddleware authenticates the request and stashes the caller's user ID in
// the request context. Tokens are issued by the platform's auth service; this
// service only verifies them.
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return m.secret(), nil
		})

		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		userID := m.subjectOf(claims)
		if userID == "" {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *MiddlewareProvider) subjectOf(claims jwt.MapClaims) string {
	if userID, ok := claims["userId"].(string); ok && userID != "" {
		return userID
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// UserIDFromContext returns the authenticated caller's user ID
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
