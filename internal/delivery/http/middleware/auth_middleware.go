package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinical-study/config"
	"clinical-study/internal/usecase"
	"clinical-study/pkg/jwt"
	"clinical-study/pkg/response"
)

type contextKey string

const (
	OperatorIDKey contextKey = "operator_id"
	TokenIDKey    contextKey = "token_id"
)

// Authenticator resolves bearer tokens to session claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	study         config.StudyConfig
}

func NewAuthMiddleware(authenticator Authenticator, study config.StudyConfig) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		study:         study,
	}
}

// Authenticate puts the operator of record into the request context. A bearer
// token must be valid; without one the configured default operator is used
// unless authentication is required.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if m.study.RequireAuth {
				response.Unauthorized(w, "Authorization header is required")
				return
			}
			ctx := context.WithValue(r.Context(), OperatorIDKey, m.study.DefaultOperatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.authenticator.Authenticate(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidToken) {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}
			response.InternalServerError(w, "Failed to validate token")
			return
		}

		ctx := context.WithValue(r.Context(), OperatorIDKey, claims.EmployeeID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorIDFromContext extracts the operator id from context
func GetOperatorIDFromContext(ctx context.Context) (int64, bool) {
	operatorID, ok := ctx.Value(OperatorIDKey).(int64)
	return operatorID, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
