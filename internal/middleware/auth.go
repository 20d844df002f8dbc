package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dimitrije/portal-api/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
)

// TokenVerifier checks bearer tokens. *services.JWTService implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (jwt.MapClaims, error)
	VerifyOptional(ctx context.Context, token string) (jwt.MapClaims, bool)
}

func Auth(verifier TokenVerifier) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			var authErr *services.AuthError
			if errors.As(err, &authErr) {
				unauthorized(c, authErr.Detail())
				return
			}
			unauthorized(c, "Unable to validate credentials")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid bearer token is present
// and lets every request through.
func OptionalAuth(verifier TokenVerifier) drift.HandlerFunc {
	return func(c *drift.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, ok := verifier.VerifyOptional(c.Request.Context(), token); ok {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func GetClaims(c *drift.Context) jwt.MapClaims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(jwt.MapClaims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID is the identity provider subject of the caller, "" when the
// request is anonymous.
func GetUserID(c *drift.Context) string {
	if id, ok := c.Get(UserIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func setClaims(c *drift.Context, claims jwt.MapClaims) {
	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, services.CurrentUser(claims))
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *drift.Context, message string) {
	c.Response.Header().Set("WWW-Authenticate", "Bearer")
	c.Unauthorized(message)
}
