package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/metrics"
	"github.com/sittawut/doctors-portal/models"
	"github.com/sittawut/doctors-portal/store"
)

// DecodedEmailKey is the gin context key holding the token subject.
const DecodedEmailKey = "decodedEmail"

// UserFinder looks up a user record by email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

func abortUnauthorized(c *gin.Context, reason string) {
	metrics.IncAuthDenied(reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Success: false,
		Message: "Unauthorized",
	})
}

func abortForbidden(c *gin.Context, reason string) {
	metrics.IncAuthDenied(reason)
	c.AbortWithStatusJSON(http.StatusForbidden, models.Response{
		Success: false,
		Message: "Forbidden",
	})
}

// VerifyJWT requires a valid bearer token. A missing Authorization header is
// 401; anything wrong with the token itself is 403.
func VerifyJWT(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_token")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortForbidden(c, "malformed_header")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			abortForbidden(c, "invalid_token")
			return
		}

		c.Set(DecodedEmailKey, claims.Email)
		c.Next()
	}
}

// VerifyAdmin must run after VerifyJWT. It lets the request through only when
// the token subject exists and has the admin role.
func VerifyAdmin(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := DecodedEmail(c)
		if email == "" {
			abortUnauthorized(c, "missing_token")
			return
		}

		requester, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				abortForbidden(c, "unknown_requester")
				return
			}
			log.Printf("[VerifyAdmin] %s: lookup %s failed: %v", RequestID(c), email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
				Success: false,
				Error:   "Failed to verify requester",
			})
			return
		}

		if !requester.IsAdmin() {
			abortForbidden(c, "not_admin")
			return
		}

		c.Next()
	}
}

// DecodedEmail returns the email VerifyJWT stored on the context, or "".
func DecodedEmail(c *gin.Context) string {
	return c.GetString(DecodedEmailKey)
}
