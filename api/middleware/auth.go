package middleware

import (
	"net/http"
	"strings"

	"learnhub/api/ctxutil"
	"learnhub/api/response"
	"learnhub/domain/user"
	"learnhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// IdentityKey gin context key holding the authenticated user.Identity
const IdentityKey = "identity"

// identityClaims the token payload this service accepts. The token only
// proves who the caller is; role and course references are always loaded
// fresh from the store so a stale token cannot widen access.
type identityClaims struct {
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token and resolves the requester
// into a full identity (role, enrollments, owned courses)
func AuthMiddleware(secret string, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &identityClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			abortUnauthorized(c, "invalid token")
			return
		}

		u, err := users.FindByID(ctxutil.WithRequestID(c), claims.Subject)
		if err != nil {
			logger.Warn("token subject not resolvable",
				zap.String("request_id", response.GetRequestID(c)),
				zap.String("subject", claims.Subject),
				zap.Error(err))
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(IdentityKey, u.Identity())
		c.Next()
	}
}

// RequireRoles gates a route on the resolved identity's role
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			abortUnauthorized(c, "missing identity")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		reqID := response.GetRequestID(c)
		c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
			Success:   false,
			Error:     "FORBIDDEN",
			Message:   "you are not allowed to access this resource",
			Code:      http.StatusForbidden,
			RequestID: reqID,
		})
	}
}

// GetIdentity the authenticated requester set by AuthMiddleware
func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	identity, ok := v.(user.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Success:   false,
		Error:     "UNAUTHORIZED",
		Message:   message,
		Code:      http.StatusUnauthorized,
		RequestID: response.GetRequestID(c),
	})
}
