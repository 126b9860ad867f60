package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/pkg/jwt"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/redis"
	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// JWTAuth validates the Authorization: Bearer <token> header and injects the
// caller's identity into the context. When rdb is non-nil, revoked tokens
// are rejected via the blacklist; a nil rdb degrades to signature-only
// checks.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
			// redis errors degrade to allowing the token through
		}

		c.Set("member_id", claims.MemberID)
		c.Set("workspace_id", claims.WorkspaceID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth allows only the listed roles through. The owner role always
// passes.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		callerRole := role.(string)
		if callerRole == "owner" {
			c.Next()
			return
		}
		for _, r := range allowedRoles {
			if callerRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient permissions")
		c.Abort()
	}
}
