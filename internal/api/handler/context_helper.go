package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/inverness4444/quadrant-landing-sub000/pkg/response"
)

// mustGetString extracts a string the auth middleware injected. When absent
// it writes a 401 and returns ok=false; the caller should return
// immediately.
func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetMemberID extracts the caller's member id.
func MustGetMemberID(c *gin.Context) (string, bool) {
	return mustGetString(c, "member_id")
}

// MustGetWorkspaceID extracts the caller's workspace id. Every business
// route scopes its queries by this value; it never comes from the request.
func MustGetWorkspaceID(c *gin.Context) (string, bool) {
	return mustGetString(c, "workspace_id")
}

// MustGetRole extracts the caller's role.
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

// mustScope extracts workspace and member ids in one call.
func mustScope(c *gin.Context) (workspaceID, memberID string, ok bool) {
	workspaceID, ok = MustGetWorkspaceID(c)
	if !ok {
		return "", "", false
	}
	memberID, ok = MustGetMemberID(c)
	if !ok {
		return "", "", false
	}
	return workspaceID, memberID, true
}
