// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file extracts the caller identity. Authentication happens upstream
// (gateway or reverse proxy), which forwards the user id and role in the
// X-User-ID and X-User-Role headers. IdentityFromHeaders() parses them once and stores
// the result in the Gin context; RequireRole() gates routes by role.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID carries the numeric id of the authenticated user.
	HeaderUserID = "X-User-ID"
	// HeaderUserRole carries the role of the authenticated user.
	HeaderUserRole = "X-User-Role"

	ctxKeyIdentity = "identity"
	ctxKeyUserID   = "userID"
)

// Known roles.
const (
	RoleAgent      = "agent"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID uint
	Role   string
}

// IdentityFromHeaders parses the identity headers when present and valid. Requests
// without identity continue; protected routes reject them via RequireRole.
func IdentityFromHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		role := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole)))
		if rawID == "" || role == "" {
			c.Next()
			return
		}
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil || id == 0 || !knownRole(role) {
			c.Next()
			return
		}
		c.Set(ctxKeyIdentity, Identity{UserID: uint(id), Role: role})
		// Plain string id for the rate limiter and idempotency lookups.
		c.Set(ctxKeyUserID, rawID)
		c.Next()
	}
}

func knownRole(r string) bool {
	switch r {
	case RoleAgent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// IdentityFrom returns the identity stored by IdentityFromHeaders.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireRole rejects requests without identity (401) or whose role is not
// in roles (403). With no roles, any authenticated caller passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing or invalid X-User-ID / X-User-Role")
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[id.Role]; !ok {
				abortJSON(c, http.StatusForbidden, "forbidden", "role not allowed")
				return
			}
		}
		c.Next()
	}
}

// abortJSON writes the standard error envelope from middleware, which
// cannot import the handlers package.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
