// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for creation endpoints. It
// validates the Idempotency-Key header, looks up a previously completed
// request for (user, scope, key), and annotates the context so that:
//   - handlers read the normalized key (GetIdempotencyKey) and scope
//     (IdempotencyScope) to record the result of a first attempt;
//   - handlers serve a replay (ReplayResourceID) instead of creating a
//     second dossier;
//   - the rate limiter lets replays through (IsRateBypass).
//
// The scope is "<METHOD> <route>", so a key reused on another endpoint does
// not collide.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // uint: resource id of the stored result
	ctxKeyRateBypass = "rate.bypass" // bool: true to skip rate limiting
)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IdempotencyScope returns the scope under which keys for this request are
// stored.
func IdempotencyScope(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}

// ReplayResourceID returns the id of the resource created by an earlier
// request with the same key, if any.
func ReplayResourceID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// IsReplay reports whether ReplayResourceID would succeed.
func IsReplay(c *gin.Context) bool {
	_, ok := ReplayResourceID(c)
	return ok
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; default ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
	// Now is the lookup time source; default time.Now.
	Now func() time.Time
}

// IdempotencyLookup returns the resource id recorded for (userID, scope,
// key) if a still-valid record exists. TTL is the lookup's concern.
// Lookup errors never block the request.
type IdempotencyLookup func(ctx context.Context, userID, scope, key string, now time.Time) (resourceID uint, found bool, err error)

// IdempotencyValidator validates the header on unsafe methods and marks
// replays. Requests without the header, and safe methods, pass through.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_idempotency_key", "invalid Idempotency-Key")
			return
		}
		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			if uid := userIDFromCtx(c); uid != "" {
				id, found, err := lookup(c.Request.Context(), uid, IdempotencyScope(c), key, now())
				if err != nil {
					LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
				} else if found {
					c.Set(ctxKeyIdemReplay, id)
					c.Set(ctxKeyRateBypass, true)
				}
			}
		}
		c.Next()
	}
}

// userIDFromCtx returns the caller id set by IdentityFromHeaders, or "".
func userIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
