package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type lookupCall struct {
	userID, scope, key string
	now                time.Time
}

func idemRouter(opts IdempotencyOptions, lookup IdempotencyLookup, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), IdentityFromHeaders(), IdempotencyValidator(opts, lookup))
	r.POST("/reclamations", h)
	r.GET("/reclamations", h)
	return r
}

func postWithKey(key string, withIdentity bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/reclamations", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	if withIdentity {
		req.Header.Set(HeaderUserID, "7")
		req.Header.Set(HeaderUserRole, RoleAgent)
	}
	return req
}

func TestIdempotencyValidator_NoHeaderPassesThrough(t *testing.T) {
	called := false
	r := idemRouter(IdempotencyOptions{}, func(context.Context, string, string, string, time.Time) (uint, bool, error) {
		called = true
		return 0, false, nil
	}, func(c *gin.Context) {
		if _, ok := GetIdempotencyKey(c); ok {
			t.Error("key should be absent")
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postWithKey("", true))
	if w.Code != http.StatusCreated || called {
		t.Fatalf("status=%d lookupCalled=%v", w.Code, called)
	}
}

func TestIdempotencyValidator_RejectsBadKeys(t *testing.T) {
	r := idemRouter(IdempotencyOptions{MaxLen: 8}, nil, func(c *gin.Context) { c.Status(http.StatusCreated) })
	for _, key := range []string{"has space", "waytoolongkey", "bad/slash"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postWithKey(key, true))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("key %q: status = %d", key, w.Code)
		}
		if !strings.Contains(w.Body.String(), "bad_idempotency_key") {
			t.Fatalf("key %q: body = %s", key, w.Body.String())
		}
	}
}

func TestIdempotencyValidator_SafeMethodsIgnoreHeader(t *testing.T) {
	r := idemRouter(IdempotencyOptions{}, nil, func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/reclamations", nil)
	req.Header.Set(HeaderIdempotencyKey, "not valid!")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestIdempotencyValidator_FirstAttempt(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	var calls []lookupCall
	lookup := func(_ context.Context, userID, scope, key string, now time.Time) (uint, bool, error) {
		calls = append(calls, lookupCall{userID, scope, key, now})
		return 0, false, nil
	}
	var gotKey, gotScope string
	var replay bool
	r := idemRouter(IdempotencyOptions{Now: func() time.Time { return fixed }}, lookup, func(c *gin.Context) {
		gotKey, _ = GetIdempotencyKey(c)
		gotScope = IdempotencyScope(c)
		replay = IsReplay(c)
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postWithKey("abc-123", true))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if gotKey != "abc-123" || gotScope != "POST /reclamations" || replay {
		t.Fatalf("key=%q scope=%q replay=%v", gotKey, gotScope, replay)
	}
	want := lookupCall{"7", "POST /reclamations", "abc-123", fixed}
	if len(calls) != 1 || calls[0] != want {
		t.Fatalf("lookup calls = %+v", calls)
	}
}

func TestIdempotencyValidator_ReplayMarksBypass(t *testing.T) {
	lookup := func(context.Context, string, string, string, time.Time) (uint, bool, error) {
		return 41, true, nil
	}
	var id uint
	var ok, bypass bool
	r := idemRouter(IdempotencyOptions{}, lookup, func(c *gin.Context) {
		id, ok = ReplayResourceID(c)
		bypass = IsRateBypass(c)
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), postWithKey("k1", true))
	if !ok || id != 41 || !bypass {
		t.Fatalf("replay id=%d ok=%v bypass=%v", id, ok, bypass)
	}
}

func TestIdempotencyValidator_LookupErrorAndAnonymous(t *testing.T) {
	calls := 0
	lookup := func(context.Context, string, string, string, time.Time) (uint, bool, error) {
		calls++
		return 0, false, errors.New("db down")
	}
	r := idemRouter(IdempotencyOptions{}, lookup, func(c *gin.Context) {
		if IsReplay(c) {
			t.Error("unexpected replay")
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postWithKey("k1", true))
	if w.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("lookup error: status=%d calls=%d", w.Code, calls)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, postWithKey("k1", false))
	if w.Code != http.StatusCreated || calls != 1 {
		t.Fatalf("anonymous: status=%d calls=%d", w.Code, calls)
	}
}
