package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLog swaps the global logger for one writing to a buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("decode log line %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen any
	r.GET("/x", func(c *gin.Context) {
		seen, _ = c.Get(requestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rid := w.Header().Get("X-Request-ID"); rid == "" || rid != seen {
		t.Fatalf("generated rid header=%q ctx=%v", rid, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("rid not propagated: %q", w.Header().Get("X-Request-ID"))
	}
}

func TestAccessLog_FieldsAndRedaction(t *testing.T) {
	buf := captureLog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AccessLog(RedactOptions{MaskHeaders: []string{"X-Secret"}}), IdentityFromHeaders())
	r.GET("/reclamations/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/reclamations/9?search=Rakoto&statut=en_cours&note=acct+0312345678+a@b.mg", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("X-Secret", "s3cr3t")
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserRole, RoleAgent)
	r.ServeHTTP(httptest.NewRecorder(), req)

	m := lastLine(t, buf)
	if m["level"] != "info" || m["message"] != "request" {
		t.Fatalf("unexpected level/message: %v", m)
	}
	if m["path"] != "/reclamations/:id" || m["reclamation_id"] != "9" {
		t.Fatalf("path fields: %v", m)
	}
	if m["user_id"] != float64(7) || m["role"] != RoleAgent {
		t.Fatalf("identity fields: %v", m)
	}
	q, _ := m["query"].(string)
	if strings.Contains(q, "Rakoto") || strings.Contains(q, "0312345678") || strings.Contains(q, "a@b.mg") {
		t.Fatalf("query not scrubbed: %q", q)
	}
	if !strings.Contains(q, "statut=en_cours") {
		t.Fatalf("harmless param lost: %q", q)
	}
	h, _ := m["headers"].(map[string]any)
	if h["Authorization"] != redacted || h["X-Secret"] != redacted {
		t.Fatalf("headers not masked: %v", h)
	}
}

func TestAccessLog_LevelByStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}
	for _, tc := range cases {
		buf := captureLog(t)
		r := gin.New()
		r.Use(RequestID(), AccessLog(RedactOptions{}))
		r.GET("/s", func(c *gin.Context) { c.Status(tc.status) })
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/s", nil))
		if got := lastLine(t, buf)["level"]; got != tc.level {
			t.Fatalf("status %d: level = %v, want %s", tc.status, got, tc.level)
		}
	}
}

func TestRecovery_JSONEnvelope(t *testing.T) {
	buf := captureLog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), AccessLog(RedactOptions{}), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "internal_error" || body["request_id"] == "" {
		t.Fatalf("body = %v", body)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestLoggerFrom_Fallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatal("nil logger")
	}
}

func TestScrubAndTruncate(t *testing.T) {
	if got := scrub("call 034 12 345 67 now"); strings.Contains(got, "345") {
		t.Fatalf("digits kept: %q", got)
	}
	if got := scrub("REC-2024"); got != "REC-2024" {
		t.Fatalf("short number scrubbed: %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate disabled = %q", got)
	}
}
