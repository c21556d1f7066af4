package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersByRouteStatusAndRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdentityFromHeaders(), Metrics())
	r.GET("/reclamations/:id", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/empty", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseAgent := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/reclamations/:id", "200", RoleAgent))
	baseAnon := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/reclamations/:id", "200", "anonymous"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/missing", "404", "anonymous"))
	baseSizes := testutil.CollectAndCount(httpRespSize)

	req := httptest.NewRequest(http.MethodGet, "/reclamations/3", nil)
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserRole, RoleAgent)
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reclamations/4", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/empty", nil))

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/reclamations/:id", "200", RoleAgent)); got != baseAgent+1 {
		t.Fatalf("agent counter = %v, want %v", got, baseAgent+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/reclamations/:id", "200", "anonymous")); got != baseAnon+1 {
		t.Fatalf("anonymous counter = %v, want %v", got, baseAnon+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/missing", "404", "anonymous")); got != base404+1 {
		t.Fatalf("404 fallback counter = %v, want %v", got, base404+1)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight = %v", got)
	}
	if testutil.CollectAndCount(httpRespSize) < baseSizes {
		t.Fatal("size histogram lost series")
	}
	if testutil.CollectAndCount(httpLat) == 0 {
		t.Fatal("latency histogram empty")
	}
}
