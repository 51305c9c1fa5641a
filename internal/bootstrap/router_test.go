package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/config"
	httpapi "github.com/GoSim-25-26J-441/astro-transit-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Chart:  config.ChartConfig{HouseSystem: domain.HouseSystemWholeSign},
		Digest: config.DigestConfig{Schedule: "0 0 6 * * *", Parallelism: 2},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	SetGinMode("test")

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	svcs, err := BuildServices(testConfig(), nil, rdb, nil)
	require.NoError(t, err)
	assert.Nil(t, svcs.Profiles)
	assert.Nil(t, svcs.Digest)
	assert.NotNil(t, svcs.Digests)

	r := BuildRouter(RouterDeps{
		ServiceName:    "astro-transit",
		Version:        "test",
		Redis:          rdb,
		Services:       svcs,
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		CORSOrigins:    []string{"*"},
	})
	return r, mr
}

func TestBuildRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var health httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "disabled", health.DB)
	assert.Equal(t, "up", health.Redis)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestBuildRouter_CalculateStoresReceipt(t *testing.T) {
	r, mr := newTestRouter(t)

	body := `{"year":1990,"month":5,"day":17,"hour":14,"minute":30,"second":0,"latitude":51.5,"longitude":-0.12}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	keys := mr.Keys()
	require.Len(t, keys, 1)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/charts/calculations/"+keys[0][len("astro:calc:"):], nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBuildRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/charts/calculate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rr.Body.String())
}

func TestBuildServices_RejectsBadOrbs(t *testing.T) {
	cfg := testConfig()
	cfg.Chart.OrbSpec = "semisquare=3"

	_, err := BuildServices(cfg, nil, nil, nil)
	assert.Error(t, err)
}
