package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/aspects"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/chart"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/ephemeris"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/format"
	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	mu    sync.Mutex
	calls int
	next  ephemeris.Provider
}

func (p *countingProvider) Compute(ctx context.Context, instant time.Time, loc domain.Location, system domain.HouseSystem) (*ephemeris.Snapshot, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return p.next.Compute(ctx, instant, loc, system)
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// memoryProfiles fails on ids that are not UUIDs, as the uuid column does.
type memoryProfiles struct {
	mu   sync.Mutex
	byID map[string]*domain.BirthProfile
}

var errInvalidUUID = errors.New("pq: invalid input syntax for type uuid")

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errInvalidUUID
	}
	return nil
}

func (m *memoryProfiles) Create(_ context.Context, p *domain.BirthProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memoryProfiles) GetByID(_ context.Context, id string) (*domain.BirthProfile, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (m *memoryProfiles) List(_ context.Context, limit int) ([]*domain.BirthProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.BirthProfile
	for _, p := range m.byID {
		cp := *p
		out = append(out, &cp)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryProfiles) Delete(_ context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(m.byID, id)
	return nil
}

type testServer struct {
	router   *gin.Engine
	provider *countingProvider
}

func newTestServer(t *testing.T, limit gin.HandlerFunc) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := &countingProvider{next: ephemeris.NewKepler()}
	builder := chart.NewBuilder(provider, domain.HouseSystemWholeSign)
	charts := service.NewChartService(builder, aspects.NewDetector(nil), nil, nil).
		WithClock(func() time.Time { return time.Date(2000, 1, 1, 17, 0, 0, 0, time.UTC) })
	profiles := service.NewProfileService(&memoryProfiles{byID: map[string]*domain.BirthProfile{}}, charts)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(MethodNotAllowed)
	New(charts, profiles, 5*time.Second, nil).Register(router.Group("/api/v1"), limit)

	return &testServer{router: router, provider: provider}
}

func (s *testServer) do(method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

const validBody = `{"year":2000,"month":1,"day":1,"hour":5,"minute":0,"second":0,"period":"PM","latitude":40.7128,"longitude":-74.006}`

func TestCalculate_OK(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(http.MethodPost, "/api/v1/charts/calculate", validBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp format.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Natal.Planets, 11)
	assert.Len(t, resp.Natal.Points, 3)
	assert.Len(t, resp.Natal.Angles, 4)
	assert.Equal(t, "2000-01-01T17:00:00.000Z", resp.Transits.Date)
	assert.NotEmpty(t, resp.Aspects)

	var raw struct {
		Natal struct {
			Planets []map[string]any `json:"planets"`
		} `json:"natal"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	sun := raw.Natal.Planets[0]
	assert.Equal(t, "Sun", sun["name"])
	assert.Equal(t, float64(10), sun["house"])
	assert.NotContains(t, sun["position"], "'")
}

func TestCalculate_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rr := s.do(method, "/api/v1/charts/calculate", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rr.Body.String(), method)
	}
	assert.Zero(t, s.provider.count())
}

func TestCalculate_BadRequest(t *testing.T) {
	s := newTestServer(t, nil)

	cases := map[string]string{
		"malformed json":   `{"year":`,
		"missing field":    `{"year":2000,"month":1,"day":1,"hour":5,"minute":0,"latitude":1}`,
		"month 13":         `{"year":2000,"month":13,"day":1,"hour":5,"minute":0,"latitude":1,"longitude":1}`,
		"february 30":      `{"year":2000,"month":2,"day":30,"hour":5,"minute":0,"latitude":1,"longitude":1}`,
		"latitude 91":      `{"year":2000,"month":1,"day":1,"hour":5,"minute":0,"latitude":91,"longitude":1}`,
		"hour 13 with PM":  `{"year":2000,"month":1,"day":1,"hour":13,"minute":0,"period":"PM","latitude":1,"longitude":1}`,
		"unknown timezone": `{"year":2000,"month":1,"day":1,"hour":5,"minute":0,"timezone":"Mars/Olympus","latitude":1,"longitude":1}`,
		"string latitude":  `{"year":2000,"month":1,"day":1,"hour":5,"minute":0,"latitude":"north","longitude":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := s.do(http.MethodPost, "/api/v1/charts/calculate", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"Failed to calculate chart"}`, rr.Body.String())
		})
	}
	assert.Zero(t, s.provider.count())
}

func TestCalculate_ProviderFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	builder := chart.NewBuilder(failingProvider{}, "")
	charts := service.NewChartService(builder, aspects.NewDetector(nil), nil, nil)

	router := gin.New()
	New(charts, nil, time.Second, nil).Register(router.Group("/api/v1"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts/calculate", bytes.NewBufferString(validBody))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to calculate chart"}`, rr.Body.String())
}

type failingProvider struct{}

func (failingProvider) Compute(context.Context, time.Time, domain.Location, domain.HouseSystem) (*ephemeris.Snapshot, error) {
	return nil, assert.AnError
}

func TestCalculate_RateLimited(t *testing.T) {
	limited := false
	limit := func(c *gin.Context) {
		if limited {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		limited = true
		c.Next()
	}
	s := newTestServer(t, limit)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/charts/calculate", validBody).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/api/v1/charts/calculate", validBody).Code)
}

func TestGetReceipt_NotFoundWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(http.MethodGet, "/api/v1/charts/calculations/abc", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfiles_Lifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(http.MethodPost, "/api/v1/profiles", `{"name":"Ada",`+validBody[1:])
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Profile domain.BirthProfile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	id := created.Profile.ID
	require.NotEmpty(t, id)
	assert.Equal(t, domain.PeriodPM, created.Profile.Moment.Period)

	rr = s.do(http.MethodGet, "/api/v1/profiles/"+id, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/api/v1/profiles?limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed struct {
		Profiles []domain.BirthProfile `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed.Profiles, 1)

	rr = s.do(http.MethodGet, "/api/v1/profiles?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/v1/profiles/"+id+"/transits", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp format.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2000-01-01T17:00:00.000Z", resp.Transits.Date)

	rr = s.do(http.MethodDelete, "/api/v1/profiles/"+id, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodGet, "/api/v1/profiles/"+id, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Profile not found"}`, rr.Body.String())

	rr = s.do(http.MethodPost, "/api/v1/profiles/"+id+"/transits", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfiles_MalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/profiles/abc"},
		{http.MethodDelete, "/api/v1/profiles/abc"},
		{http.MethodPost, "/api/v1/profiles/abc/transits"},
	} {
		rr := s.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, tc.method+" "+tc.path)
	}
	assert.Zero(t, s.provider.count())
}

func TestProfiles_RejectsInvalidBirthData(t *testing.T) {
	s := newTestServer(t, nil)

	rr := s.do(http.MethodPost, "/api/v1/profiles", `{"name":"Ada","year":2001,"month":2,"day":29,"hour":1,"minute":0,"latitude":1,"longitude":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/v1/profiles", validBody)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_WithoutProfiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(nil, nil, time.Second, nil).Register(router.Group("/api/v1"), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
