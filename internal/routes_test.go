package internal

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/naka-gawa/github-profile-stats/internal/controllers"
	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}

type routeTestService struct{}

func (m *routeTestService) Analyze(_ context.Context, name, _ string, _ *string) (string, error) {
	return "id-" + name, nil
}
func (m *routeTestService) GetAnalysis(_ context.Context, id string) (*domain.StatsSnapshot, error) {
	return &domain.StatsSnapshot{ID: id, AccountName: strings.Repeat("octocat ", 200)}, nil
}
func (m *routeTestService) History(_ context.Context, _ string, page int) (*domain.HistoryPage, error) {
	return &domain.HistoryPage{Items: []domain.SnapshotSummary{}, Page: page, PageSize: 10}, nil
}
func (m *routeTestService) Compare(_ context.Context, _ string) (*domain.Comparison, error) {
	return &domain.Comparison{}, nil
}
func (m *routeTestService) Contributions(_ context.Context, _ string, _ string) (*domain.ContributionData, error) {
	return &domain.ContributionData{Contributions: []domain.ContributionDay{}}, nil
}

type routeTestStore struct{}

func (m *routeTestStore) Save(_ context.Context, _ *domain.StatsSnapshot) (string, error) {
	return "", nil
}
func (m *routeTestStore) GetByID(_ context.Context, _ string) (*domain.StatsSnapshot, error) {
	return nil, nil
}
func (m *routeTestStore) ListForOwner(_ context.Context, _ string, _, _ int) ([]domain.SnapshotSummary, int, error) {
	return nil, 0, nil
}
func (m *routeTestStore) FindLatestByName(_ context.Context, _ string) (*domain.StatsSnapshot, error) {
	return nil, nil
}
func (m *routeTestStore) Ping(_ context.Context) error { return nil }
func (m *routeTestStore) Close() error                 { return nil }

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	logger := &routeTestLogger{}
	conf := &structures.Config{AppName: "test", WebServer: structures.Server{Host: "127.0.0.1", Port: 8080}}
	api := controllers.NewApiController(logger, &routeTestService{}, &routeTestCache{})
	health := controllers.NewHealthController(&routeTestStore{}, logger)
	metrics := providers.NewMetricsProvider(conf)

	app := NewApp(health, conf, logger, InitRoutes(api), metrics, &routeTestStore{})
	require.NotNil(t, app.WebServer)
	assert.Equal(t, "127.0.0.1:8080", app.WebServer.Addr)
	return app.WebServer.Handler
}

func TestInitRoutes_RegistersAllEndpoints(t *testing.T) {
	routes := InitRoutes(controllers.NewApiController(&routeTestLogger{}, &routeTestService{}, &routeTestCache{})).GetRoutes()

	var patterns []string
	for _, r := range routes {
		patterns = append(patterns, r.Method+" "+r.Url)
	}
	assert.ElementsMatch(t, []string{
		"POST /analyze/{name}",
		"GET /analysis/{id}",
		"GET /contributions/{login}",
		"GET /history",
		"GET /compare/{slug}",
	}, patterns)
}

func TestApp_Routing(t *testing.T) {
	handler := newTestHandler(t)

	testCases := []struct {
		method         string
		url            string
		expectedStatus int
		expectedBody   string
	}{
		{http.MethodPost, "/analyze/octocat", http.StatusOK, `"analysisId":"id-octocat"`},
		{http.MethodGet, "/analyze/octocat", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/analysis/abc", http.StatusOK, `"id":"abc"`},
		{http.MethodGet, "/contributions/octocat", http.StatusOK, `"contributions":[]`},
		{http.MethodGet, "/history?ownerUserId=u", http.StatusOK, `"pageSize":10`},
		{http.MethodGet, "/compare/a-vs-b", http.StatusOK, `"first":null`},
		{http.MethodGet, "/health", http.StatusOK, `"status":"ok"`},
		{http.MethodGet, "/unknown", http.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.url, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.url, nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestApp_MetricsDisabled(t *testing.T) {
	handler := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestApp_CompressesLargeResponses(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/analysis/abc", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"id":"abc"`)
}

func TestApp_RunStopsOnContextCancel(t *testing.T) {
	logger := &routeTestLogger{}
	conf := &structures.Config{AppName: "test", WebServer: structures.Server{Host: "127.0.0.1", Port: 0}}
	api := controllers.NewApiController(logger, &routeTestService{}, &routeTestCache{})
	health := controllers.NewHealthController(&routeTestStore{}, logger)
	app := NewApp(health, conf, logger, InitRoutes(api), providers.NewMetricsProvider(conf), &routeTestStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.Run(ctx))
}
