package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/telemetry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	network *service.NetworkService
}

func newTestServer(t *testing.T, load bool) *testServer {
	t.Helper()
	repo := repository.NewSeeder(repository.NewMemoryStore(), analytics.RecalculateAllMetrics)
	metrics := telemetry.NewRegistry()
	network := service.NewNetworkService(repo, service.Options{
		Metrics: metrics,
		Admin:   auth.Admin{Username: "admin", Password: "admin123"},
	})
	if load {
		require.NoError(t, network.Load(context.Background()))
	}

	router := NewRouter(&Services{
		Network: network,
		Tokens:  auth.NewTokenManager("test-secret", time.Hour),
		Metrics: metrics,
	}, nil)
	return &testServer{router: router, network: network}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	assert.Equal(t, http.StatusServiceUnavailable, srv.do(http.MethodGet, "/health", "", nil).Code)

	require.NoError(t, srv.network.Load(context.Background()))
	w := srv.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"companies":2`)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, true)

	w := srv.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := srv.login(t, "chicago", "chicago123")
	me := decode[auth.Session](t, srv.do(http.MethodGet, "/api/v1/auth/me", token, nil))
	assert.Equal(t, "wh-chicago", me.UserID)
	assert.Equal(t, auth.RoleWarehouse, me.Role)
	assert.Equal(t, domain.SeedInnovateID, me.CompanyID)
}

func TestRequiresToken(t *testing.T) {
	srv := newTestServer(t, true)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/api/v1/companies", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodGet, "/api/v1/companies", "garbage", nil).Code)
}

func TestListCompaniesScopedToSession(t *testing.T) {
	srv := newTestServer(t, true)

	all := decode[[]domain.Company](t, srv.do(http.MethodGet, "/api/v1/companies", srv.login(t, "admin", "admin123"), nil))
	assert.Len(t, all, 2)

	own := decode[[]domain.Company](t, srv.do(http.MethodGet, "/api/v1/companies", srv.login(t, "chicago", "chicago123"), nil))
	require.Len(t, own, 1)
	assert.Equal(t, domain.SeedInnovateID, own[0].ID)
}

func TestGetCompany(t *testing.T) {
	srv := newTestServer(t, true)
	admin := srv.login(t, "admin", "admin123")
	node := srv.login(t, "chicago", "chicago123")

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/v1/companies/"+domain.SeedInnovateID, node, nil).Code)
	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodGet, "/api/v1/companies/"+domain.SeedLegacyID, node, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/api/v1/companies/nope", admin, nil).Code)
}

func TestStressTestAndReset(t *testing.T) {
	srv := newTestServer(t, true)
	admin := srv.login(t, "admin", "admin123")
	base := "/api/v1/companies/" + domain.SeedInnovateID

	w := srv.do(http.MethodPost, base+"/stress-tests", srv.login(t, "chicago", "chicago123"), map[string]string{"type": "SUPPLIER_OUTAGE"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(http.MethodPost, base+"/stress-tests", admin, map[string]string{"type": "EARTHQUAKE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(http.MethodPost, base+"/stress-tests", admin, map[string]string{"type": "SUPPLIER_OUTAGE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	company := decode[domain.Company](t, w)
	assert.NotEqual(t, company.BaseData, company.Data)

	status := decode[service.ScenarioStatus](t, srv.do(http.MethodGet, base+"/scenario", admin, nil))
	assert.True(t, status.Active)

	w = srv.do(http.MethodPost, base+"/reset", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status = decode[service.ScenarioStatus](t, srv.do(http.MethodGet, base+"/scenario", admin, nil))
	assert.False(t, status.Active)
}

func TestWarehouseTargetPermissions(t *testing.T) {
	srv := newTestServer(t, true)
	node := srv.login(t, "chicago", "chicago123")
	base := "/api/v1/companies/" + domain.SeedInnovateID + "/warehouses/"

	w := srv.do(http.MethodPut, base+"wh-chicago/targets/otif", node, map[string]float64{"target": 97})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	company := decode[domain.Company](t, w)
	wh, ok := company.Data.FindWarehouse("wh-chicago")
	require.True(t, ok)
	assert.Equal(t, 97.0, wh.Metrics.OTIF.Target)

	assert.Equal(t, http.StatusForbidden, srv.do(http.MethodPut, base+"wh-other/targets/otif", node, map[string]float64{"target": 97}).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPut, base+"wh-chicago/targets/bogus", node, map[string]float64{"target": 97}).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPut, base+"wh-chicago/targets/otif", node, map[string]string{}).Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t, true)
	admin := srv.login(t, "admin", "admin123")
	base := "/api/v1/companies/" + domain.SeedInnovateID

	w := srv.do(http.MethodGet, base+"/forecast?days=30", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"days":30`)

	w = srv.do(http.MethodGet, base+"/forecast?days=9999", admin, nil)
	assert.Contains(t, w.Body.String(), `"days":60`)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, base+"/warnings", admin, nil).Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, base+"/outlook", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/api/v1/companies/nope/outlook", admin, nil).Code)
}

func TestTemplateDownloadAndImport(t *testing.T) {
	srv := newTestServer(t, true)
	admin := srv.login(t, "admin", "admin123")

	w := srv.do(http.MethodGet, "/api/v1/templates/company", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), importer.TemplateFileName)
	workbook := w.Body.Bytes()
	require.NotEmpty(t, workbook)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", importer.TemplateFileName)
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, srv.network.Companies(), 3)
}

func TestImportWithoutFile(t *testing.T) {
	srv := newTestServer(t, true)
	w := srv.do(http.MethodPost, "/api/v1/imports", srv.login(t, "admin", "admin123"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshotRoutesDisabledWithoutStore(t *testing.T) {
	srv := newTestServer(t, true)
	w := srv.do(http.MethodPost, "/api/v1/snapshots", srv.login(t, "admin", "admin123"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, true)
	srv.do(http.MethodGet, "/health", "", nil)

	w := srv.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "whatif_http_requests_total")
	assert.Contains(t, w.Body.String(), "whatif_companies 2")
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{" http://a.test , http://b.test", "", "*"})
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)
	assert.True(t, allowAll)

	cfg := corsConfig([]string{"*"})
	assert.Nil(t, cfg.AllowOrigins)
	assert.True(t, cfg.AllowOriginFunc("http://anything"))

	cfg = corsConfig(nil)
	assert.Contains(t, cfg.AllowOrigins, "http://localhost:3000")
}

func TestNodeSessionsNeverSeeCredentials(t *testing.T) {
	srv := newTestServer(t, true)
	customer := srv.login(t, "nyc", "nyc123")
	base := "/api/v1/companies/" + domain.SeedInnovateID

	for _, w := range []*httptest.ResponseRecorder{
		srv.do(http.MethodGet, "/api/v1/companies", customer, nil),
		srv.do(http.MethodGet, base, customer, nil),
		srv.do(http.MethodPut, base+"/warehouses/wh-chicago/targets/otif", srv.login(t, "chicago", "chicago123"), map[string]float64{"target": 96}),
	} {
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "chicago123")
		assert.NotContains(t, w.Body.String(), "detroit123")
		assert.NotContains(t, w.Body.String(), `"password"`)
	}

	w := srv.do(http.MethodGet, base, srv.login(t, "admin", "admin123"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chicago123")

	// stored credentials are untouched
	srv.login(t, "chicago", "chicago123")
}
