package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umayucar/search-engine/internal/domain"
)

type stubSyncService struct {
	result    *domain.SyncRunResult
	status    *domain.SyncRunResult
	statusErr error
	stored    *domain.SyncRunResult
}

func (s *stubSyncService) SyncAll(context.Context) *domain.SyncRunResult {
	return s.result
}

func (s *stubSyncService) LastSyncStatus(context.Context) (*domain.SyncRunResult, error) {
	return s.status, s.statusErr
}

func (s *stubSyncService) StoreLastSyncStatus(_ context.Context, result *domain.SyncRunResult) error {
	s.stored = result
	return nil
}

type stubSearchService struct {
	result    *domain.SearchResult
	searchErr error
	stats     *domain.ContentStats
	statsErr  error
	gotFilter domain.SearchFilter
}

func (s *stubSearchService) Search(_ context.Context, filter domain.SearchFilter) (*domain.SearchResult, error) {
	s.gotFilter = filter
	return s.result, s.searchErr
}

func (s *stubSearchService) Stats(context.Context) (*domain.ContentStats, error) {
	return s.stats, s.statsErr
}

func newTestRouter(syncSvc SyncService, searchSvc SearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetupRoutes(router, NewHandler(syncSvc, searchSvc, logger))
	return router
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSync_FullSuccess(t *testing.T) {
	syncSvc := &stubSyncService{
		result: &domain.SyncRunResult{
			TotalSynced: 12,
			Success:     true,
			ProviderResults: []domain.ProviderResult{
				{Provider: "JSON_Provider", Success: true, SyncedCount: 12},
			},
			Errors: []string{},
		},
	}
	router := newTestRouter(syncSvc, &stubSearchService{})

	w := doRequest(router, http.MethodPost, "/api/sync")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Successfully synced 12 items", body["message"])
	assert.NotNil(t, syncSvc.stored, "the run result must be stored as last status")
}

func TestSync_PartialFailure(t *testing.T) {
	syncSvc := &stubSyncService{
		result: &domain.SyncRunResult{
			TotalSynced: 3,
			Success:     false,
			Errors:      []string{"fetch: http request failed with status: 503"},
		},
	}
	router := newTestRouter(syncSvc, &stubSearchService{})

	w := doRequest(router, http.MethodPost, "/api/sync")

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Sync completed with errors", body["message"])
}

func TestSyncStatus_NoneYet(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubSearchService{})

	w := doRequest(router, http.MethodGet, "/api/sync/status")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "No sync has been performed yet", data["message"])
}

func TestSyncStatus_Stored(t *testing.T) {
	syncSvc := &stubSyncService{
		status: &domain.SyncRunResult{
			TotalSynced: 7,
			Success:     true,
			SyncedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	router := newTestRouter(syncSvc, &stubSearchService{})

	w := doRequest(router, http.MethodGet, "/api/sync/status")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(7), data["total_synced"])
}

func TestSyncStatus_ReadError(t *testing.T) {
	router := newTestRouter(&stubSyncService{statusErr: errors.New("redis down")}, &stubSearchService{})

	w := doRequest(router, http.MethodGet, "/api/sync/status")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSearch_DefaultsApplied(t *testing.T) {
	searchSvc := &stubSearchService{
		result: &domain.SearchResult{Items: []domain.Content{}, Total: 0},
	}
	router := newTestRouter(&stubSyncService{}, searchSvc)

	w := doRequest(router, http.MethodGet, "/api/search")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.SortRelevance, searchSvc.gotFilter.Sort)
	assert.Equal(t, domain.OrderDesc, searchSvc.gotFilter.Order)
	assert.Equal(t, 1, searchSvc.gotFilter.Page)
	assert.Equal(t, 10, searchSvc.gotFilter.PerPage)
}

func TestSearch_FilterPassedThrough(t *testing.T) {
	searchSvc := &stubSearchService{
		result: &domain.SearchResult{Items: []domain.Content{}, Total: 0},
	}
	router := newTestRouter(&stubSyncService{}, searchSvc)

	w := doRequest(router, http.MethodGet, "/api/search?query=golang&type=video&sort=date&order=asc&page=3&per_page=25")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.SearchFilter{
		Keyword: "golang",
		Type:    "video",
		Sort:    domain.SortDate,
		Order:   domain.OrderAsc,
		Page:    3,
		PerPage: 25,
	}, searchSvc.gotFilter)
}

func TestSearch_Validation(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"bad type", "/api/search?type=podcast"},
		{"bad sort", "/api/search?sort=alphabetical"},
		{"bad order", "/api/search?order=random"},
		{"negative page", "/api/search?page=-1"},
		{"per_page too large", "/api/search?per_page=101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubSyncService{}, &stubSearchService{})
			w := doRequest(router, http.MethodGet, tt.target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestSearch_Pagination(t *testing.T) {
	searchSvc := &stubSearchService{
		result: &domain.SearchResult{
			Items: []domain.Content{{ID: 21}, {ID: 22}},
			Total: 45,
		},
	}
	router := newTestRouter(&stubSyncService{}, searchSvc)

	w := doRequest(router, http.MethodGet, "/api/search?page=3&per_page=10")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["current_page"])
	assert.Equal(t, float64(5), pagination["last_page"])
	assert.Equal(t, float64(10), pagination["per_page"])
	assert.Equal(t, float64(45), pagination["total"])
	assert.Equal(t, float64(21), pagination["from"])
	assert.Equal(t, float64(22), pagination["to"])
}

func TestSearch_ServiceError(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubSearchService{searchErr: errors.New("db gone")})

	w := doRequest(router, http.MethodGet, "/api/search")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStats(t *testing.T) {
	searchSvc := &stubSearchService{
		stats: &domain.ContentStats{
			TotalContents: 20,
			TotalVideos:   8,
			TotalArticles: 12,
			AvgScore:      14.25,
		},
	}
	router := newTestRouter(&stubSyncService{}, searchSvc)

	w := doRequest(router, http.MethodGet, "/api/search/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(20), stats["total_contents"])
	assert.Equal(t, float64(8), stats["total_videos"])
	assert.Equal(t, float64(12), stats["total_articles"])
	assert.Equal(t, 14.25, stats["avg_score"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubSearchService{})

	w := doRequest(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
}
