// Package api exposes the sync and search operations over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umayucar/search-engine/internal/domain"
)

// SyncService is the slice of the sync orchestrator the handlers need.
type SyncService interface {
	SyncAll(ctx context.Context) *domain.SyncRunResult
	LastSyncStatus(ctx context.Context) (*domain.SyncRunResult, error)
	StoreLastSyncStatus(ctx context.Context, result *domain.SyncRunResult) error
}

// SearchService is the slice of the search side the handlers need.
type SearchService interface {
	Search(ctx context.Context, filter domain.SearchFilter) (*domain.SearchResult, error)
	Stats(ctx context.Context) (*domain.ContentStats, error)
}

type Handler struct {
	sync   SyncService
	search SearchService
	logger *slog.Logger
}

func NewHandler(sync SyncService, search SearchService, logger *slog.Logger) *Handler {
	return &Handler{
		sync:   sync,
		search: search,
		logger: logger,
	}
}

// Sync triggers a full sync run across all providers. Full success responds
// 200; a run with provider failures responds 207.
func (h *Handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	result := h.sync.SyncAll(ctx)

	if err := h.sync.StoreLastSyncStatus(ctx, result); err != nil {
		h.logger.Error("store sync status failed", "error", err)
	}

	status := http.StatusOK
	message := fmt.Sprintf("Successfully synced %d items", result.TotalSynced)
	if !result.Success {
		status = http.StatusMultiStatus
		message = "Sync completed with errors"
	}

	c.JSON(status, gin.H{
		"success": result.Success,
		"message": message,
		"data":    result,
	})
}

// SyncStatus returns the most recent sync run summary, if any is still held
// in the status slot.
func (h *Handler) SyncStatus(c *gin.Context) {
	status, err := h.sync.LastSyncStatus(c.Request.Context())
	if err != nil {
		h.logger.Error("read sync status failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to read sync status",
		})
		return
	}

	if status == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"message": "No sync has been performed yet"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    status,
	})
}

// searchRequest mirrors the public query contract; gin's binding rejects
// invalid enum values and out-of-range pagination before the filter reaches
// the search service.
type searchRequest struct {
	Query   string `form:"query" binding:"omitempty,max=255"`
	Type    string `form:"type" binding:"omitempty,oneof=video article"`
	Sort    string `form:"sort" binding:"omitempty,oneof=relevance date popularity"`
	Order   string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

func (r searchRequest) toFilter() domain.SearchFilter {
	filter := domain.SearchFilter{
		Keyword: r.Query,
		Type:    r.Type,
		Sort:    r.Sort,
		Order:   r.Order,
		Page:    r.Page,
		PerPage: r.PerPage,
	}
	if filter.Sort == "" {
		filter.Sort = domain.SortRelevance
	}
	if filter.Order == "" {
		filter.Order = domain.OrderDesc
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PerPage == 0 {
		filter.PerPage = 10
	}
	return filter
}

// Search answers a filtered, sorted, paginated content query.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid search parameters: " + err.Error(),
		})
		return
	}

	filter := req.toFilter()

	result, err := h.search.Search(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("search failed", "error", err, "keyword", filter.Keyword)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "search failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Items,
		"pagination": paginationFor(filter, result),
		"filters": gin.H{
			"query": filter.Keyword,
			"type":  filter.Type,
			"sort":  filter.Sort,
			"order": filter.Order,
		},
	})
}

func paginationFor(filter domain.SearchFilter, result *domain.SearchResult) gin.H {
	lastPage := (result.Total + filter.PerPage - 1) / filter.PerPage
	if lastPage < 1 {
		lastPage = 1
	}

	var from, to int
	if len(result.Items) > 0 {
		from = filter.Offset() + 1
		to = filter.Offset() + len(result.Items)
	}

	return gin.H{
		"current_page": filter.Page,
		"last_page":    lastPage,
		"per_page":     filter.PerPage,
		"total":        result.Total,
		"from":         from,
		"to":           to,
	}
}

// Stats returns aggregate corpus statistics.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.search.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to compute stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// Health is a liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
