package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpile/internal/domain/history"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// HistoryHandler serves the append-only operation log.
type HistoryHandler struct {
	*BaseHandler
	service *history.Service
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(base *BaseHandler, service *history.Service) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /history
func (h *HistoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := history.ListFilter{ListFilter: h.ParseListFilter(c)}
	filter.Type = c.Query("type")
	filter.Operation = c.Query("operation")
	filter.ProductCode = c.Query("productCode")
	filter.From = h.ParseTimeQuery(c, "from")
	filter.To = h.ParseTimeQuery(c, "to")

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Paginated(c, dto.FromHistoryEntries(result.Items), result.TotalCount, result.Limit, result.Offset)
}

// GetByRelated handles GET /history/by-related/:id
// Returns entries for one document or stock item, newest first.
func (h *HistoryHandler) GetByRelated(c *gin.Context) {
	ctx := c.Request.Context()

	relatedID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.service.GetByRelated(ctx, relatedID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": dto.FromHistoryEntries(entries)})
}
