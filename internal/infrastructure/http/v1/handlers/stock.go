package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpile/internal/domain/stock"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock ledger.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /stock
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := stock.ListFilter{ListFilter: h.ParseListFilter(c)}
	if c.Query("orderBy") == "" {
		filter.OrderBy = "product_name"
	}
	filter.Category = c.Query("category")
	filter.Status = c.Query("status")
	filter.Location = c.Query("location")
	filter.BelowMinStock = c.Query("belowMinStock") == "true"

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Paginated(c, dto.FromStockItems(result.Items), result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /stock/:id
func (h *StockHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockItem(item))
}

// GetByCode handles GET /stock/by-code/:code
func (h *StockHandler) GetByCode(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.service.GetByCode(ctx, c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockItem(item))
}

// Upsert handles POST /stock
// Creates the ledger row when the product code is new, adjusts it otherwise.
func (h *StockHandler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpsertStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Apply(ctx, req.ToUpsert())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromStockItem(item))
}

// Delete handles DELETE /stock/:id
func (h *StockHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
