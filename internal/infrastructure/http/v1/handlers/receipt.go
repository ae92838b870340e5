package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpile/internal/core/entity"
	"stockpile/internal/domain/documents/receipt"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// ReceiptHandler serves incoming movement documents.
type ReceiptHandler struct {
	*BaseHandler
	service *receipt.Service
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(base *BaseHandler, service *receipt.Service) *ReceiptHandler {
	return &ReceiptHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := receipt.ListFilter{ListFilter: h.ParseListFilter(c)}
	if status := c.Query("status"); status != "" {
		s := entity.Status(status)
		filter.Status = &s
	}
	filter.DateFrom = h.ParseTimeQuery(c, "dateFrom")
	filter.DateTo = h.ParseTimeQuery(c, "dateTo")

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Paginated(c, dto.FromReceipts(result.Items), result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /receipts/:id
func (h *ReceiptHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReceipt(doc))
}

// Create handles POST /receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()
	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromReceipt(doc))
}

// Update handles PUT /receipts/:id
func (h *ReceiptHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)
	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReceipt(doc))
}

// SetStatus handles POST /receipts/:id/status
func (h *ReceiptHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(ctx, docID, req.Status); err != nil {
		h.Error(c, err)
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReceipt(doc))
}

// Delete handles DELETE /receipts/:id
func (h *ReceiptHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
