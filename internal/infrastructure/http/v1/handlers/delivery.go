package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockpile/internal/core/entity"
	"stockpile/internal/domain/documents/delivery"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// DeliveryHandler serves outgoing movement documents.
type DeliveryHandler struct {
	*BaseHandler
	service *delivery.Service
}

// NewDeliveryHandler creates a new delivery handler.
func NewDeliveryHandler(base *BaseHandler, service *delivery.Service) *DeliveryHandler {
	return &DeliveryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := delivery.ListFilter{ListFilter: h.ParseListFilter(c)}
	if status := c.Query("status"); status != "" {
		s := entity.Status(status)
		filter.Status = &s
	}
	filter.OperationType = c.Query("operationType")
	filter.DateFrom = h.ParseTimeQuery(c, "dateFrom")
	filter.DateTo = h.ParseTimeQuery(c, "dateTo")

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Paginated(c, dto.FromDeliveries(result.Items), result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /deliveries/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
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

	h.OK(c, dto.FromDelivery(doc))
}

// Create handles POST /deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDeliveryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()
	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromDelivery(doc))
}

// Update handles PUT /deliveries/:id
func (h *DeliveryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDeliveryRequest
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

	h.OK(c, dto.FromDelivery(doc))
}

// SetStatus handles POST /deliveries/:id/status
func (h *DeliveryHandler) SetStatus(c *gin.Context) {
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

	h.OK(c, dto.FromDelivery(doc))
}

// Delete handles DELETE /deliveries/:id
func (h *DeliveryHandler) Delete(c *gin.Context) {
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
