package dto

import (
	"time"

	"stockpile/internal/core/entity"
	"stockpile/internal/core/types"
	"stockpile/internal/domain/documents"
	"stockpile/internal/domain/documents/delivery"
	"stockpile/internal/domain/documents/receipt"
)

// --- Shared line DTOs ---

// LineRequest is one product line in a movement document request.
type LineRequest struct {
	ProductName string      `json:"productName" binding:"required"`
	ProductCode string      `json:"productCode"`
	Quantity    int64       `json:"quantity" binding:"required,gt=0"`
	UnitPrice   types.Money `json:"unitPrice"`
}

// ToLines converts request lines to domain lines, numbering them in order.
func ToLines(reqs []LineRequest) []documents.Line {
	lines := make([]documents.Line, 0, len(reqs))
	for i, r := range reqs {
		lines = append(lines, documents.NewLine(i+1, r.ProductName, r.ProductCode, r.Quantity, r.UnitPrice))
	}
	return lines
}

// LineResponse is one product line in a movement document response.
type LineResponse struct {
	LineID      string      `json:"lineId"`
	LineNo      int         `json:"lineNo"`
	ProductName string      `json:"productName"`
	ProductCode string      `json:"productCode,omitempty"`
	Quantity    int64       `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	TotalPrice  types.Money `json:"totalPrice"`
}

// FromLines converts domain lines to response lines.
func FromLines(lines []documents.Line) []LineResponse {
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResponse{
			LineID:      l.LineID.String(),
			LineNo:      l.LineNo,
			ProductName: l.ProductName,
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TotalPrice:  l.TotalPrice,
		})
	}
	return out
}

// SetStatusRequest advances a document along its workflow.
type SetStatusRequest struct {
	Status entity.Status `json:"status" binding:"required"`
}

// --- Receipt DTOs ---

// CreateReceiptRequest is the request body for creating a receipt.
type CreateReceiptRequest struct {
	ReceiveFrom   string        `json:"receiveFrom" binding:"required"`
	ToLocation    string        `json:"toLocation"`
	Contact       string        `json:"contact"`
	Responsible   string        `json:"responsible"`
	ScheduledDate *time.Time    `json:"scheduledDate"`
	Notes         string        `json:"notes"`
	Lines         []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReceiptRequest) ToEntity() *receipt.Receipt {
	doc := receipt.New()
	doc.ReceiveFrom = r.ReceiveFrom
	doc.ToLocation = r.ToLocation
	doc.Contact = r.Contact
	doc.Responsible = r.Responsible
	doc.ScheduledDate = r.ScheduledDate
	doc.Notes = r.Notes
	doc.Lines = ToLines(r.Lines)
	return doc
}

// UpdateReceiptRequest is the request body for updating a receipt.
type UpdateReceiptRequest struct {
	ReceiveFrom   string        `json:"receiveFrom" binding:"required"`
	ToLocation    string        `json:"toLocation"`
	Contact       string        `json:"contact"`
	Responsible   string        `json:"responsible"`
	ScheduledDate *time.Time    `json:"scheduledDate"`
	Notes         string        `json:"notes"`
	Lines         []LineRequest `json:"lines" binding:"required,min=1,dive"`
	Version       int           `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateReceiptRequest) ApplyTo(doc *receipt.Receipt) {
	doc.ReceiveFrom = r.ReceiveFrom
	doc.ToLocation = r.ToLocation
	doc.Contact = r.Contact
	doc.Responsible = r.Responsible
	doc.ScheduledDate = r.ScheduledDate
	doc.Notes = r.Notes
	doc.Lines = ToLines(r.Lines)
	doc.Version = r.Version
}

// ReceiptResponse is the response body for a receipt.
type ReceiptResponse struct {
	BaseResponse
	Reference     string         `json:"reference"`
	Status        entity.Status  `json:"status"`
	ReceiveFrom   string         `json:"receiveFrom"`
	ToLocation    string         `json:"toLocation,omitempty"`
	Contact       string         `json:"contact,omitempty"`
	Responsible   string         `json:"responsible,omitempty"`
	ScheduledDate *time.Time     `json:"scheduledDate,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	TotalQuantity int64          `json:"totalQuantity"`
	Lines         []LineResponse `json:"lines"`
}

// FromReceipt creates response DTO from domain entity.
func FromReceipt(doc *receipt.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		BaseResponse:  FromBaseDocument(doc.BaseDocument),
		Reference:     doc.Reference,
		Status:        doc.Status,
		ReceiveFrom:   doc.ReceiveFrom,
		ToLocation:    doc.ToLocation,
		Contact:       doc.Contact,
		Responsible:   doc.Responsible,
		ScheduledDate: doc.ScheduledDate,
		Notes:         doc.Notes,
		TotalQuantity: doc.TotalQuantity(),
		Lines:         FromLines(doc.Lines),
	}
}

// FromReceipts maps a list of receipts to responses.
func FromReceipts(docs []*receipt.Receipt) []*ReceiptResponse {
	out := make([]*ReceiptResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromReceipt(d))
	}
	return out
}

// --- Delivery DTOs ---

// CreateDeliveryRequest is the request body for creating a delivery.
type CreateDeliveryRequest struct {
	DeliveryAddress string        `json:"deliveryAddress" binding:"required"`
	OperationType   string        `json:"operationType"`
	FromLocation    string        `json:"fromLocation"`
	ToLocation      string        `json:"toLocation"`
	Contact         string        `json:"contact"`
	Responsible     string        `json:"responsible"`
	ScheduledDate   *time.Time    `json:"scheduledDate"`
	Notes           string        `json:"notes"`
	Lines           []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDeliveryRequest) ToEntity() *delivery.Delivery {
	doc := delivery.New()
	doc.DeliveryAddress = r.DeliveryAddress
	doc.OperationType = r.OperationType
	doc.FromLocation = r.FromLocation
	doc.ToLocation = r.ToLocation
	doc.Contact = r.Contact
	doc.Responsible = r.Responsible
	doc.ScheduledDate = r.ScheduledDate
	doc.Notes = r.Notes
	doc.Lines = ToLines(r.Lines)
	return doc
}

// UpdateDeliveryRequest is the request body for updating a delivery.
type UpdateDeliveryRequest struct {
	DeliveryAddress string        `json:"deliveryAddress" binding:"required"`
	OperationType   string        `json:"operationType"`
	FromLocation    string        `json:"fromLocation"`
	ToLocation      string        `json:"toLocation"`
	Contact         string        `json:"contact"`
	Responsible     string        `json:"responsible"`
	ScheduledDate   *time.Time    `json:"scheduledDate"`
	Notes           string        `json:"notes"`
	Lines           []LineRequest `json:"lines" binding:"required,min=1,dive"`
	Version         int           `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateDeliveryRequest) ApplyTo(doc *delivery.Delivery) {
	doc.DeliveryAddress = r.DeliveryAddress
	doc.OperationType = r.OperationType
	doc.FromLocation = r.FromLocation
	doc.ToLocation = r.ToLocation
	doc.Contact = r.Contact
	doc.Responsible = r.Responsible
	doc.ScheduledDate = r.ScheduledDate
	doc.Notes = r.Notes
	doc.Lines = ToLines(r.Lines)
	doc.Version = r.Version
}

// DeliveryResponse is the response body for a delivery.
type DeliveryResponse struct {
	BaseResponse
	Reference       string         `json:"reference"`
	Status          entity.Status  `json:"status"`
	DeliveryAddress string         `json:"deliveryAddress"`
	OperationType   string         `json:"operationType,omitempty"`
	FromLocation    string         `json:"fromLocation,omitempty"`
	ToLocation      string         `json:"toLocation,omitempty"`
	Contact         string         `json:"contact,omitempty"`
	Responsible     string         `json:"responsible,omitempty"`
	ScheduledDate   *time.Time     `json:"scheduledDate,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	TotalQuantity   int64          `json:"totalQuantity"`
	Lines           []LineResponse `json:"lines"`
}

// FromDelivery creates response DTO from domain entity.
func FromDelivery(doc *delivery.Delivery) *DeliveryResponse {
	return &DeliveryResponse{
		BaseResponse:    FromBaseDocument(doc.BaseDocument),
		Reference:       doc.Reference,
		Status:          doc.Status,
		DeliveryAddress: doc.DeliveryAddress,
		OperationType:   doc.OperationType,
		FromLocation:    doc.FromLocation,
		ToLocation:      doc.ToLocation,
		Contact:         doc.Contact,
		Responsible:     doc.Responsible,
		ScheduledDate:   doc.ScheduledDate,
		Notes:           doc.Notes,
		TotalQuantity:   doc.TotalQuantity(),
		Lines:           FromLines(doc.Lines),
	}
}

// FromDeliveries maps a list of deliveries to responses.
func FromDeliveries(docs []*delivery.Delivery) []*DeliveryResponse {
	out := make([]*DeliveryResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDelivery(d))
	}
	return out
}
