package dto

import (
	"stockpile/internal/core/types"
	"stockpile/internal/domain/stock"
)

// --- Request DTOs ---

// UpsertStockItemRequest creates or adjusts one stock ledger row.
// Either Quantity (absolute) or QuantityChange (relative) may be set;
// the absolute value wins when both are present.
type UpsertStockItemRequest struct {
	ProductName    string       `json:"productName" binding:"required"`
	ProductCode    string       `json:"productCode"`
	Category       string       `json:"category"`
	Quantity       *int64       `json:"quantity"`
	QuantityChange int64        `json:"quantityChange"`
	UnitPrice      *types.Money `json:"unitPrice"`
	SupplierName   string       `json:"supplierName"`
	Location       string       `json:"location"`
	MinStockLevel  *int64       `json:"minStockLevel"`
	MaxStockLevel  *int64       `json:"maxStockLevel"`
	Status         string       `json:"status"`
	Notes          string       `json:"notes"`
}

// ToUpsert converts DTO to the ledger write input.
func (r *UpsertStockItemRequest) ToUpsert() stock.Upsert {
	return stock.Upsert{
		ProductName:    r.ProductName,
		ProductCode:    r.ProductCode,
		Category:       r.Category,
		Quantity:       r.Quantity,
		QuantityChange: r.QuantityChange,
		UnitPrice:      r.UnitPrice,
		SupplierName:   r.SupplierName,
		Location:       r.Location,
		MinStockLevel:  r.MinStockLevel,
		MaxStockLevel:  r.MaxStockLevel,
		Status:         r.Status,
		Notes:          r.Notes,
	}
}

// --- Response DTOs ---

// StockItemResponse is the response body for a stock ledger row.
type StockItemResponse struct {
	BaseResponse
	ProductName   string      `json:"productName"`
	ProductCode   string      `json:"productCode,omitempty"`
	Category      string      `json:"category,omitempty"`
	Quantity      int64       `json:"quantity"`
	UnitPrice     types.Money `json:"unitPrice"`
	TotalValue    types.Money `json:"totalValue"`
	SupplierName  string      `json:"supplierName,omitempty"`
	Location      string      `json:"location,omitempty"`
	MinStockLevel int64       `json:"minStockLevel"`
	MaxStockLevel *int64      `json:"maxStockLevel,omitempty"`
	Status        string      `json:"status"`
	Notes         string      `json:"notes,omitempty"`
}

// FromStockItem creates response DTO from domain entity.
func FromStockItem(item *stock.Item) *StockItemResponse {
	return &StockItemResponse{
		BaseResponse:  FromBaseCatalog(item.BaseCatalog),
		ProductName:   item.ProductName,
		ProductCode:   item.ProductCode,
		Category:      item.Category,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		TotalValue:    item.TotalValue,
		SupplierName:  item.SupplierName,
		Location:      item.Location,
		MinStockLevel: item.MinStockLevel,
		MaxStockLevel: item.MaxStockLevel,
		Status:        item.Status,
		Notes:         item.Notes,
	}
}

// FromStockItems maps a list of ledger rows to responses.
func FromStockItems(items []*stock.Item) []*StockItemResponse {
	out := make([]*StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromStockItem(item))
	}
	return out
}
