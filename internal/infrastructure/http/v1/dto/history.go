package dto

import (
	"encoding/json"
	"time"

	"stockpile/internal/core/types"
	"stockpile/internal/domain/history"
)

// HistoryEntryResponse is the response body for a history entry.
type HistoryEntryResponse struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"`
	Operation        string          `json:"operation"`
	ProductName      string          `json:"productName"`
	ProductCode      string          `json:"productCode,omitempty"`
	Quantity         *int64          `json:"quantity,omitempty"`
	PreviousQuantity *int64          `json:"previousQuantity,omitempty"`
	NewQuantity      *int64          `json:"newQuantity,omitempty"`
	Price            *types.Money    `json:"price,omitempty"`
	RelatedID        string          `json:"relatedId,omitempty"`
	Description      string          `json:"description,omitempty"`
	Snapshot         json.RawMessage `json:"snapshot,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// FromHistoryEntry creates response DTO from domain entry.
// The snapshot is embedded verbatim: it is already JSON.
func FromHistoryEntry(e *history.Entry) *HistoryEntryResponse {
	resp := &HistoryEntryResponse{
		ID:               e.ID.String(),
		Type:             e.Type,
		Operation:        e.Operation,
		ProductName:      e.ProductName,
		ProductCode:      e.ProductCode,
		Quantity:         e.Quantity,
		PreviousQuantity: e.PreviousQuantity,
		NewQuantity:      e.NewQuantity,
		Price:            e.Price,
		Description:      e.Description,
		Snapshot:         json.RawMessage(e.Snapshot),
		CreatedAt:        e.CreatedAt,
	}
	if e.RelatedID != nil {
		resp.RelatedID = e.RelatedID.String()
	}
	return resp
}

// FromHistoryEntries maps a list of entries to responses.
func FromHistoryEntries(entries []*history.Entry) []*HistoryEntryResponse {
	out := make([]*HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromHistoryEntry(e))
	}
	return out
}
