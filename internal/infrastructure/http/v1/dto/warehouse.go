package dto

import (
	"stockpile/internal/domain/catalogs/warehouse"
)

// --- Request DTOs ---

// CreateWarehouseRequest is the request body for creating a warehouse.
type CreateWarehouseRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortCode string `json:"shortCode" binding:"required"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	wh := warehouse.New(r.Name, r.ShortCode)
	wh.Address = r.Address
	wh.Notes = r.Notes
	return wh
}

// UpdateWarehouseRequest is the request body for updating a warehouse.
type UpdateWarehouseRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortCode string `json:"shortCode" binding:"required"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	Version   int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWarehouseRequest) ApplyTo(wh *warehouse.Warehouse) {
	wh.Name = r.Name
	wh.ShortCode = r.ShortCode
	wh.Address = r.Address
	wh.Notes = r.Notes
	wh.Version = r.Version
}

// --- Response DTOs ---

// WarehouseResponse is the response body for a warehouse.
type WarehouseResponse struct {
	BaseResponse
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// FromWarehouse creates response DTO from domain entity.
func FromWarehouse(wh *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		BaseResponse: FromBaseCatalog(wh.BaseCatalog),
		Name:         wh.Name,
		ShortCode:    wh.ShortCode,
		Address:      wh.Address,
		Notes:        wh.Notes,
	}
}
