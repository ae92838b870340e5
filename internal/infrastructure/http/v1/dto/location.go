package dto

import (
	"stockpile/internal/domain/catalogs/location"
)

// --- Request DTOs ---

// CreateLocationRequest is the request body for creating a location.
type CreateLocationRequest struct {
	Name          string `json:"name" binding:"required"`
	ShortCode     string `json:"shortCode"`
	WarehouseName string `json:"warehouseName"`
	Description   string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLocationRequest) ToEntity() *location.Location {
	loc := location.New(r.Name, r.ShortCode)
	loc.WarehouseName = r.WarehouseName
	loc.Description = r.Description
	return loc
}

// UpdateLocationRequest is the request body for updating a location.
type UpdateLocationRequest struct {
	Name          string `json:"name" binding:"required"`
	ShortCode     string `json:"shortCode"`
	WarehouseName string `json:"warehouseName"`
	Description   string `json:"description"`
	Version       int    `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLocationRequest) ApplyTo(loc *location.Location) {
	loc.Name = r.Name
	loc.ShortCode = r.ShortCode
	if r.WarehouseName != loc.WarehouseName {
		loc.WarehouseName = r.WarehouseName
		loc.WarehouseID = nil
	}
	loc.Description = r.Description
	loc.Version = r.Version
}

// --- Response DTOs ---

// LocationResponse is the response body for a location.
type LocationResponse struct {
	BaseResponse
	Name          string `json:"name"`
	ShortCode     string `json:"shortCode,omitempty"`
	WarehouseID   string `json:"warehouseId,omitempty"`
	WarehouseName string `json:"warehouseName,omitempty"`
	Description   string `json:"description,omitempty"`
}

// FromLocation creates response DTO from domain entity.
func FromLocation(loc *location.Location) *LocationResponse {
	resp := &LocationResponse{
		BaseResponse:  FromBaseCatalog(loc.BaseCatalog),
		Name:          loc.Name,
		ShortCode:     loc.ShortCode,
		WarehouseName: loc.WarehouseName,
		Description:   loc.Description,
	}
	if loc.WarehouseID != nil {
		resp.WarehouseID = loc.WarehouseID.String()
	}
	return resp
}
