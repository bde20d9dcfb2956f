package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/catalog"
)

// ===================== Request DTOs =====================

// CreateHouseRequest represents a request to register a production house
type CreateHouseRequest struct {
	Code    string   `json:"code" binding:"required,max=64"`
	Name    string   `json:"name" binding:"required,max=255"`
	Aliases []string `json:"aliases" binding:"omitempty,dive,required,max=64"`
}

// AddAliasRequest represents a request to register a house alias
type AddAliasRequest struct {
	Alias string `json:"alias" binding:"required,max=64"`
}

// CreateItemRequest represents a request to register a catalog item
type CreateItemRequest struct {
	Key         string `json:"key" binding:"required,max=128"`
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Unit        string `json:"unit" binding:"max=32"`
	Scope       string `json:"scope" binding:"required,oneof=GLOBAL HOUSE"`
	HouseCode   string `json:"house_code" binding:"required_if=Scope HOUSE,max=64"`
}

// ListFilter represents pagination options for catalog lists
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// HouseResponse represents a production house in API responses
type HouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Aliases   []string  `json:"aliases"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	DisplayName string    `json:"display_name"`
	Unit        string    `json:"unit"`
	Scope       string    `json:"scope"`
	HouseCode   string    `json:"house_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ===================== Converters =====================

// ToHouseResponse converts a domain house to a response DTO
func ToHouseResponse(h *catalog.ProductionHouse) HouseResponse {
	aliases := h.AliasCodes
	if aliases == nil {
		aliases = []string{}
	}
	return HouseResponse{
		ID:        h.ID,
		Code:      h.Code,
		Name:      h.Name,
		Aliases:   aliases,
		Active:    h.Active,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// ToHouseResponses converts a list of houses
func ToHouseResponses(hs []catalog.ProductionHouse) []HouseResponse {
	responses := make([]HouseResponse, 0, len(hs))
	for i := range hs {
		responses = append(responses, ToHouseResponse(&hs[i]))
	}
	return responses
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Key:         i.Key,
		DisplayName: i.DisplayName,
		Unit:        i.Unit,
		Scope:       string(i.Scope),
		HouseCode:   i.HouseCode,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ToItemResponses converts a list of items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses
}
