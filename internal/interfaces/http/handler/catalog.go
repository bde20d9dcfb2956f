package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/prodstock/backend/internal/application/catalog"
)

// CatalogHandler handles production house and item catalog endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ===================== House Endpoints =====================

// ListHouses returns a paginated list of production houses
func (h *CatalogHandler) ListHouses(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	houses, total, err := h.catalogService.ListHouses(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, houses, total, filter.Page, filter.PageSize)
}

// GetHouse returns a single house by its canonical code
func (h *CatalogHandler) GetHouse(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "House code is required")
		return
	}

	house, err := h.catalogService.GetHouse(c.Request.Context(), code)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, house)
}

// CreateHouse registers a new production house
func (h *CatalogHandler) CreateHouse(c *gin.Context) {
	var req catalogapp.CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	house, err := h.catalogService.CreateHouse(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, house)
}

// AddAlias registers an alternate identifier for an existing house
func (h *CatalogHandler) AddAlias(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "House code is required")
		return
	}

	var req catalogapp.AddAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	house, err := h.catalogService.AddAlias(c.Request.Context(), code, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, house)
}

// ===================== Item Endpoints =====================

// ListItems returns a paginated list of catalog items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.catalogService.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetItem returns a single item by its key
func (h *CatalogHandler) GetItem(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		h.BadRequest(c, "Item key is required")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// CreateItem registers a new catalog item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}
