package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	stockapp "github.com/prodstock/backend/internal/application/stock"
)

// StockHandler handles derived stock statement endpoints
type StockHandler struct {
	BaseHandler
	stockService *stockapp.StockQueryService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *stockapp.StockQueryService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// GetStock computes the current stock statement for a house. The :code
// segment accepts the canonical code or any registered alias; unknown
// references still produce a statement, flagged as unresolved.
func (h *StockHandler) GetStock(c *gin.Context) {
	houseRef := c.Param("code")
	if houseRef == "" {
		h.BadRequest(c, "House reference is required")
		return
	}

	var query stockapp.StockQuery
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		asOf, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			h.BadRequest(c, "Invalid as_of value, expected RFC3339 timestamp")
			return
		}
		query.AsOf = &asOf
	}

	statement, err := h.stockService.GetStock(c.Request.Context(), houseRef, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}
