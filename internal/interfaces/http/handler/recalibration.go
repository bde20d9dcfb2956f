package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockapp "github.com/prodstock/backend/internal/application/stock"
	"github.com/prodstock/backend/internal/domain/stock"
)

// RecalibrationHandler handles recalibration submission and review endpoints
type RecalibrationHandler struct {
	BaseHandler
	recalibrationService *stockapp.RecalibrationService
}

// NewRecalibrationHandler creates a new RecalibrationHandler
func NewRecalibrationHandler(recalibrationService *stockapp.RecalibrationService) *RecalibrationHandler {
	return &RecalibrationHandler{
		recalibrationService: recalibrationService,
	}
}

// Submit records a new physical count for a house
func (h *RecalibrationHandler) Submit(c *gin.Context) {
	houseRef := c.Param("code")
	if houseRef == "" {
		h.BadRequest(c, "House reference is required")
		return
	}

	var req stockapp.SubmitRecalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.recalibrationService.Submit(c.Request.Context(), houseRef, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// ListByHouse returns recalibrations recorded for a house, including ones
// recorded under any of its aliases
func (h *RecalibrationHandler) ListByHouse(c *gin.Context) {
	houseRef := c.Param("code")
	if houseRef == "" {
		h.BadRequest(c, "House reference is required")
		return
	}

	var filter stockapp.RecalibrationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Parse optional status
	if statusStr := c.Query("status"); statusStr != "" {
		status := stock.RecalibrationStatus(statusStr)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status value")
			return
		}
		filter.Status = &status
	}

	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	results, total, err := h.recalibrationService.ListByHouse(c.Request.Context(), houseRef, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, results, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a single recalibration
func (h *RecalibrationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recalibration ID format")
		return
	}

	result, err := h.recalibrationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve commits a pending recalibration so it becomes a stock anchor
func (h *RecalibrationHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recalibration ID format")
		return
	}

	var req stockapp.ReviewRecalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.recalibrationService.Approve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject declines a pending recalibration
func (h *RecalibrationHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recalibration ID format")
		return
	}

	var req stockapp.ReviewRecalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.recalibrationService.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
