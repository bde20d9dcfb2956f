package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/interfaces/http/dto"
)

// BaseHandler carries the response helpers shared by all HTTP handlers.
// Every payload goes out in the standard envelope, and every error
// response carries the request ID assigned by the middleware.
type BaseHandler struct{}

// requestID returns the ID the RequestID middleware stamped on the
// request, or the caller-supplied header when the middleware did not run.
func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// writeError emits the error envelope for the given status and code.
func writeError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID(c)))
}

// writeDomainError maps a *shared.DomainError onto its HTTP status and
// reports whether err was one. Wrapped domain errors are unwrapped.
func writeDomainError(c *gin.Context, err error) bool {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	code := dto.NormalizeErrorCode(domainErr.Code)
	writeError(c, dto.GetHTTPStatus(code), code, domainErr.Message)
	return true
}

// Success sends a 200 with the data wrapped in the success envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 with pagination meta alongside the data.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 for a newly recorded resource.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a bare 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error envelope with an explicit status code.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	writeError(c, statusCode, code, message)
}

// ErrorWithCode sends an error envelope, deriving the status from the code.
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	writeError(c, dto.GetHTTPStatus(code), code, message)
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	writeError(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	writeError(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// UnprocessableEntity sends a 422 with a caller-chosen domain code.
func (h *BaseHandler) UnprocessableEntity(c *gin.Context, code, message string) {
	writeError(c, http.StatusUnprocessableEntity, code, message)
}

func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	writeError(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

func (h *BaseHandler) TooManyRequests(c *gin.Context, message string) {
	writeError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited, message)
}

// ValidationError sends a 400 with per-field validation details.
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		requestID(c),
		details,
	))
}

// HandleDomainError maps a domain error to its HTTP response. Anything
// that is not a *shared.DomainError becomes a 500 without leaking the
// underlying message.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	if writeDomainError(c, err) {
		return
	}
	h.InternalError(c, "An unexpected error occurred")
}

// HandleError is the catch-all for service errors. A nil error writes
// nothing, domain errors map to their status, everything else is a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	h.HandleDomainError(c, err)
}
