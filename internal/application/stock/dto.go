package stock

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// ===================== Request DTOs =====================

// StockQuery represents the parameters of a stock computation
type StockQuery struct {
	AsOf *time.Time `form:"as_of"` // Optional, defaults to now
}

// SubmitRecalibrationRequest represents a request to submit a physical count
type SubmitRecalibrationRequest struct {
	EffectiveDate time.Time                  `json:"effective_date" binding:"required"`
	Items         map[string]decimal.Decimal `json:"items" binding:"required,min=1"`
	SubmittedBy   string                     `json:"submitted_by" binding:"required"`
}

// ReviewRecalibrationRequest represents an approve/reject decision
type ReviewRecalibrationRequest struct {
	ReviewedBy string `json:"reviewed_by" binding:"required"`
	Note       string `json:"note" binding:"max=500"`
}

// RecalibrationListFilter represents filter options for recalibration lists
type RecalibrationListFilter struct {
	Status   *stock.RecalibrationStatus `form:"status"`
	Page     int                        `form:"page" binding:"omitempty,min=1"`
	PageSize int                        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string                     `form:"order_by"`
	OrderDir string                     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// StockLineResponse represents one derived stock line in API responses
type StockLineResponse struct {
	ItemKey   string          `json:"item_key"`
	Opening   decimal.Decimal `json:"opening"`
	Produced  decimal.Decimal `json:"produced"`
	Delivered decimal.Decimal `json:"delivered"`
	Quantity  decimal.Decimal `json:"quantity"`
	Flag      string          `json:"flag"`
}

// StockStatementResponse represents a derived stock position in API responses
type StockStatementResponse struct {
	HouseRef        string                     `json:"house_ref"`
	HouseCode       string                     `json:"house_code"`
	HouseResolved   bool                       `json:"house_resolved"`
	AsOf            time.Time                  `json:"as_of"`
	PeriodStart     time.Time                  `json:"period_start"`
	PeriodEnd       time.Time                  `json:"period_end"`
	Anchor          string                     `json:"anchor"`
	AnchorID        string                     `json:"anchor_id,omitempty"`
	Lines           []StockLineResponse        `json:"lines"`
	PeriodProduced  map[string]decimal.Decimal `json:"period_produced"`
	PeriodDelivered map[string]decimal.Decimal `json:"period_delivered"`
}

// RecalibrationResponse represents a recalibration snapshot in API responses
type RecalibrationResponse struct {
	ID            uuid.UUID                  `json:"id"`
	HouseRef      string                     `json:"house_ref"`
	EffectiveDate time.Time                  `json:"effective_date"`
	Status        string                     `json:"status"`
	Lines         map[string]decimal.Decimal `json:"lines"`
	SubmittedBy   string                     `json:"submitted_by"`
	ReviewedBy    string                     `json:"reviewed_by,omitempty"`
	ReviewNote    string                     `json:"review_note,omitempty"`
	ReviewedAt    *time.Time                 `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// ===================== Converters =====================

// ToStockStatementResponse converts a domain statement to a response DTO.
// Lines come out sorted by item key so responses are stable across calls.
func ToStockStatementResponse(stmt *stock.StockStatement) StockStatementResponse {
	lines := make([]StockLineResponse, 0, len(stmt.Lines))
	for key, line := range stmt.Lines {
		lines = append(lines, StockLineResponse{
			ItemKey:   key,
			Opening:   line.Opening,
			Produced:  line.Produced,
			Delivered: line.Delivered,
			Quantity:  line.Quantity,
			Flag:      string(line.Flag),
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemKey < lines[j].ItemKey })

	return StockStatementResponse{
		HouseRef:        stmt.HouseRef,
		HouseCode:       stmt.HouseCode,
		HouseResolved:   stmt.HouseResolved,
		AsOf:            stmt.AsOf,
		PeriodStart:     stmt.Period.Start,
		PeriodEnd:       stmt.Period.End,
		Anchor:          string(stmt.Anchor),
		AnchorID:        stmt.AnchorID,
		Lines:           lines,
		PeriodProduced:  stmt.PeriodProduced,
		PeriodDelivered: stmt.PeriodDelivered,
	}
}

// ToRecalibrationResponse converts a domain recalibration to a response DTO
func ToRecalibrationResponse(r *stock.Recalibration) RecalibrationResponse {
	return RecalibrationResponse{
		ID:            r.ID,
		HouseRef:      r.HouseRef,
		EffectiveDate: r.EffectiveDate,
		Status:        r.Status.String(),
		Lines:         r.Lines,
		SubmittedBy:   r.SubmittedBy,
		ReviewedBy:    r.ReviewedBy,
		ReviewNote:    r.ReviewNote,
		ReviewedAt:    r.ReviewedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToRecalibrationResponses converts a list of recalibrations
func ToRecalibrationResponses(rs []stock.Recalibration) []RecalibrationResponse {
	responses := make([]RecalibrationResponse, 0, len(rs))
	for i := range rs {
		responses = append(responses, ToRecalibrationResponse(&rs[i]))
	}
	return responses
}
