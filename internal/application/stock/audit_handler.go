package stock

import (
	"context"

	"github.com/prodstock/backend/internal/domain/shared"
	"github.com/prodstock/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// RecalibrationAuditHandler logs the recalibration lifecycle.
// Committed snapshots rewrite stock history from their effective day on, so
// every transition is worth an audit trail entry.
type RecalibrationAuditHandler struct {
	logger *zap.Logger
}

// NewRecalibrationAuditHandler creates a new handler for recalibration lifecycle events
func NewRecalibrationAuditHandler(logger *zap.Logger) *RecalibrationAuditHandler {
	return &RecalibrationAuditHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *RecalibrationAuditHandler) EventTypes() []string {
	return []string{
		stock.EventTypeRecalibrationSubmitted,
		stock.EventTypeRecalibrationApproved,
		stock.EventTypeRecalibrationRejected,
	}
}

// Handle writes one audit log line per lifecycle event
func (h *RecalibrationAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *stock.RecalibrationSubmittedEvent:
		h.logger.Info("recalibration submitted",
			zap.String("recalibration_id", e.RecalibrationID.String()),
			zap.String("house_ref", e.HouseRef),
			zap.Time("effective_date", e.EffectiveDate),
			zap.Int("item_count", e.ItemCount),
			zap.String("submitted_by", e.SubmittedBy),
		)
	case *stock.RecalibrationApprovedEvent:
		h.logger.Info("recalibration approved",
			zap.String("recalibration_id", e.RecalibrationID.String()),
			zap.String("house_ref", e.HouseRef),
			zap.Time("effective_date", e.EffectiveDate),
			zap.String("reviewed_by", e.ReviewedBy),
		)
	case *stock.RecalibrationRejectedEvent:
		h.logger.Info("recalibration rejected",
			zap.String("recalibration_id", e.RecalibrationID.String()),
			zap.String("house_ref", e.HouseRef),
			zap.String("reviewed_by", e.ReviewedBy),
			zap.String("reason", e.Reason),
		)
	default:
		h.logger.Warn("unexpected event type in audit handler",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

// Ensure RecalibrationAuditHandler implements shared.EventHandler
var _ shared.EventHandler = (*RecalibrationAuditHandler)(nil)
