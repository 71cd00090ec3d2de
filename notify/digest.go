package notify

import (
	"context"

	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"go.uber.org/zap"
)

// DigestNotifier is the contract with the external email-digest subsystem.
// Delivery is best-effort; callers must not fail an order on notifier
// errors.
type DigestNotifier interface {
	OrderPlaced(ctx context.Context, store models.Store, order *models.Order) error
}

// LogNotifier is the default implementation; it only records that a digest
// notification would have been sent.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderPlaced(_ context.Context, store models.Store, order *models.Order) error {
	n.logger.Info("order digest notification",
		zap.String("store_id", store.ID),
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
	)
	return nil
}
