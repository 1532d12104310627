package marketplace

import (
	"context"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/adapter"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/messaging"
)

// publishEvent publishes a market event, logging instead of failing the
// workflow when the broker is unavailable. The ledger and the store are the
// systems of record; events are a downstream notification.
func publishEvent(ctx context.Context, pub messaging.Publisher, clock adapter.Clock, event *domain.MarketEvent) {
	event.EventID = ulid.MustNewDefault(clock.Now()).String()
	event.Timestamp = clock.Now()

	if err := pub.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish market event",
			zap.Error(err),
			zap.String("event_type", string(event.EventType)),
			zap.Uint64("tokenID", event.TokenID),
		)
	}
}
