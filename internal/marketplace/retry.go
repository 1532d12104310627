package marketplace

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/config"
	"github.com/openmotors/car-ledger-api/internal/logger"
)

// retryStore runs a store write with exponential backoff until it succeeds
// or the retry budget is exhausted. It is used only for the store half of a
// workflow whose ledger half is already confirmed, so the operation must be
// idempotent on token_id.
func retryStore(ctx context.Context, cfg config.RetryConfig, op string, tokenID uint64, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	if cfg.MaxElapsedTime > 0 {
		b.MaxElapsedTime = cfg.MaxElapsedTime
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Store write failed after a confirmed ledger write, retrying",
			zap.Error(err),
			zap.String("op", op),
			zap.Uint64("tokenID", tokenID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(fn, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return err
	}

	if attemptCount > 0 {
		logger.InfoCtx(ctx, "Store write succeeded after retries",
			zap.String("op", op),
			zap.Uint64("tokenID", tokenID),
			zap.Int("total_attempts", attemptCount+1),
		)
	}

	return nil
}
