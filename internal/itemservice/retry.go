package itemservice

import (
	"context"
	"log/slog"

	"github.com/mmcdole/purse/internal/domain"
)

// Retry re-invokes the same source up to Times extra times.
//
// Every attempt calls the unmodified source: there is no delay, no backoff and
// no state carried between attempts. The result is the first success, or the
// failure of the last attempt. This behaves exactly like Times nested
// Fallbacks whose primary and fallback are both the source.
type Retry struct {
	source domain.ItemService
	times  uint
	logger *slog.Logger
}

// NewRetry wraps source with up to times extra attempts.
// A zero count returns source itself.
func NewRetry(source domain.ItemService, times uint, logger *slog.Logger) domain.ItemService {
	if times == 0 {
		return source
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retry{source: source, times: times, logger: logger}
}

func (s *Retry) LoadItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.source.LoadItems(ctx)
	for remaining := s.times; err != nil && remaining > 0; remaining-- {
		s.logger.Debug("retrying source", "error", err, "remaining", remaining)
		items, err = s.source.LoadItems(ctx)
	}
	if err != nil {
		s.logger.Warn("source failed after retries", "error", err, "attempts", s.times+1)
		return nil, err
	}
	return items, nil
}
