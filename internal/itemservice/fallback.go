package itemservice

import (
	"context"
	"log/slog"

	"github.com/mmcdole/purse/internal/domain"
)

// Fallback masks a failure of primary by loading from fallback once.
// The fallback is only called after primary has returned, never in parallel,
// and its outcome is returned as-is.
type Fallback struct {
	primary  domain.ItemService
	fallback domain.ItemService
	logger   *slog.Logger
}

// NewFallback creates a fallback decorator.
func NewFallback(primary, fallback domain.ItemService, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{primary: primary, fallback: fallback, logger: logger}
}

func (s *Fallback) LoadItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.primary.LoadItems(ctx)
	if err == nil {
		return items, nil
	}

	s.logger.Info("primary source failed, using fallback", "error", err)
	return s.fallback.LoadItems(ctx)
}
