package store

import (
	"context"

	"github.com/mmcdole/purse/internal/domain"
)

// NullCache stores nothing. It backs the Friends screen for accounts that
// are not allowed an offline copy.
type NullCache struct{}

func (NullCache) Save([]domain.Friend) error { return nil }

func (NullCache) Load(context.Context) ([]domain.Friend, error) {
	return nil, domain.ErrCacheDisabled
}
