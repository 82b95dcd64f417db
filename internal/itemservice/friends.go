package itemservice

import (
	"context"
	"log/slog"

	"github.com/mmcdole/purse/internal/domain"
)

// FriendsAPI loads friends from the network and writes every successful
// result through to its cache. Wire it with store.NullCache to disable caching.
type FriendsAPI struct {
	client   domain.FriendsClient
	cache    domain.FriendsCache
	onSelect func(domain.Friend)
	logger   *slog.Logger
}

// NewFriendsAPI creates a friends adaptor.
func NewFriendsAPI(
	client domain.FriendsClient,
	cache domain.FriendsCache,
	onSelect func(domain.Friend),
	logger *slog.Logger,
) *FriendsAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return &FriendsAPI{client: client, cache: cache, onSelect: onSelect, logger: logger}
}

func (s *FriendsAPI) LoadItems(ctx context.Context) ([]domain.Item, error) {
	friends, err := s.client.LoadFriends(ctx)
	if err != nil {
		s.logger.Debug("failed to load friends", "error", err)
		return nil, err
	}

	if err := s.cache.Save(friends); err != nil {
		s.logger.Error("failed to save friends", "error", err)
	}

	s.logger.Debug("loaded friends", "count", len(friends))
	return friendItems(friends, s.onSelect), nil
}

// FriendsCache serves the last cached friends list as an ItemService
type FriendsCache struct {
	cache    domain.FriendsCache
	onSelect func(domain.Friend)
}

// NewFriendsCache creates a cache-read adaptor.
func NewFriendsCache(cache domain.FriendsCache, onSelect func(domain.Friend)) *FriendsCache {
	return &FriendsCache{cache: cache, onSelect: onSelect}
}

func (s *FriendsCache) LoadItems(ctx context.Context) ([]domain.Item, error) {
	friends, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	return friendItems(friends, s.onSelect), nil
}

func friendItems(friends []domain.Friend, onSelect func(domain.Friend)) []domain.Item {
	items := make([]domain.Item, len(friends))
	for i, f := range friends {
		items[i] = domain.NewItem(f.Name, f.Phone, f, onSelect)
	}
	return items
}
