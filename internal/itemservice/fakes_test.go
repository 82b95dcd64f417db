package itemservice_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mmcdole/purse/internal/domain"
)

var errNetwork = errors.New("network down")

// scriptedService fails its first failures calls, then succeeds
type scriptedService struct {
	mu       sync.Mutex
	failures int
	items    []domain.Item
	calls    int
	errs     []error
}

func (s *scriptedService) LoadItems(context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		err := fmt.Errorf("attempt %d: %w", s.calls, errNetwork)
		s.errs = append(s.errs, err)
		return nil, err
	}
	return s.items, nil
}

// lastErr is the most recent failure handed out
func (s *scriptedService) lastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) == 0 {
		return nil
	}
	return s.errs[len(s.errs)-1]
}

func (s *scriptedService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type friendsClient struct {
	friends []domain.Friend
	err     error
	calls   int
}

func (c *friendsClient) LoadFriends(context.Context) ([]domain.Friend, error) {
	c.calls++
	return c.friends, c.err
}

type cardsClient struct {
	cards []domain.Card
	err   error
}

func (c *cardsClient) LoadCards(context.Context) ([]domain.Card, error) {
	return c.cards, c.err
}

type transfersClient struct {
	transfers []domain.Transfer
	err       error
}

func (c *transfersClient) LoadTransfers(context.Context) ([]domain.Transfer, error) {
	return c.transfers, c.err
}

// memoryCache is a single-slot FriendsCache
type memoryCache struct {
	friends []domain.Friend
	saved   bool
	saveErr error
	loadErr error
	saves   int
}

func (c *memoryCache) Save(friends []domain.Friend) error {
	c.saves++
	if c.saveErr != nil {
		return c.saveErr
	}
	c.friends = append([]domain.Friend(nil), friends...)
	c.saved = true
	return nil
}

func (c *memoryCache) Load(context.Context) ([]domain.Friend, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	if !c.saved {
		return nil, domain.ErrCacheEmpty
	}
	return c.friends, nil
}

func titles(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.TitleText
	}
	return out
}

func details(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.DetailText
	}
	return out
}

func records(items []domain.Item) []domain.Record {
	out := make([]domain.Record, len(items))
	for i, item := range items {
		out[i] = item.Record
	}
	return out
}
