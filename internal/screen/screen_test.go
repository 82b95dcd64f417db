package screen_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/itemservice"
	"github.com/mmcdole/purse/internal/screen"
	"github.com/mmcdole/purse/internal/store"
)

var (
	errOffline = errors.New("offline")

	ana = domain.Friend{ID: "f-ana", Name: "Ana", Phone: "111"}
	bo  = domain.Friend{ID: "f-bo", Name: "Bo", Phone: "222"}
)

// friendsClient fails its first failures calls
type friendsClient struct {
	friends  []domain.Friend
	failures int
	calls    int
}

func (c *friendsClient) LoadFriends(context.Context) ([]domain.Friend, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, errOffline
	}
	return c.friends, nil
}

type cardsClient struct {
	cards []domain.Card
	err   error
	calls int
}

func (c *cardsClient) LoadCards(context.Context) ([]domain.Card, error) {
	c.calls++
	return c.cards, c.err
}

type transfersClient struct {
	transfers []domain.Transfer
	failures  int
	calls     int
}

func (c *transfersClient) LoadTransfers(context.Context) ([]domain.Transfer, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, errOffline
	}
	return c.transfers, nil
}

type sessionClient struct {
	session domain.Session
	err     error
}

func (c sessionClient) LoadSession(context.Context) (domain.Session, error) {
	return c.session, c.err
}

const always = 1 << 30

func newDeps(t *testing.T, friends *friendsClient) (screen.Deps, *store.FriendsStore) {
	t.Helper()
	cache, err := store.NewFriendsStore("", "")
	require.NoError(t, err)
	return screen.Deps{
		Friends:   friends,
		Cards:     &cardsClient{},
		Transfers: &transfersClient{},
		Cache:     cache,
	}, cache
}

func names(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.TitleText
	}
	return out
}

func TestCompose_PrivilegedFriendsFallsBackToCacheAfterRetries(t *testing.T) {
	client := &friendsClient{failures: always}
	deps, cache := newDeps(t, client)
	require.NoError(t, cache.Save([]domain.Friend{ana}))

	items, err := screen.Compose(deps, true).Friends.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, names(items))
	assert.Equal(t, 3, client.calls)
}

func TestCompose_PrivilegedFriendsEmptyCacheIsTerminal(t *testing.T) {
	client := &friendsClient{failures: always}
	deps, _ := newDeps(t, client)

	items, err := screen.Compose(deps, true).Friends.LoadItems(context.Background())
	assert.Nil(t, items)
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)
	assert.Equal(t, 3, client.calls)
}

func TestCompose_PrivilegedFriendsWritesThrough(t *testing.T) {
	client := &friendsClient{friends: []domain.Friend{ana, bo}}
	deps, cache := newDeps(t, client)
	friends := screen.Compose(deps, true).Friends

	items, err := friends.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Bo"}, names(items))

	cached, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Friend{ana, bo}, cached)

	// network goes away: the cached copy is served with identical items
	client.failures = always
	offline, err := friends.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, names(items), names(offline))
	assert.Equal(t, items[1].Record, offline[1].Record)
}

func TestCompose_PrivilegedFriendsRecoversWithinRetries(t *testing.T) {
	client := &friendsClient{failures: 2, friends: []domain.Friend{bo}}
	deps, _ := newDeps(t, client)

	items, err := screen.Compose(deps, true).Friends.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bo"}, names(items))
	assert.Equal(t, 3, client.calls)
}

func TestCompose_StandardFriendsNeverCaches(t *testing.T) {
	client := &friendsClient{friends: []domain.Friend{ana}}
	deps, cache := newDeps(t, client)
	friends := screen.Compose(deps, false).Friends

	_, err := friends.LoadItems(context.Background())
	require.NoError(t, err)

	_, err = cache.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCacheEmpty)

	client.failures = always
	client.calls = 0
	items, err := friends.LoadItems(context.Background())
	assert.Nil(t, items)
	assert.Same(t, errOffline, err)
	assert.Equal(t, 3, client.calls)
}

func TestCompose_CardsHaveNoRetry(t *testing.T) {
	deps, _ := newDeps(t, &friendsClient{})
	cards := &cardsClient{err: errOffline}
	deps.Cards = cards

	_, err := screen.Compose(deps, true).Cards.LoadItems(context.Background())
	assert.Same(t, errOffline, err)
	assert.Equal(t, 1, cards.calls)
}

func TestCompose_TransfersRetryOnce(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	transfers := &transfersClient{
		failures: 1,
		transfers: []domain.Transfer{
			{ID: "t1", Amount: decimal.NewFromInt(5), CurrencyCode: "USD", Description: "Tea", Date: at, Recipient: "Ana", IsSender: true},
			{ID: "t2", Amount: decimal.NewFromInt(9), CurrencyCode: "USD", Description: "Book", Date: at, Sender: "Bo"},
		},
	}
	deps, _ := newDeps(t, &friendsClient{})
	deps.Transfers = transfers
	screens := screen.Compose(deps, false)

	sent, err := screens.Sent.LoadItems(context.Background())
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "Sent to: Ana on March 14, 2026 at 9:30 AM", sent[0].DetailText)
	assert.Equal(t, 2, transfers.calls)

	transfers.calls, transfers.failures = 0, always
	_, err = screens.Received.LoadItems(context.Background())
	assert.Same(t, errOffline, err)
	assert.Equal(t, 2, transfers.calls)
}

func TestCompose_SelectorsReachItems(t *testing.T) {
	deps, _ := newDeps(t, &friendsClient{friends: []domain.Friend{ana, bo}})

	var picked domain.Friend
	deps.Selectors.Friend = func(f domain.Friend) { picked = f }

	items, err := screen.Compose(deps, true).Friends.LoadItems(context.Background())
	require.NoError(t, err)
	items[1].Select()
	assert.Equal(t, bo, picked)
}

func TestCompose_MetricsSeeEveryAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := &friendsClient{failures: always}
	deps, cache := newDeps(t, client)
	deps.Metrics = itemservice.NewMetrics(reg)
	require.NoError(t, cache.Save([]domain.Friend{ana}))

	_, err := screen.Compose(deps, true).Friends.LoadItems(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(deps.Metrics.Loads(), "purse_source_loads_total"))
	assert.InDelta(t, 3, testutil.ToFloat64(deps.Metrics.Loads().WithLabelValues(screen.SourceFriendsAPI, "failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(deps.Metrics.Loads().WithLabelValues(screen.SourceFriendsCache, "success")), 0)
}

func TestResolvePrivileged(t *testing.T) {
	ctx := context.Background()

	assert.True(t, screen.ResolvePrivileged(ctx, sessionClient{session: domain.Session{Username: "ana", Premium: true}}, nil))
	assert.False(t, screen.ResolvePrivileged(ctx, sessionClient{session: domain.Session{Username: "bo"}}, nil))
	assert.False(t, screen.ResolvePrivileged(ctx, sessionClient{err: domain.ErrUnauthorized}, nil))
	assert.False(t, screen.ResolvePrivileged(ctx, nil, nil))
}
