// Package screen decides which chain of item services backs each list screen.
package screen

import (
	"log/slog"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/itemservice"
	"github.com/mmcdole/purse/internal/store"
)

const (
	friendsRetries   = 2
	transfersRetries = 1
)

// Source labels used for metrics
const (
	SourceFriendsAPI        = "friends_api"
	SourceFriendsCache      = "friends_cache"
	SourceCardsAPI          = "cards_api"
	SourceSentTransfers     = "transfers_sent_api"
	SourceReceivedTransfers = "transfers_received_api"
)

// Selectors receive the record behind a chosen item
type Selectors struct {
	Friend   func(domain.Friend)
	Card     func(domain.Card)
	Transfer func(domain.Transfer)
}

// Deps are the clients and cache a composition draws from.
type Deps struct {
	Friends   domain.FriendsClient
	Cards     domain.CardsClient
	Transfers domain.TransfersClient

	// Cache is the persistent friends cache. Only privileged accounts use it.
	Cache domain.FriendsCache

	Selectors Selectors
	Metrics   *itemservice.Metrics
	Logger    *slog.Logger
}

// Screens holds one ready-to-use item service per list screen
type Screens struct {
	Friends  domain.ItemService
	Cards    domain.ItemService
	Sent     domain.ItemService
	Received domain.ItemService
}

// Compose builds the chains for every screen.
//
//	Friends (privileged)  Fallback(Retry(FriendsAPI(cache), 2), FriendsCache(cache))
//	Friends (standard)    Retry(FriendsAPI(NullCache), 2)
//	Cards                 CardsAPI
//	Sent                  Retry(TransfersAPI(sent, long dates), 1)
//	Received              Retry(TransfersAPI(received, short dates), 1)
//
// The result depends only on privileged and deps.
func Compose(deps Deps, privileged bool) Screens {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sel := deps.Selectors

	return Screens{
		Friends: composeFriends(deps, privileged, logger),
		Cards: itemservice.NewInstrumented(
			itemservice.NewCardsAPI(deps.Cards, sel.Card),
			SourceCardsAPI, deps.Metrics,
		),
		Sent: itemservice.NewRetry(
			itemservice.NewInstrumented(
				itemservice.NewTransfersAPI(deps.Transfers, domain.DirectionSent, true, sel.Transfer),
				SourceSentTransfers, deps.Metrics,
			),
			transfersRetries, logger,
		),
		Received: itemservice.NewRetry(
			itemservice.NewInstrumented(
				itemservice.NewTransfersAPI(deps.Transfers, domain.DirectionReceived, false, sel.Transfer),
				SourceReceivedTransfers, deps.Metrics,
			),
			transfersRetries, logger,
		),
	}
}

func composeFriends(deps Deps, privileged bool, logger *slog.Logger) domain.ItemService {
	if !privileged {
		api := itemservice.NewInstrumented(
			itemservice.NewFriendsAPI(deps.Friends, store.NullCache{}, deps.Selectors.Friend, logger),
			SourceFriendsAPI, deps.Metrics,
		)
		return itemservice.NewRetry(api, friendsRetries, logger)
	}

	api := itemservice.NewInstrumented(
		itemservice.NewFriendsAPI(deps.Friends, deps.Cache, deps.Selectors.Friend, logger),
		SourceFriendsAPI, deps.Metrics,
	)
	cache := itemservice.NewInstrumented(
		itemservice.NewFriendsCache(deps.Cache, deps.Selectors.Friend),
		SourceFriendsCache, deps.Metrics,
	)
	return itemservice.NewFallback(itemservice.NewRetry(api, friendsRetries, logger), cache, logger)
}
