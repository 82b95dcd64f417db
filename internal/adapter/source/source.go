package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/purse/internal/adapter"
	"github.com/mmcdole/purse/internal/adapter/source/fixture"
	"github.com/mmcdole/purse/internal/adapter/source/httpapi"
	"github.com/mmcdole/purse/internal/domain"
)

// fixtureURL namespaces the cache of the demo backend
const fixtureURL = "fixture://demo"

// Clients bundles every client a backend must provide.
type Clients struct {
	Friends   domain.FriendsClient
	Cards     domain.CardsClient
	Transfers domain.TransfersClient
	Session   domain.SessionClient

	// URL identifies the backend, e.g. for cache namespacing
	URL string
}

// NewClients creates the clients for the configured backend.
func NewClients(cfg *adapter.Config, logger *slog.Logger) (Clients, error) {
	if cfg == nil {
		return Clients{}, fmt.Errorf("config is nil")
	}

	switch cfg.API.Source {
	case adapter.SourceTypeHTTP:
		if cfg.API.URL == "" {
			return Clients{}, fmt.Errorf("api url is required")
		}
		c := httpapi.NewClient(cfg.API.URL, cfg.API.Token, cfg.API.Timeout, logger)
		return Clients{Friends: c, Cards: c, Transfers: c, Session: c, URL: cfg.API.URL}, nil

	case adapter.SourceTypeFixture, "":
		c := fixture.NewClient(fixture.Options{
			Premium:   cfg.Fixture.Premium,
			FailFirst: cfg.Fixture.FailFirst,
			Offline:   cfg.Fixture.Offline,
		}, time.Now(), logger)
		return Clients{Friends: c, Cards: c, Transfers: c, Session: c, URL: fixtureURL}, nil

	default:
		return Clients{}, fmt.Errorf("unknown api source: %s", cfg.API.Source)
	}
}
