// Package fixture serves built-in demo account data, with optional fault
// injection so retry and fallback behaviour can be seen without a server.
package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmcdole/purse/internal/domain"
)

// namespace keeps demo IDs stable between runs
var namespace = uuid.MustParse("6f1b3f44-2a4e-4c55-9a57-0c1f7d6f2a10")

// Options controls the demo backend
type Options struct {
	Premium bool

	// FailFirst makes each list request fail this many times before succeeding
	FailFirst int

	// Offline makes every list request fail
	Offline bool
}

// Client implements the friends, cards, transfers and session clients
// from in-memory data.
type Client struct {
	opts   Options
	logger *slog.Logger

	mu    sync.Mutex
	calls map[string]int

	friends   []domain.Friend
	cards     []domain.Card
	transfers []domain.Transfer
}

// NewClient creates a demo client anchored at now
func NewClient(opts Options, now time.Time, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		opts:      opts,
		logger:    logger,
		calls:     make(map[string]int),
		friends:   demoFriends(),
		cards:     demoCards(),
		transfers: demoTransfers(now),
	}
}

// attempt records a call to op and decides whether it should fail
func (c *Client) attempt(op string) error {
	c.mu.Lock()
	c.calls[op]++
	n := c.calls[op]
	c.mu.Unlock()

	if c.opts.Offline {
		c.logger.Debug("fixture offline", "op", op, "attempt", n)
		return domain.ErrServerOffline
	}
	if n <= c.opts.FailFirst {
		c.logger.Debug("fixture injected failure", "op", op, "attempt", n)
		return fmt.Errorf("%s attempt %d: %w", op, n, domain.ErrServerOffline)
	}
	return nil
}

// Calls returns how many times op has been requested
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *Client) LoadFriends(ctx context.Context) ([]domain.Friend, error) {
	if err := c.attempt("friends"); err != nil {
		return nil, err
	}
	return append([]domain.Friend(nil), c.friends...), nil
}

func (c *Client) LoadCards(ctx context.Context) ([]domain.Card, error) {
	if err := c.attempt("cards"); err != nil {
		return nil, err
	}
	return append([]domain.Card(nil), c.cards...), nil
}

func (c *Client) LoadTransfers(ctx context.Context) ([]domain.Transfer, error) {
	if err := c.attempt("transfers"); err != nil {
		return nil, err
	}
	return append([]domain.Transfer(nil), c.transfers...), nil
}

// LoadSession always succeeds so that fault injection on the lists can be
// observed on a premium account.
func (c *Client) LoadSession(ctx context.Context) (domain.Session, error) {
	c.mu.Lock()
	c.calls["session"]++
	c.mu.Unlock()
	return domain.Session{Username: "demo", Premium: c.opts.Premium}, nil
}

func id(kind, name string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+name)).String()
}

func demoFriends() []domain.Friend {
	people := []struct{ name, phone string }{
		{"Ana Lima", "+1 555 0100"},
		{"Bo Svensson", "+46 70 555 01 01"},
		{"Chidi Okafor", "+234 803 555 0102"},
		{"Dana Whitfield", "+1 555 0103"},
		{"Emeka Obi", "+44 7700 900104"},
		{"Farah Haddad", "+961 3 555 105"},
	}
	friends := make([]domain.Friend, 0, len(people))
	for _, p := range people {
		friends = append(friends, domain.Friend{ID: id("friend", p.name), Name: p.name, Phone: p.phone})
	}
	return friends
}

func demoCards() []domain.Card {
	return []domain.Card{
		{ID: id("card", "visa"), Number: "4111 1111 1111 1111", Holder: "Demo User"},
		{ID: id("card", "mastercard"), Number: "5500 0000 0000 0004", Holder: "Demo User"},
		{ID: id("card", "amex"), Number: "3782 822463 10005", Holder: "Demo Business"},
	}
}

func demoTransfers(now time.Time) []domain.Transfer {
	day := 24 * time.Hour
	rows := []struct {
		amount, currency, description, counterparty string
		ago                                         time.Duration
		sent                                        bool
	}{
		{"12.50", "USD", "Lunch", "Bo Svensson", 1 * day, true},
		{"40.00", "USD", "Concert tickets", "Ana Lima", 2 * day, false},
		{"3.99", "EUR", "Coffee", "Farah Haddad", 3 * day, true},
		{"250.00", "GBP", "Flat deposit share", "Emeka Obi", 5 * day, false},
		{"18.75", "USD", "Taxi", "Dana Whitfield", 8 * day, true},
		{"1200", "JPY", "Ramen", "Chidi Okafor", 13 * day, false},
	}

	transfers := make([]domain.Transfer, 0, len(rows))
	for i, r := range rows {
		t := domain.Transfer{
			ID:           id("transfer", fmt.Sprintf("%d-%s", i, r.description)),
			Amount:       decimal.RequireFromString(r.amount),
			CurrencyCode: r.currency,
			Description:  r.description,
			Date:         now.Add(-r.ago).Truncate(time.Minute),
			IsSender:     r.sent,
		}
		if r.sent {
			t.Sender, t.Recipient = "Demo User", r.counterparty
		} else {
			t.Sender, t.Recipient = r.counterparty, "Demo User"
		}
		transfers = append(transfers, t)
	}
	return transfers
}
