package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/purse/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Purse/1.0"
)

// Client implements the friends, cards, transfers and session clients
// against the account JSON API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new account API client. A zero timeout uses the default.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// getJSON performs an authenticated GET and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("api request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err)
		return domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("api request error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// LoadFriends returns the user's friends
func (c *Client) LoadFriends(ctx context.Context) ([]domain.Friend, error) {
	var resp FriendsResponse
	if err := c.getJSON(ctx, "/friends", &resp); err != nil {
		return nil, err
	}
	return MapFriends(resp.Friends), nil
}

// LoadCards returns the user's cards
func (c *Client) LoadCards(ctx context.Context) ([]domain.Card, error) {
	var resp CardsResponse
	if err := c.getJSON(ctx, "/cards", &resp); err != nil {
		return nil, err
	}
	return MapCards(resp.Cards), nil
}

// LoadTransfers returns sent and received transfers in API order
func (c *Client) LoadTransfers(ctx context.Context) ([]domain.Transfer, error) {
	var resp TransfersResponse
	if err := c.getJSON(ctx, "/transfers", &resp); err != nil {
		return nil, err
	}
	return MapTransfers(resp.Transfers)
}

// LoadSession returns the signed-in account
func (c *Client) LoadSession(ctx context.Context) (domain.Session, error) {
	var resp MeResponse
	if err := c.getJSON(ctx, "/me", &resp); err != nil {
		return domain.Session{}, err
	}
	return MapSession(resp), nil
}
