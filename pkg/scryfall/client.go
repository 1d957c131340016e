package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/dgrayson/cardkeeper-backend/pkg/config"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/metrics"
)

const (
	minAutocompleteLength       = 2
	errorBodyReadLimit    int64 = 1024
)

var errNotFound = errors.New("scryfall: not found")

// Client talks to the Scryfall card-data API. Every outbound call waits on a
// shared rate limiter so requests stay at least the configured interval
// apart, as Scryfall asks. There are no retries: a failed call surfaces
// immediately.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
	metrics     *metrics.APIMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics wires lookup counters into the client.
func WithMetrics(m *metrics.APIMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a Scryfall client from configuration.
func NewClient(cfg config.ScryfallConfig, opts ...Option) *Client {
	client := &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// SearchCards runs a full-text card search. A not-found response yields an
// empty slice.
func (c *Client) SearchCards(ctx context.Context, query string) ([]Card, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("unique", "cards")

	var result listResponse
	if err := c.doGet(ctx, "/cards/search", params, &result); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return result.Data, nil
}

// AllPrintings returns every printing of the exactly named card, ordered by
// release date.
func (c *Client) AllPrintings(ctx context.Context, cardName string) ([]Card, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("!%q", cardName))
	params.Set("unique", "prints")
	params.Set("order", "released")

	var result listResponse
	if err := c.doGet(ctx, "/cards/search", params, &result); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return result.Data, nil
}

// GetCardByName fetches a card by exact name, optionally pinned to a set.
func (c *Client) GetCardByName(ctx context.Context, name, setCode string) (*Card, error) {
	params := url.Values{}
	params.Set("exact", name)
	if setCode != "" {
		params.Set("set", setCode)
	}

	var card Card
	if err := c.doGet(ctx, "/cards/named", params, &card); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetCardByID fetches a card by its Scryfall identifier.
func (c *Client) GetCardByID(ctx context.Context, scryfallID string) (*Card, error) {
	var card Card
	if err := c.doGet(ctx, "/cards/"+url.PathEscape(scryfallID), nil, &card); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetCardBySetNumber fetches the exact printing for a set code and collector
// number.
func (c *Client) GetCardBySetNumber(ctx context.Context, setCode, collectorNumber string) (*Card, error) {
	path := fmt.Sprintf("/cards/%s/%s", url.PathEscape(setCode), url.PathEscape(collectorNumber))

	var card Card
	if err := c.doGet(ctx, path, nil, &card); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// Autocomplete returns name suggestions for a partial query. Queries shorter
// than two characters return no suggestions without calling out.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]string, error) {
	if len(query) < minAutocompleteLength {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)

	var result autocompleteResponse
	if err := c.doGet(ctx, "/cards/autocomplete", params, &result); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "rate limiter wait")
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "build scryfall request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncLookup("error")
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "execute scryfall request")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		c.metrics.IncLookup("ok")
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode scryfall response")
		}
		return nil
	case http.StatusNotFound:
		c.metrics.IncLookup("not_found")
		return errNotFound
	default:
		c.metrics.IncLookup("error")
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeUpstream,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"scryfall request failed",
		)
	}
}
