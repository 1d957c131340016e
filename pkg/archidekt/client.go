package archidekt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/dgrayson/cardkeeper-backend/pkg/config"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
)

const errorBodyReadLimit int64 = 1024

// Deck URLs look like https://archidekt.com/decks/123456 with optional
// trailing segments.
var deckURLPattern = regexp.MustCompile(`archidekt\.com/decks/(\d+)`)

// ParseDeckURL extracts the numeric deck identifier from a deck URL.
func ParseDeckURL(rawURL string) (string, error) {
	match := deckURLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid Archidekt URL")
	}
	return match[1], nil
}

// Deck is the upstream deck payload, limited to what the import consumes.
type Deck struct {
	Name        string      `json:"name"`
	Format      json.Number `json:"format"`
	Description string      `json:"description"`
	Cards       []CardEntry `json:"cards"`
}

// CardEntry is one line of the upstream deck list.
type CardEntry struct {
	Quantity   int      `json:"quantity"`
	Modifier   string   `json:"modifier"`
	Categories []string `json:"categories"`
	Card       CardRef  `json:"card"`
}

// CardRef points at the exact printing the deck uses.
type CardRef struct {
	CollectorNumber string     `json:"collectorNumber"`
	Edition         Edition    `json:"edition"`
	OracleCard      OracleCard `json:"oracleCard"`
}

// Edition names the set the printing belongs to.
type Edition struct {
	EditionCode string `json:"editioncode"`
}

// OracleCard carries the printing-independent card name.
type OracleCard struct {
	Name string `json:"name"`
}

// IsFoil reports whether the entry is marked as a foil copy.
func (e CardEntry) IsFoil() bool {
	return e.Modifier == "Foil"
}

// IsCommander reports whether the entry is categorized as the deck's
// commander.
func (e CardEntry) IsCommander() bool {
	for _, category := range e.Categories {
		if category == "Commander" {
			return true
		}
	}
	return false
}

// Client fetches decks from the Archidekt API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
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

// NewClient builds an Archidekt client from configuration.
func NewClient(cfg config.ArchidektConfig, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// FetchDeck retrieves deck metadata and the card list for a deck id. Any
// transport failure or non-200 response surfaces as an upstream error.
func (c *Client) FetchDeck(ctx context.Context, deckID string) (*Deck, error) {
	endpoint := fmt.Sprintf("%s/api/decks/%s/", c.baseURL, deckID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "build archidekt request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "fetch deck from Archidekt")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeUpstream,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"fetch deck from Archidekt",
		)
	}

	var deck Deck
	if err := json.NewDecoder(resp.Body).Decode(&deck); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode archidekt response")
	}
	return &deck, nil
}
