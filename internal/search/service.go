package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/scryfall"
)

const maxResults = 20

// rank scores reserved for matches better than a bare substring hit.
const (
	rankExact     = 0
	rankPrefix    = 1
	rankWordMatch = 2
	rankSubstring = 3
	rankNoMatch   = 1000
)

// Searcher is the slice of the Scryfall client the search service needs.
type Searcher interface {
	SearchCards(ctx context.Context, query string) ([]scryfall.Card, error)
	Autocomplete(ctx context.Context, query string) ([]string, error)
	AllPrintings(ctx context.Context, cardName string) ([]scryfall.Card, error)
}

// Service provides card discovery: fuzzy name search with relevance
// ranking, autocomplete passthrough and printing enumeration.
type Service struct {
	client Searcher
}

func NewService(client Searcher) *Service {
	return &Service{client: client}
}

// ResultsDTO wraps ranked search results.
type ResultsDTO struct {
	Cards []scryfall.CardInfo `json:"cards"`
}

// SuggestionsDTO wraps autocomplete suggestions.
type SuggestionsDTO struct {
	Suggestions []string `json:"suggestions"`
}

// PrintingsDTO wraps every printing of one card name.
type PrintingsDTO struct {
	Printings []scryfall.CardInfo `json:"printings"`
}

// Search runs a fuzzy name search and returns the top results ordered by
// relevance to the query. An empty query returns no results without calling
// out.
func (s *Service) Search(ctx context.Context, query string) (ResultsDTO, error) {
	results := ResultsDTO{Cards: []scryfall.CardInfo{}}
	if query == "" {
		return results, nil
	}

	// Regex name search matches names more tightly than full-text search.
	cards, err := s.client.SearchCards(ctx, fmt.Sprintf("name:/%s/", query))
	if err != nil {
		return ResultsDTO{}, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "search cards")
	}

	Rank(cards, query)
	if len(cards) > maxResults {
		cards = cards[:maxResults]
	}
	for _, card := range cards {
		results.Cards = append(results.Cards, card.Info())
	}
	return results, nil
}

// Autocomplete returns name suggestions; short queries yield none.
func (s *Service) Autocomplete(ctx context.Context, query string) (SuggestionsDTO, error) {
	suggestions, err := s.client.Autocomplete(ctx, query)
	if err != nil {
		return SuggestionsDTO{}, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "autocomplete")
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return SuggestionsDTO{Suggestions: suggestions}, nil
}

// Printings lists every printing of an exactly named card in release order.
// An empty name returns no printings.
func (s *Service) Printings(ctx context.Context, cardName string) (PrintingsDTO, error) {
	printings := PrintingsDTO{Printings: []scryfall.CardInfo{}}
	if cardName == "" {
		return printings, nil
	}

	cards, err := s.client.AllPrintings(ctx, cardName)
	if err != nil {
		return PrintingsDTO{}, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "list printings")
	}
	for _, card := range cards {
		printings.Printings = append(printings.Printings, card.Info())
	}
	return printings, nil
}

// Rank orders cards by relevance to the query: exact name match first, then
// prefix matches, then whole-word matches, then other substring matches by
// position. The sort is stable so ties keep the upstream order.
func Rank(cards []scryfall.Card, query string) {
	queryLower := strings.ToLower(query)
	sort.SliceStable(cards, func(i, j int) bool {
		return relevanceScore(cards[i].Name, queryLower) < relevanceScore(cards[j].Name, queryLower)
	})
}

func relevanceScore(name, queryLower string) int {
	nameLower := strings.ToLower(name)
	switch {
	case nameLower == queryLower:
		return rankExact
	case strings.HasPrefix(nameLower, queryLower):
		return rankPrefix
	case strings.Contains(" "+nameLower+" ", " "+queryLower+" "):
		return rankWordMatch
	case strings.Contains(nameLower, queryLower):
		return rankSubstring + strings.Index(nameLower, queryLower)
	default:
		return rankNoMatch
	}
}
