package collection

import (
	"sort"
	"strings"
	"time"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
	"github.com/dgrayson/cardkeeper-backend/pkg/enums"
)

// Query carries the filter and sort parameters for a collection listing.
type Query struct {
	Search    string
	Color     string
	Rarity    string
	Type      string
	SortBy    string
	SortOrder string
	ThenBy    string
	ThenOrder string
}

// Filter applies every non-empty criterion; a card must satisfy all of them.
func Filter(cards []models.Card, q Query) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, card := range cards {
		if !matches(card, q) {
			continue
		}
		out = append(out, card)
	}
	return out
}

func matches(card models.Card, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(card.Name), needle) &&
			!strings.Contains(strings.ToLower(card.TypeLine), needle) &&
			!strings.Contains(strings.ToLower(card.OracleText), needle) {
			return false
		}
	}
	if q.Color != "" {
		if q.Color == string(enums.ColorColorless) {
			if card.Colors != "" {
				return false
			}
		} else if !strings.Contains(card.Colors, q.Color) {
			return false
		}
	}
	if q.Rarity != "" && card.Rarity != q.Rarity {
		return false
	}
	if q.Type != "" && !strings.Contains(strings.ToLower(card.TypeLine), strings.ToLower(q.Type)) {
		return false
	}
	return true
}

// comparator reports ordering between two cards for one sort field:
// negative when a sorts before b ascending, positive after, zero equal.
type comparator func(a, b models.Card) int

var comparators = map[string]comparator{
	"name": func(a, b models.Card) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	"set_name": func(a, b models.Card) int {
		return strings.Compare(strings.ToLower(a.SetName), strings.ToLower(b.SetName))
	},
	"set_code": func(a, b models.Card) int {
		return strings.Compare(strings.ToLower(a.SetCode), strings.ToLower(b.SetCode))
	},
	"collector_number": func(a, b models.Card) int {
		return strings.Compare(a.CollectorNumber, b.CollectorNumber)
	},
	"rarity": func(a, b models.Card) int {
		return enums.RarityOrdinal(a.Rarity) - enums.RarityOrdinal(b.Rarity)
	},
	"mana_cost": func(a, b models.Card) int {
		return strings.Compare(a.ManaCost, b.ManaCost)
	},
	"type_line": func(a, b models.Card) int {
		return strings.Compare(strings.ToLower(a.TypeLine), strings.ToLower(b.TypeLine))
	},
	"condition": func(a, b models.Card) int {
		return strings.Compare(string(a.Condition), string(b.Condition))
	},
	"quantity": func(a, b models.Card) int {
		return a.Quantity - b.Quantity
	},
	"cmc": func(a, b models.Card) int {
		return compareFloat(a.CMC, b.CMC)
	},
	"price_usd": comparePrices,
	"foil": func(a, b models.Card) int {
		return boolOrdinal(a.Foil) - boolOrdinal(b.Foil)
	},
	"added_date": func(a, b models.Card) int {
		return compareTimes(a.AddedDate, b.AddedDate)
	},
	"updated_date": func(a, b models.Card) int {
		return compareTimes(a.UpdatedDate, b.UpdatedDate)
	},
}

// comparePrices orders by effective price; cards with no parseable price
// sort before every priced card ascending.
func comparePrices(a, b models.Card) int {
	av, aok := a.EffectivePriceValue()
	bv, bok := b.EffectivePriceValue()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return compareFloat(av, bv)
	}
}

func boolOrdinal(v bool) int {
	if v {
		return 1
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparatorFor(field string) comparator {
	if cmp, ok := comparators[field]; ok {
		return cmp
	}
	return comparators["name"]
}

// SortCards orders cards by a primary key with an optional secondary key.
// The sort is stable, so equal cards keep their incoming order.
func SortCards(cards []models.Card, q Query) {
	primary := comparatorFor(q.SortBy)
	primaryDesc := strings.EqualFold(q.SortOrder, "desc")

	var secondary comparator
	secondaryDesc := false
	if q.ThenBy != "" {
		secondary = comparatorFor(q.ThenBy)
		secondaryDesc = strings.EqualFold(q.ThenOrder, "desc")
	}

	sort.SliceStable(cards, func(i, j int) bool {
		c := primary(cards[i], cards[j])
		if primaryDesc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		if secondary == nil {
			return false
		}
		c = secondary(cards[i], cards[j])
		if secondaryDesc {
			c = -c
		}
		return c < 0
	})
}
