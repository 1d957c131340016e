package collection

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
	"github.com/dgrayson/cardkeeper-backend/pkg/enums"
)

// typeBuckets are the card type substrings the type breakdown counts. A card
// whose type line holds several of them counts once in each.
var typeBuckets = []string{
	"Creature",
	"Instant",
	"Sorcery",
	"Enchantment",
	"Artifact",
	"Planeswalker",
	"Land",
	"Battle",
}

const topComboCount = 10

// ComputeStats aggregates the whole collection. Every count is weighted by
// quantity: four copies of one card count four times.
func ComputeStats(cards []models.Card) StatsDTO {
	stats := StatsDTO{
		UniqueCards:     len(cards),
		RarityCounts:    map[string]int{},
		ColorCounts:     map[string]int{},
		ManaValueCounts: map[int]int{},
		TypeCounts:      map[string]int{},
	}

	totalValue := decimal.Zero
	comboCounts := map[string]int{}
	pricedQuantity := 0

	for _, card := range cards {
		qty := card.Quantity
		stats.TotalCards += qty

		rarity := card.Rarity
		if rarity == "" {
			rarity = "unknown"
		}
		stats.RarityCounts[rarity] += qty

		colors := card.ColorList()
		if len(colors) == 0 {
			stats.ColorCounts[string(enums.ColorColorless)] += qty
		} else {
			for _, color := range colors {
				if isColorBucket(color) {
					stats.ColorCounts[color] += qty
				}
			}
		}

		stats.ManaValueCounts[int(card.CMC)] += qty

		comboCounts[comboKey(colors)] += qty

		typeLine := strings.ToLower(card.TypeLine)
		for _, bucket := range typeBuckets {
			if strings.Contains(typeLine, strings.ToLower(bucket)) {
				stats.TypeCounts[bucket] += qty
			}
		}

		value := card.TotalValue()
		totalValue = totalValue.Add(value)
		if value.IsPositive() {
			pricedQuantity += qty
		}
	}

	stats.TotalValue = totalValue.StringFixed(2)
	if pricedQuantity > 0 {
		stats.AvgPrice = totalValue.Div(decimal.NewFromInt(int64(pricedQuantity))).StringFixed(2)
	} else {
		stats.AvgPrice = "0.00"
	}
	stats.ColorComboCounts = topCombos(comboCounts)

	return stats
}

// comboKey joins a card's colors alphabetically so {"G","W"} and {"W","G"}
// land in the same bucket. Cards with no colors share the "Colorless" bucket.
func comboKey(colors []string) string {
	if len(colors) == 0 {
		return "Colorless"
	}
	sorted := make([]string, len(colors))
	copy(sorted, colors)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func isColorBucket(color string) bool {
	for _, bucket := range enums.ColorBuckets {
		if string(bucket) == color {
			return true
		}
	}
	return false
}

// topCombos returns the ten most common color combinations, ties broken by
// combo name so the order is deterministic.
func topCombos(counts map[string]int) []ComboCount {
	combos := make([]ComboCount, 0, len(counts))
	for name, count := range counts {
		combos = append(combos, ComboCount{Name: name, Count: count})
	}
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].Count != combos[j].Count {
			return combos[i].Count > combos[j].Count
		}
		return combos[i].Name < combos[j].Name
	})
	if len(combos) > topComboCount {
		combos = combos[:topComboCount]
	}
	return combos
}
