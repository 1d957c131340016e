package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
)

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.TotalCards)
	assert.Zero(t, stats.UniqueCards)
	assert.Equal(t, "0.00", stats.TotalValue)
	assert.Equal(t, "0.00", stats.AvgPrice)
	assert.Empty(t, stats.RarityCounts)
	assert.Empty(t, stats.ColorComboCounts)
}

func TestComputeStatsQuantityWeighting(t *testing.T) {
	cards := []models.Card{
		{Name: "Lightning Bolt", Rarity: "common", Colors: "R", CMC: 1, TypeLine: "Instant", Quantity: 4, PriceUSD: "1.00"},
		{Name: "Sol Ring", Rarity: "uncommon", Colors: "", CMC: 1, TypeLine: "Artifact", Quantity: 1, PriceUSD: "2.00"},
	}

	stats := ComputeStats(cards)

	assert.Equal(t, 5, stats.TotalCards)
	assert.Equal(t, 2, stats.UniqueCards)
	assert.Equal(t, 4, stats.RarityCounts["common"])
	assert.Equal(t, 1, stats.RarityCounts["uncommon"])
	assert.Equal(t, 4, stats.ColorCounts["R"])
	assert.Equal(t, 1, stats.ColorCounts["C"])
	assert.Equal(t, 5, stats.ManaValueCounts[1])
	assert.Equal(t, "6.00", stats.TotalValue)
	assert.Equal(t, "1.20", stats.AvgPrice)
}

func TestComputeStatsMulticolorCountsEachColor(t *testing.T) {
	cards := []models.Card{
		{Name: "Nicol Bolas", Colors: "U,B,R", Quantity: 2, TypeLine: "Planeswalker"},
	}

	stats := ComputeStats(cards)

	assert.Equal(t, 2, stats.ColorCounts["U"])
	assert.Equal(t, 2, stats.ColorCounts["B"])
	assert.Equal(t, 2, stats.ColorCounts["R"])
	assert.Zero(t, stats.ColorCounts["C"])
}

func TestComputeStatsManaValueTruncates(t *testing.T) {
	cards := []models.Card{
		{Name: "Half Cost", CMC: 2.5, Quantity: 1},
	}

	stats := ComputeStats(cards)
	assert.Equal(t, 1, stats.ManaValueCounts[2])
}

func TestComputeStatsUnknownRarityBucket(t *testing.T) {
	cards := []models.Card{{Name: "Mystery", Quantity: 3}}

	stats := ComputeStats(cards)
	assert.Equal(t, 3, stats.RarityCounts["unknown"])
}

func TestComputeStatsColorCombosSortedAndCapped(t *testing.T) {
	cards := []models.Card{
		{Name: "Gruul One", Colors: "R,G", Quantity: 3},
		{Name: "Gruul Two", Colors: "G,R", Quantity: 2},
		{Name: "Mono Red", Colors: "R", Quantity: 4},
		{Name: "Colorless", Colors: "", Quantity: 4},
	}

	stats := ComputeStats(cards)

	assert.Len(t, stats.ColorComboCounts, 3)
	// Colors join alphabetically, so both Gruul orderings share a bucket.
	assert.Equal(t, ComboCount{Name: "G,R", Count: 5}, stats.ColorComboCounts[0])
	// Equal counts break ties by name: "Colorless" before "R".
	assert.Equal(t, ComboCount{Name: "Colorless", Count: 4}, stats.ColorComboCounts[1])
	assert.Equal(t, ComboCount{Name: "R", Count: 4}, stats.ColorComboCounts[2])
}

func TestComputeStatsTypeLineCountsEachBucket(t *testing.T) {
	cards := []models.Card{
		{Name: "Dryad Arbor", TypeLine: "Land Creature — Forest Dryad", Quantity: 1},
		{Name: "Forest", TypeLine: "Basic Land — Forest", Quantity: 10},
	}

	stats := ComputeStats(cards)

	assert.Equal(t, 11, stats.TypeCounts["Land"])
	assert.Equal(t, 1, stats.TypeCounts["Creature"])
}

func TestComputeStatsAvgSkipsUnpricedCards(t *testing.T) {
	cards := []models.Card{
		{Name: "Priced", Quantity: 2, PriceUSD: "3.00"},
		{Name: "Unpriced", Quantity: 5, PriceUSD: ""},
	}

	stats := ComputeStats(cards)

	assert.Equal(t, "6.00", stats.TotalValue)
	// Average divides by priced quantity only.
	assert.Equal(t, "3.00", stats.AvgPrice)
}

func TestComputeStatsFoilValueUsesFoilPrice(t *testing.T) {
	cards := []models.Card{
		{Name: "Foil Bolt", Quantity: 1, Foil: true, PriceUSD: "1.00", PriceUSDFoil: "4.00"},
	}

	stats := ComputeStats(cards)
	assert.Equal(t, "4.00", stats.TotalValue)
}
