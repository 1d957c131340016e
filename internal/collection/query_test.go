package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
)

func sampleCards() []models.Card {
	return []models.Card{
		{ID: 1, Name: "Lightning Bolt", TypeLine: "Instant", OracleText: "Lightning Bolt deals 3 damage to any target.", Colors: "R", Rarity: "common", CMC: 1, Quantity: 4, PriceUSD: "1.50", SetName: "Magic 2010"},
		{ID: 2, Name: "Sol Ring", TypeLine: "Artifact", OracleText: "Add two colorless mana.", Colors: "", Rarity: "uncommon", CMC: 1, Quantity: 1, PriceUSD: "2.25", SetName: "Commander 2021"},
		{ID: 3, Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid", OracleText: "Add one green mana.", Colors: "G", Rarity: "common", CMC: 1, Quantity: 2, PriceUSD: "0.25", SetName: "Dominaria"},
		{ID: 4, Name: "Wrath of God", TypeLine: "Sorcery", OracleText: "Destroy all creatures.", Colors: "W", Rarity: "rare", CMC: 4, Quantity: 1, PriceUSD: "", SetName: "Tenth Edition"},
		{ID: 5, Name: "Nicol Bolas, Dragon-God", TypeLine: "Legendary Planeswalker — Bolas", OracleText: "", Colors: "U,B,R", Rarity: "mythic", CMC: 4, Quantity: 1, PriceUSD: "8.00", SetName: "War of the Spark"},
	}
}

func cardNames(cards []models.Card) []string {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names
}

func TestFilterSearchMatchesNameTypeAndText(t *testing.T) {
	cards := sampleCards()

	assert.Equal(t, []string{"Lightning Bolt"}, cardNames(Filter(cards, Query{Search: "bolt"})))
	assert.Equal(t, []string{"Llanowar Elves"}, cardNames(Filter(cards, Query{Search: "druid"})))
	assert.Equal(t, []string{"Wrath of God"}, cardNames(Filter(cards, Query{Search: "destroy all"})))
}

func TestFilterColor(t *testing.T) {
	cards := sampleCards()

	assert.Equal(t, []string{"Lightning Bolt", "Nicol Bolas, Dragon-God"}, cardNames(Filter(cards, Query{Color: "R"})))
	// "C" selects cards with no colors at all.
	assert.Equal(t, []string{"Sol Ring"}, cardNames(Filter(cards, Query{Color: "C"})))
}

func TestFilterRarityAndType(t *testing.T) {
	cards := sampleCards()

	assert.Equal(t, []string{"Lightning Bolt", "Llanowar Elves"}, cardNames(Filter(cards, Query{Rarity: "common"})))
	assert.Equal(t, []string{"Llanowar Elves"}, cardNames(Filter(cards, Query{Type: "creature"})))
}

func TestFilterCombinesCriteria(t *testing.T) {
	cards := sampleCards()

	got := Filter(cards, Query{Search: "add", Color: "G"})
	assert.Equal(t, []string{"Llanowar Elves"}, cardNames(got))

	assert.Empty(t, Filter(cards, Query{Search: "add", Rarity: "mythic"}))
}

func TestSortByNameDefault(t *testing.T) {
	cards := sampleCards()

	SortCards(cards, Query{})
	assert.Equal(t, []string{
		"Lightning Bolt",
		"Llanowar Elves",
		"Nicol Bolas, Dragon-God",
		"Sol Ring",
		"Wrath of God",
	}, cardNames(cards))
}

func TestSortUnknownFieldFallsBackToName(t *testing.T) {
	cards := sampleCards()

	SortCards(cards, Query{SortBy: "power_level"})
	assert.Equal(t, "Lightning Bolt", cards[0].Name)
}

func TestSortByStoredScalarFields(t *testing.T) {
	cards := []models.Card{
		{ID: 1, Name: "Wrath of God", SetCode: "zzz", CollectorNumber: "200", ManaCost: "{2}{W}{W}", TypeLine: "Sorcery", Condition: "NM", Foil: true, UpdatedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Llanowar Elves", SetCode: "aaa", CollectorNumber: "100", ManaCost: "{G}", TypeLine: "Creature — Elf Druid", Condition: "HP", Foil: false, UpdatedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	SortCards(cards, Query{SortBy: "set_code"})
	assert.Equal(t, []string{"Llanowar Elves", "Wrath of God"}, cardNames(cards))

	SortCards(cards, Query{SortBy: "collector_number", SortOrder: "desc"})
	assert.Equal(t, "Wrath of God", cards[0].Name)

	SortCards(cards, Query{SortBy: "mana_cost"})
	assert.Equal(t, "Llanowar Elves", cards[1].Name)

	SortCards(cards, Query{SortBy: "type_line"})
	assert.Equal(t, []string{"Llanowar Elves", "Wrath of God"}, cardNames(cards))

	SortCards(cards, Query{SortBy: "condition"})
	assert.Equal(t, "Llanowar Elves", cards[0].Name)

	SortCards(cards, Query{SortBy: "foil"})
	assert.Equal(t, "Llanowar Elves", cards[0].Name)

	SortCards(cards, Query{SortBy: "updated_date", SortOrder: "desc"})
	assert.Equal(t, "Wrath of God", cards[0].Name)
}

func TestSortByRarityDescending(t *testing.T) {
	cards := sampleCards()

	SortCards(cards, Query{SortBy: "rarity", SortOrder: "desc"})
	assert.Equal(t, "mythic", cards[0].Rarity)
	assert.Equal(t, "rare", cards[1].Rarity)
	assert.Equal(t, "uncommon", cards[2].Rarity)
}

func TestSortByPriceTreatsMissingAsLowest(t *testing.T) {
	cards := sampleCards()

	SortCards(cards, Query{SortBy: "price_usd"})
	// Wrath of God has no parseable price and sorts first ascending.
	assert.Equal(t, "Wrath of God", cards[0].Name)
	assert.Equal(t, "Nicol Bolas, Dragon-God", cards[len(cards)-1].Name)

	SortCards(cards, Query{SortBy: "price_usd", SortOrder: "desc"})
	assert.Equal(t, "Nicol Bolas, Dragon-God", cards[0].Name)
	assert.Equal(t, "Wrath of God", cards[len(cards)-1].Name)
}

func TestSortSecondaryKeyBreaksTies(t *testing.T) {
	cards := sampleCards()

	SortCards(cards, Query{SortBy: "cmc", SortOrder: "asc", ThenBy: "name", ThenOrder: "desc"})
	// Three one-drops, reverse-alphabetical within the tie.
	assert.Equal(t, []string{"Sol Ring", "Llanowar Elves", "Lightning Bolt"}, cardNames(cards[:3]))
}

func TestSortFoilUsesFoilPrice(t *testing.T) {
	cards := []models.Card{
		{ID: 1, Name: "A", Foil: true, PriceUSD: "1.00", PriceUSDFoil: "9.00"},
		{ID: 2, Name: "B", Foil: false, PriceUSD: "5.00"},
	}

	SortCards(cards, Query{SortBy: "price_usd", SortOrder: "desc"})
	assert.Equal(t, "A", cards[0].Name)
}

func TestSortByAddedDate(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cards := []models.Card{
		{ID: 1, Name: "Newest", AddedDate: base.Add(48 * time.Hour)},
		{ID: 2, Name: "Oldest", AddedDate: base},
		{ID: 3, Name: "Middle", AddedDate: base.Add(24 * time.Hour)},
	}

	SortCards(cards, Query{SortBy: "added_date", SortOrder: "desc"})
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, cardNames(cards))
}
