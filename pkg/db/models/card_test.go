package models

import (
	"testing"
)

func TestEffectivePricePrefersFoilForFoilCopies(t *testing.T) {
	card := Card{PriceUSD: "1.50", PriceUSDFoil: "4.25", Foil: true}
	if got := card.EffectivePrice(); got != "4.25" {
		t.Fatalf("expected foil price, got %q", got)
	}

	card.Foil = false
	if got := card.EffectivePrice(); got != "1.50" {
		t.Fatalf("expected non-foil price, got %q", got)
	}
}

func TestEffectivePriceFoilFallsBackWhenFoilPriceMissing(t *testing.T) {
	card := Card{PriceUSD: "1.50", Foil: true}
	if got := card.EffectivePrice(); got != "1.50" {
		t.Fatalf("expected fallback to non-foil price, got %q", got)
	}
}

func TestTotalValue(t *testing.T) {
	card := Card{PriceUSD: "2.50", Quantity: 4}
	if got := card.TotalValue().StringFixed(2); got != "10.00" {
		t.Fatalf("expected 10.00, got %s", got)
	}
}

func TestTotalValueUnparseablePriceIsZero(t *testing.T) {
	for _, price := range []string{"", "n/a", "1,50"} {
		card := Card{PriceUSD: price, Quantity: 3}
		if !card.TotalValue().IsZero() {
			t.Fatalf("expected zero value for price %q", price)
		}
	}
}

func TestEffectivePriceValueReportsParseFailure(t *testing.T) {
	card := Card{PriceUSD: "garbage"}
	if _, ok := card.EffectivePriceValue(); ok {
		t.Fatal("expected parse failure")
	}

	card.PriceUSD = "0.25"
	value, ok := card.EffectivePriceValue()
	if !ok || value != 0.25 {
		t.Fatalf("expected 0.25, got %v ok=%v", value, ok)
	}
}

func TestColorListSplitsCommaForm(t *testing.T) {
	card := Card{Colors: "W,U"}
	colors := card.ColorList()
	if len(colors) != 2 || colors[0] != "W" || colors[1] != "U" {
		t.Fatalf("unexpected colors %v", colors)
	}

	if got := (Card{}).ColorList(); len(got) != 0 {
		t.Fatalf("expected empty slice for colorless, got %v", got)
	}
}
