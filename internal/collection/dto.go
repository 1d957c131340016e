package collection

import (
	"time"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
)

// DeckRef is the lightweight deck reference embedded in card payloads.
type DeckRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CardDTO is the transport shape of one collection entry. Color columns are
// split back into arrays and timestamps serialize as ISO-8601.
type CardDTO struct {
	ID              uint     `json:"id"`
	ScryfallID      string   `json:"scryfall_id"`
	Name            string   `json:"name"`
	SetCode         string   `json:"set_code"`
	SetName         string   `json:"set_name"`
	CollectorNumber string   `json:"collector_number"`
	Rarity          string   `json:"rarity"`
	ManaCost        string   `json:"mana_cost"`
	CMC             float64  `json:"cmc"`
	TypeLine        string   `json:"type_line"`
	OracleText      string   `json:"oracle_text"`
	Colors          []string `json:"colors"`
	ColorIdentity   []string `json:"color_identity"`

	ImageSmall   string `json:"image_small"`
	ImageNormal  string `json:"image_normal"`
	ImageLarge   string `json:"image_large"`
	ImageArtCrop string `json:"image_art_crop"`

	PriceUSD     string     `json:"price_usd"`
	PriceUSDFoil string     `json:"price_usd_foil"`
	PriceUpdated *time.Time `json:"price_updated"`

	Quantity  int    `json:"quantity"`
	Foil      bool   `json:"foil"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`

	ScryfallURI string `json:"scryfall_uri"`

	AddedDate   *time.Time `json:"added_date"`
	UpdatedDate *time.Time `json:"updated_date"`

	Decks []DeckRef `json:"decks"`
}

// CollectionDTO is the filtered collection view plus its aggregates.
type CollectionDTO struct {
	Cards      []CardDTO `json:"cards"`
	TotalCount int       `json:"total_count"`
	TotalValue string    `json:"total_value"`
}

// ComboCount is one color-identity bucket in the statistics payload, ordered
// by count.
type ComboCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatsDTO aggregates the whole collection.
type StatsDTO struct {
	TotalCards       int            `json:"total_cards"`
	UniqueCards      int            `json:"unique_cards"`
	TotalValue       string         `json:"total_value"`
	AvgPrice         string         `json:"avg_price"`
	RarityCounts     map[string]int `json:"rarity_counts"`
	ColorCounts      map[string]int `json:"color_counts"`
	ManaValueCounts  map[int]int    `json:"mana_value_counts"`
	ColorComboCounts []ComboCount   `json:"color_combo_counts"`
	TypeCounts       map[string]int `json:"type_counts"`
}

func toCardDTO(card models.Card, decks []DeckRef) CardDTO {
	if decks == nil {
		decks = []DeckRef{}
	}
	return CardDTO{
		ID:              card.ID,
		ScryfallID:      card.ScryfallID,
		Name:            card.Name,
		SetCode:         card.SetCode,
		SetName:         card.SetName,
		CollectorNumber: card.CollectorNumber,
		Rarity:          card.Rarity,
		ManaCost:        card.ManaCost,
		CMC:             card.CMC,
		TypeLine:        card.TypeLine,
		OracleText:      card.OracleText,
		Colors:          card.ColorList(),
		ColorIdentity:   card.ColorIdentityList(),
		ImageSmall:      card.ImageSmall,
		ImageNormal:     card.ImageNormal,
		ImageLarge:      card.ImageLarge,
		ImageArtCrop:    card.ImageArtCrop,
		PriceUSD:        card.PriceUSD,
		PriceUSDFoil:    card.PriceUSDFoil,
		PriceUpdated:    timePtr(card.PriceUpdated),
		Quantity:        card.Quantity,
		Foil:            card.Foil,
		Condition:       card.Condition.String(),
		Notes:           card.Notes,
		ScryfallURI:     card.ScryfallURI,
		AddedDate:       timePtr(card.AddedDate),
		UpdatedDate:     timePtr(card.UpdatedDate),
		Decks:           decks,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
