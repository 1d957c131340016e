package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dgrayson/cardkeeper-backend/pkg/enums"
)

// Card is one inventory line for a specific printing. The pair
// (scryfall_id, foil) is the natural dedup key: repeat adds accumulate
// quantity instead of creating a second row.
type Card struct {
	ID              uint    `gorm:"column:id;primaryKey"`
	ScryfallID      string  `gorm:"column:scryfall_id;size:36;not null;index"`
	Name            string  `gorm:"column:name;size:200;not null;index"`
	SetCode         string  `gorm:"column:set_code;size:10;not null"`
	SetName         string  `gorm:"column:set_name;size:200"`
	CollectorNumber string  `gorm:"column:collector_number;size:20"`
	Rarity          string  `gorm:"column:rarity;size:20"`
	ManaCost        string  `gorm:"column:mana_cost;size:50"`
	CMC             float64 `gorm:"column:cmc;default:0"`
	TypeLine        string  `gorm:"column:type_line;size:200"`
	OracleText      string  `gorm:"column:oracle_text"`
	Colors          string  `gorm:"column:colors;size:50"`
	ColorIdentity   string  `gorm:"column:color_identity;size:50"`

	ImageSmall   string `gorm:"column:image_small;size:500"`
	ImageNormal  string `gorm:"column:image_normal;size:500"`
	ImageLarge   string `gorm:"column:image_large;size:500"`
	ImageArtCrop string `gorm:"column:image_art_crop;size:500"`

	// Prices stay strings so absent or unparseable upstream values survive
	// round trips; value math treats them as zero.
	PriceUSD     string    `gorm:"column:price_usd;size:20"`
	PriceUSDFoil string    `gorm:"column:price_usd_foil;size:20"`
	PriceUpdated time.Time `gorm:"column:price_updated"`

	Quantity  int             `gorm:"column:quantity;not null;default:1"`
	Foil      bool            `gorm:"column:foil;not null;default:false"`
	Condition enums.Condition `gorm:"column:condition;size:20;not null;default:NM"`
	Notes     string          `gorm:"column:notes"`

	ScryfallURI string `gorm:"column:scryfall_uri;size:500"`

	AddedDate   time.Time `gorm:"column:added_date;autoCreateTime"`
	UpdatedDate time.Time `gorm:"column:updated_date;autoUpdateTime"`
}

// EffectivePrice returns the price string this copy is valued at: the foil
// price for foil copies when one exists, the non-foil price otherwise.
func (c Card) EffectivePrice() string {
	if c.Foil && c.PriceUSDFoil != "" {
		return c.PriceUSDFoil
	}
	return c.PriceUSD
}

// EffectivePriceValue parses the effective price for numeric comparison.
// The second return is false when the price is absent or unparseable.
func (c Card) EffectivePriceValue() (float64, bool) {
	price := c.EffectivePrice()
	if price == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// TotalValue is quantity times effective price; absent or unparseable prices
// contribute zero.
func (c Card) TotalValue() decimal.Decimal {
	price := c.EffectivePrice()
	if price == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero
	}
	return d.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// ColorList splits the comma-joined colors column into a slice, empty for
// colorless cards.
func (c Card) ColorList() []string {
	return splitColors(c.Colors)
}

// ColorIdentityList splits the comma-joined color identity column.
func (c Card) ColorIdentityList() []string {
	return splitColors(c.ColorIdentity)
}

func splitColors(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}
