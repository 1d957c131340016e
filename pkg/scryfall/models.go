package scryfall

import "strings"

// ImageURIs holds the image variants Scryfall publishes per card or face.
type ImageURIs struct {
	Small   string `json:"small"`
	Normal  string `json:"normal"`
	Large   string `json:"large"`
	ArtCrop string `json:"art_crop"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	ImageURIs *ImageURIs `json:"image_uris"`
}

// Prices carries the USD price strings; nil means Scryfall has no price.
type Prices struct {
	USD     *string `json:"usd"`
	USDFoil *string `json:"usd_foil"`
}

// Card is the raw Scryfall card payload, limited to the fields the
// collection stores.
type Card struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Set             string     `json:"set"`
	SetName         string     `json:"set_name"`
	CollectorNumber string     `json:"collector_number"`
	Rarity          string     `json:"rarity"`
	ManaCost        string     `json:"mana_cost"`
	CMC             float64    `json:"cmc"`
	TypeLine        string     `json:"type_line"`
	OracleText      string     `json:"oracle_text"`
	Colors          []string   `json:"colors"`
	ColorIdentity   []string   `json:"color_identity"`
	ImageURIs       *ImageURIs `json:"image_uris"`
	CardFaces       []CardFace `json:"card_faces"`
	Prices          Prices     `json:"prices"`
	ScryfallURI     string     `json:"scryfall_uri"`
}

type listResponse struct {
	Data []Card `json:"data"`
}

type autocompleteResponse struct {
	Data []string `json:"data"`
}

// CardInfo is the flattened internal card shape.
type CardInfo struct {
	ScryfallID      string  `json:"scryfall_id"`
	Name            string  `json:"name"`
	SetCode         string  `json:"set_code"`
	SetName         string  `json:"set_name"`
	CollectorNumber string  `json:"collector_number"`
	Rarity          string  `json:"rarity"`
	ManaCost        string  `json:"mana_cost"`
	CMC             float64 `json:"cmc"`
	TypeLine        string  `json:"type_line"`
	OracleText      string  `json:"oracle_text"`
	Colors          string  `json:"colors"`
	ColorIdentity   string  `json:"color_identity"`
	ImageSmall      string  `json:"image_small"`
	ImageNormal     string  `json:"image_normal"`
	ImageLarge      string  `json:"image_large"`
	ImageArtCrop    string  `json:"image_art_crop"`
	PriceUSD        string  `json:"price_usd"`
	PriceUSDFoil    string  `json:"price_usd_foil"`
	ScryfallURI     string  `json:"scryfall_uri"`
}

// Info flattens the raw card into the internal shape. Multi-faced cards
// without top-level images borrow the first face's images; the non-foil
// price falls back to the foil price when absent.
func (c Card) Info() CardInfo {
	images := c.ImageURIs
	if images == nil && len(c.CardFaces) > 0 {
		images = c.CardFaces[0].ImageURIs
	}
	if images == nil {
		images = &ImageURIs{}
	}

	usd := stringOrEmpty(c.Prices.USD)
	usdFoil := stringOrEmpty(c.Prices.USDFoil)
	if usd == "" {
		usd = usdFoil
	}

	return CardInfo{
		ScryfallID:      c.ID,
		Name:            c.Name,
		SetCode:         c.Set,
		SetName:         c.SetName,
		CollectorNumber: c.CollectorNumber,
		Rarity:          c.Rarity,
		ManaCost:        c.ManaCost,
		CMC:             c.CMC,
		TypeLine:        c.TypeLine,
		OracleText:      c.OracleText,
		Colors:          strings.Join(c.Colors, ","),
		ColorIdentity:   strings.Join(c.ColorIdentity, ","),
		ImageSmall:      images.Small,
		ImageNormal:     images.Normal,
		ImageLarge:      images.Large,
		ImageArtCrop:    images.ArtCrop,
		PriceUSD:        usd,
		PriceUSDFoil:    usdFoil,
		ScryfallURI:     c.ScryfallURI,
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
