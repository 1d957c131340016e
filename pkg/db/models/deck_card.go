package models

// DeckCard joins cards to decks. It is managed explicitly rather than through
// a many2many association so deck card counts stay live queries and re-import
// can replace the whole set in one delete.
type DeckCard struct {
	CardID         uint `gorm:"column:card_id;primaryKey"`
	DeckID         uint `gorm:"column:deck_id;primaryKey"`
	QuantityInDeck int  `gorm:"column:quantity_in_deck;not null;default:1"`
}

// TableName keeps the historical join table name.
func (DeckCard) TableName() string {
	return "deck_cards"
}
