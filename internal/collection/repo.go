package collection

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
)

// Repository encapsulates card persistence and the card side of the deck
// association.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a card repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every card in the collection.
func (r *Repository) ListAll(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.WithContext(ctx).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByID loads one card; gorm.ErrRecordNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id uint) (models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		return models.Card{}, err
	}
	return card, nil
}

// FindByPrinting looks a card up by its natural dedup key. Returns nil when
// the printing+foil pair is not in the collection.
func (r *Repository) FindByPrinting(ctx context.Context, scryfallID string, foil bool) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).
		Where("scryfall_id = ? AND foil = ?", scryfallID, foil).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Create inserts a new card row.
func (r *Repository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Save persists every field of an existing card.
func (r *Repository) Save(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// Delete removes a card and its deck associations; deck rows stay.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", id).Delete(&models.DeckCard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Card{}, id).Error
	})
}

// DeckRefs returns the decks one card belongs to.
func (r *Repository) DeckRefs(ctx context.Context, cardID uint) ([]DeckRef, error) {
	var refs []DeckRef
	err := r.db.WithContext(ctx).
		Table("deck_cards").
		Select("decks.id AS id, decks.name AS name").
		Joins("JOIN decks ON decks.id = deck_cards.deck_id").
		Where("deck_cards.card_id = ?", cardID).
		Order("decks.id").
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// DeckRefsByCard returns deck references for many cards in one query.
func (r *Repository) DeckRefsByCard(ctx context.Context, cardIDs []uint) (map[uint][]DeckRef, error) {
	refsByCard := make(map[uint][]DeckRef, len(cardIDs))
	if len(cardIDs) == 0 {
		return refsByCard, nil
	}

	var rows []struct {
		CardID uint   `gorm:"column:card_id"`
		ID     uint   `gorm:"column:id"`
		Name   string `gorm:"column:name"`
	}
	err := r.db.WithContext(ctx).
		Table("deck_cards").
		Select("deck_cards.card_id AS card_id, decks.id AS id, decks.name AS name").
		Joins("JOIN decks ON decks.id = deck_cards.deck_id").
		Where("deck_cards.card_id IN ?", cardIDs).
		Order("decks.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		refsByCard[row.CardID] = append(refsByCard[row.CardID], DeckRef{ID: row.ID, Name: row.Name})
	}
	return refsByCard, nil
}

// DeleteAll wipes every card and every association, leaving decks in place.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DeckCard{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Card{}).Error
	})
}
