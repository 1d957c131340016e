package decks

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
)

// Repository handles deck persistence and the deck side of the card
// association.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListAll returns every deck.
func (r *Repository) ListAll(ctx context.Context) ([]models.Deck, error) {
	var decks []models.Deck
	if err := r.db.WithContext(ctx).Order("id").Find(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

// FindByID loads one deck; gorm.ErrRecordNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id uint) (models.Deck, error) {
	var deck models.Deck
	if err := r.db.WithContext(ctx).First(&deck, id).Error; err != nil {
		return models.Deck{}, err
	}
	return deck, nil
}

// FindByArchidektID resolves a deck by its upstream identifier; nil when no
// deck has been imported from it yet.
func (r *Repository) FindByArchidektID(ctx context.Context, archidektID string) (*models.Deck, error) {
	var deck models.Deck
	err := r.db.WithContext(ctx).Where("archidekt_id = ?", archidektID).First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// Create inserts a new deck row.
func (r *Repository) Create(ctx context.Context, deck *models.Deck) error {
	return r.db.WithContext(ctx).Create(deck).Error
}

// Save persists every field of an existing deck.
func (r *Repository) Save(ctx context.Context, deck *models.Deck) error {
	return r.db.WithContext(ctx).Save(deck).Error
}

// Delete removes a deck and its associations; the cards stay in the
// collection.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", id).Delete(&models.DeckCard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Deck{}, id).Error
	})
}

// DeleteAll wipes every deck and every association, leaving cards intact.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DeckCard{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Deck{}).Error
	})
}

// ClearAssociations removes every card association for one deck.
func (r *Repository) ClearAssociations(ctx context.Context, deckID uint) error {
	return r.db.WithContext(ctx).Where("deck_id = ?", deckID).Delete(&models.DeckCard{}).Error
}

// Attach links a card to a deck with its in-deck quantity.
func (r *Repository) Attach(ctx context.Context, deckID, cardID uint, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	return r.db.WithContext(ctx).Create(&models.DeckCard{
		DeckID:         deckID,
		CardID:         cardID,
		QuantityInDeck: quantity,
	}).Error
}

// CardCount counts the printings associated with one deck, queried live so
// it stays accurate after imports and deletions.
func (r *Repository) CardCount(ctx context.Context, deckID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DeckCard{}).
		Where("deck_id = ?", deckID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// CardCounts returns association counts for many decks in one query.
func (r *Repository) CardCounts(ctx context.Context, deckIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(deckIDs))
	if len(deckIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DeckID uint  `gorm:"column:deck_id"`
		Count  int64 `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.DeckCard{}).
		Select("deck_id, COUNT(*) AS count").
		Where("deck_id IN ?", deckIDs).
		Group("deck_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.DeckID] = int(row.Count)
	}
	return counts, nil
}
