package decks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
)

func TestListDecksWithCardCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), newTestLogger())

	deckA := models.Deck{Name: "Burn"}
	deckB := models.Deck{Name: "Stax"}
	require.NoError(t, db.Create(&deckA).Error)
	require.NoError(t, db.Create(&deckB).Error)

	card := models.Card{ScryfallID: "bolt-id", Name: "Lightning Bolt", Quantity: 4}
	require.NoError(t, db.Create(&card).Error)
	require.NoError(t, db.Create(&models.DeckCard{DeckID: deckA.ID, CardID: card.ID, QuantityInDeck: 4}).Error)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Decks, 2)
	assert.Equal(t, 1, got.Decks[0].CardCount)
	assert.Zero(t, got.Decks[1].CardCount)
}

func TestGetDeck(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), newTestLogger())

	deck := models.Deck{Name: "Burn"}
	require.NoError(t, db.Create(&deck).Error)

	got, err := svc.Get(context.Background(), deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burn", got.Name)
	assert.NotNil(t, got.CreatedDate)
}

func TestGetDeckNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), newTestLogger())

	_, err := svc.Get(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteDeckKeepsCards(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), newTestLogger())

	deck := models.Deck{Name: "Burn"}
	require.NoError(t, db.Create(&deck).Error)
	card := models.Card{ScryfallID: "bolt-id", Name: "Lightning Bolt", Quantity: 4}
	require.NoError(t, db.Create(&card).Error)
	require.NoError(t, db.Create(&models.DeckCard{DeckID: deck.ID, CardID: card.ID, QuantityInDeck: 4}).Error)

	require.NoError(t, svc.Delete(context.Background(), deck.ID))

	var deckCount, assocCount, cardCount int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&deckCount).Error)
	require.NoError(t, db.Model(&models.DeckCard{}).Count(&assocCount).Error)
	require.NoError(t, db.Model(&models.Card{}).Count(&cardCount).Error)
	assert.Zero(t, deckCount)
	assert.Zero(t, assocCount)
	assert.EqualValues(t, 1, cardCount, "cards stay in the collection")
}

func TestDeleteDeckNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), newTestLogger())

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestWipeDecks(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), newTestLogger())

	deck := models.Deck{Name: "Burn"}
	require.NoError(t, db.Create(&deck).Error)
	card := models.Card{ScryfallID: "bolt-id", Name: "Lightning Bolt", Quantity: 4}
	require.NoError(t, db.Create(&card).Error)
	require.NoError(t, db.Create(&models.DeckCard{DeckID: deck.ID, CardID: card.ID, QuantityInDeck: 4}).Error)

	require.NoError(t, svc.Wipe(context.Background()))

	var deckCount, cardCount int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&deckCount).Error)
	require.NoError(t, db.Model(&models.Card{}).Count(&cardCount).Error)
	assert.Zero(t, deckCount)
	assert.EqualValues(t, 1, cardCount)
}
