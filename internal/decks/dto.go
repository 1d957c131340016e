package decks

import (
	"time"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
)

// DeckDTO is the transport shape of a deck. CardCount is the live number of
// distinct printings associated, not a cached column.
type DeckDTO struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	ArchidektID  *string    `json:"archidekt_id"`
	ArchidektURL string     `json:"archidekt_url"`
	Format       string     `json:"format"`
	Description  string     `json:"description"`
	Commander    *string    `json:"commander"`
	CreatedDate  *time.Time `json:"created_date"`
	UpdatedDate  *time.Time `json:"updated_date"`
	CardCount    int        `json:"card_count"`
}

// DeckListDTO wraps the deck list payload.
type DeckListDTO struct {
	Decks []DeckDTO `json:"decks"`
}

// ImportResultDTO is the import response: the reconciled deck plus a human
// readable summary.
type ImportResultDTO struct {
	Message string  `json:"message"`
	Deck    DeckDTO `json:"deck"`
}

func toDeckDTO(deck models.Deck, cardCount int) DeckDTO {
	return DeckDTO{
		ID:           deck.ID,
		Name:         deck.Name,
		ArchidektID:  deck.ArchidektID,
		ArchidektURL: deck.ArchidektURL,
		Format:       deck.Format,
		Description:  deck.Description,
		Commander:    deck.Commander,
		CreatedDate:  timePtr(deck.CreatedDate),
		UpdatedDate:  timePtr(deck.UpdatedDate),
		CardCount:    cardCount,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
