package decks

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
)

// Service covers deck reads and deletion; imports go through the Importer.
type Service struct {
	repo   *Repository
	logger *logger.Logger
}

func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// List returns every deck with live card counts.
func (s *Service) List(ctx context.Context) (DeckListDTO, error) {
	decks, err := s.repo.ListAll(ctx)
	if err != nil {
		return DeckListDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list decks")
	}

	ids := make([]uint, 0, len(decks))
	for _, deck := range decks {
		ids = append(ids, deck.ID)
	}
	counts, err := s.repo.CardCounts(ctx, ids)
	if err != nil {
		return DeckListDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count deck cards")
	}

	dtos := make([]DeckDTO, 0, len(decks))
	for _, deck := range decks {
		dtos = append(dtos, toDeckDTO(deck, counts[deck.ID]))
	}
	return DeckListDTO{Decks: dtos}, nil
}

// Get loads a single deck with its card count.
func (s *Service) Get(ctx context.Context, id uint) (DeckDTO, error) {
	deck, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DeckDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "deck not found")
	}
	if err != nil {
		return DeckDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deck")
	}

	count, err := s.repo.CardCount(ctx, deck.ID)
	if err != nil {
		return DeckDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count deck cards")
	}
	return toDeckDTO(deck, count), nil
}

// Delete removes a deck and its associations; collection cards survive.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "deck not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deck")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete deck")
	}
	return nil
}

// Wipe deletes every deck and association.
func (s *Service) Wipe(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wipe decks")
	}
	s.logger.Info(ctx, "all decks deleted")
	return nil
}
