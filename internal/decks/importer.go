package decks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dgrayson/cardkeeper-backend/internal/collection"
	"github.com/dgrayson/cardkeeper-backend/pkg/archidekt"
	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
	"github.com/dgrayson/cardkeeper-backend/pkg/metrics"
	"github.com/dgrayson/cardkeeper-backend/pkg/scryfall"
)

// DeckFetcher is the slice of the Archidekt client the importer needs.
type DeckFetcher interface {
	FetchDeck(ctx context.Context, deckID string) (*archidekt.Deck, error)
}

// PrintingResolver is the slice of the Scryfall client the importer needs.
type PrintingResolver interface {
	GetCardBySetNumber(ctx context.Context, setCode, collectorNumber string) (*scryfall.Card, error)
	GetCardByName(ctx context.Context, name, setCode string) (*scryfall.Card, error)
}

// Importer reconciles an Archidekt deck against the collection: existing
// printings are attached, missing ones are fetched from Scryfall and created,
// and the deck's association set is fully replaced.
type Importer struct {
	db       *gorm.DB
	decks    *Repository
	deckSrc  DeckFetcher
	resolver PrintingResolver
	logger   *logger.Logger
	metrics  *metrics.APIMetrics
}

func NewImporter(db *gorm.DB, decks *Repository, deckSrc DeckFetcher, resolver PrintingResolver, log *logger.Logger, m *metrics.APIMetrics) *Importer {
	return &Importer{
		db:       db,
		decks:    decks,
		deckSrc:  deckSrc,
		resolver: resolver,
		logger:   log,
		metrics:  m,
	}
}

// printingKey dedups entries within one import run.
type printingKey struct {
	scryfallID string
	foil       bool
}

// Import fetches the deck behind an Archidekt URL and rebuilds its card
// associations. All database writes happen in one transaction, so a failure
// mid-rebuild never leaves the deck emptied.
func (i *Importer) Import(ctx context.Context, rawURL string) (ImportResultDTO, error) {
	deckID, err := archidekt.ParseDeckURL(rawURL)
	if err != nil {
		i.metrics.IncDeckImport("invalid_url")
		return ImportResultDTO{}, err
	}

	upstream, err := i.deckSrc.FetchDeck(ctx, deckID)
	if err != nil {
		i.metrics.IncDeckImport("fetch_failed")
		return ImportResultDTO{}, err
	}

	var (
		deck       models.Deck
		cardsAdded int
	)
	err = i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txDecks := i.decks.WithTx(tx)
		txCards := collection.NewRepository(tx)

		resolved, err := i.resolveDeck(ctx, txDecks, deckID, rawURL, upstream)
		if err != nil {
			return err
		}
		deck = *resolved

		deck.Commander = commanderName(upstream.Cards)
		if err := txDecks.Save(ctx, &deck); err != nil {
			return fmt.Errorf("save deck: %w", err)
		}

		cardsAdded, err = i.attachEntries(ctx, txDecks, txCards, deck.ID, upstream.Cards)
		return err
	})
	if err != nil {
		i.metrics.IncDeckImport("failed")
		if typed := pkgerrors.As(err); typed != nil {
			return ImportResultDTO{}, typed
		}
		return ImportResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeImportFailed, err, "import deck")
	}

	count, err := i.decks.CardCount(ctx, deck.ID)
	if err != nil {
		return ImportResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count deck cards")
	}

	i.metrics.IncDeckImport("ok")
	i.logger.Info(i.logger.WithField(ctx, "deck", deck.Name), "deck imported")

	return ImportResultDTO{
		Message: fmt.Sprintf("Successfully imported deck %q with %d cards", deck.Name, cardsAdded),
		Deck:    toDeckDTO(deck, count),
	}, nil
}

// resolveDeck reuses the deck previously imported from this Archidekt id,
// clearing its associations for the rebuild, or creates a fresh one.
func (i *Importer) resolveDeck(ctx context.Context, repo *Repository, archidektID, rawURL string, upstream *archidekt.Deck) (*models.Deck, error) {
	existing, err := repo.FindByArchidektID(ctx, archidektID)
	if err != nil {
		return nil, fmt.Errorf("find deck by archidekt id: %w", err)
	}
	if existing != nil {
		if err := repo.ClearAssociations(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("clear deck associations: %w", err)
		}
		existing.UpdatedDate = time.Now().UTC()
		return existing, nil
	}

	name := upstream.Name
	if name == "" {
		name = "Untitled Deck"
	}
	deck := &models.Deck{
		Name:         name,
		ArchidektID:  &archidektID,
		ArchidektURL: rawURL,
		Format:       upstream.Format.String(),
		Description:  upstream.Description,
	}
	if err := repo.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	return deck, nil
}

// attachEntries walks the upstream card list, resolving each entry to a
// printing and attaching it once. Entries that cannot be resolved are logged
// and skipped rather than failing the import.
func (i *Importer) attachEntries(ctx context.Context, txDecks *Repository, txCards *collection.Repository, deckID uint, entries []archidekt.CardEntry) (int, error) {
	seen := make(map[printingKey]struct{}, len(entries))
	added := 0

	for _, entry := range entries {
		name := entry.Card.OracleCard.Name
		if name == "" {
			continue
		}
		cardCtx := i.logger.WithCard(ctx, name)

		raw := i.resolvePrinting(cardCtx, entry)
		if raw == nil {
			i.logger.Warn(cardCtx, "card not found on scryfall, entry skipped")
			continue
		}

		foil := entry.IsFoil()
		key := printingKey{scryfallID: raw.ID, foil: foil}
		if _, dup := seen[key]; dup {
			continue
		}

		owned, err := txCards.FindByPrinting(ctx, raw.ID, foil)
		if err != nil {
			return 0, fmt.Errorf("find printing in collection: %w", err)
		}
		if owned == nil {
			card := collection.CardFromInfo(raw.Info(), 1, foil)
			if err := txCards.Create(ctx, &card); err != nil {
				return 0, fmt.Errorf("create card %q: %w", name, err)
			}
			owned = &card
		}

		if err := txDecks.Attach(ctx, deckID, owned.ID, entry.Quantity); err != nil {
			return 0, fmt.Errorf("attach card %q: %w", name, err)
		}
		seen[key] = struct{}{}
		added++
	}
	return added, nil
}

// resolvePrinting tries the exact set+collector printing first, falling back
// to a by-name lookup. Lookup failures never abort the import, they just
// leave the entry unresolved.
func (i *Importer) resolvePrinting(ctx context.Context, entry archidekt.CardEntry) *scryfall.Card {
	setCode := strings.ToLower(entry.Card.Edition.EditionCode)
	collectorNumber := entry.Card.CollectorNumber

	if setCode != "" && collectorNumber != "" {
		raw, err := i.resolver.GetCardBySetNumber(ctx, setCode, collectorNumber)
		if err != nil {
			i.logger.Warn(ctx, "exact printing lookup failed, falling back to name")
		} else if raw != nil {
			return raw
		}
	}

	raw, err := i.resolver.GetCardByName(ctx, entry.Card.OracleCard.Name, "")
	if err != nil {
		i.logger.Error(ctx, "by-name lookup failed, entry skipped", err)
		return nil
	}
	return raw
}

// commanderName picks the first entry categorized as Commander, nil when the
// deck has none.
func commanderName(entries []archidekt.CardEntry) *string {
	for _, entry := range entries {
		if entry.IsCommander() && entry.Card.OracleCard.Name != "" {
			name := entry.Card.OracleCard.Name
			return &name
		}
	}
	return nil
}
