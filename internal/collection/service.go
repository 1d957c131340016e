package collection

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/dgrayson/cardkeeper-backend/pkg/db/models"
	"github.com/dgrayson/cardkeeper-backend/pkg/enums"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
	"github.com/dgrayson/cardkeeper-backend/pkg/metrics"
	"github.com/dgrayson/cardkeeper-backend/pkg/scryfall"
)

// CardFetcher is the slice of the Scryfall client the collection needs.
type CardFetcher interface {
	GetCardByID(ctx context.Context, scryfallID string) (*scryfall.Card, error)
	GetCardByName(ctx context.Context, name, setCode string) (*scryfall.Card, error)
}

// Service owns collection reads and writes: listing with filters, card
// CRUD, price refresh and statistics.
type Service struct {
	repo    *Repository
	fetcher CardFetcher
	logger  *logger.Logger
	metrics *metrics.APIMetrics
}

func NewService(repo *Repository, fetcher CardFetcher, log *logger.Logger, m *metrics.APIMetrics) *Service {
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		logger:  log,
		metrics: m,
	}
}

// AddRequest identifies a printing either by Scryfall ID or by name with an
// optional set pin, plus the copy-specific attributes.
type AddRequest struct {
	ScryfallID string `json:"scryfall_id"`
	Name       string `json:"name"`
	SetCode    string `json:"set_code"`
	Quantity   int    `json:"quantity" validate:"omitempty,gte=1"`
	Foil       bool   `json:"foil"`
	Condition  string `json:"condition"`
	Notes      string `json:"notes"`
}

// UpdateRequest carries a partial card update; nil fields stay untouched.
type UpdateRequest struct {
	Quantity  *int    `json:"quantity" validate:"omitempty,gte=1"`
	Condition *string `json:"condition"`
	Foil      *bool   `json:"foil"`
	Notes     *string `json:"notes"`
}

// List filters and sorts the collection, attaches deck references and sums
// the total value.
func (s *Service) List(ctx context.Context, q Query) (CollectionDTO, error) {
	cards, err := s.repo.ListAll(ctx)
	if err != nil {
		return CollectionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cards")
	}

	cards = Filter(cards, q)
	SortCards(cards, q)

	ids := make([]uint, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}
	refsByCard, err := s.repo.DeckRefsByCard(ctx, ids)
	if err != nil {
		return CollectionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deck references")
	}

	total := decimal.Zero
	dtos := make([]CardDTO, 0, len(cards))
	for _, card := range cards {
		total = total.Add(card.TotalValue())
		dtos = append(dtos, toCardDTO(card, refsByCard[card.ID]))
	}

	return CollectionDTO{
		Cards:      dtos,
		TotalCount: len(dtos),
		TotalValue: total.StringFixed(2),
	}, nil
}

// Get loads one card with its deck references.
func (s *Service) Get(ctx context.Context, id uint) (CardDTO, error) {
	card, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CardDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	if err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load card")
	}

	refs, err := s.repo.DeckRefs(ctx, card.ID)
	if err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deck references")
	}
	return toCardDTO(card, refs), nil
}

// Add resolves the requested printing on Scryfall and inserts it, or bumps
// the quantity when the same printing+foil pair is already owned. The bool
// reports whether a new row was created.
func (s *Service) Add(ctx context.Context, req AddRequest) (CardDTO, bool, error) {
	if req.ScryfallID == "" && req.Name == "" {
		return CardDTO{}, false, pkgerrors.New(pkgerrors.CodeValidation, "scryfall_id or name is required")
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	// When the request names the printing directly, an owned row merges
	// without an outbound lookup, so repeat adds keep working even while
	// Scryfall is unreachable.
	if req.ScryfallID != "" {
		existing, err := s.repo.FindByPrinting(ctx, req.ScryfallID, req.Foil)
		if err != nil {
			return CardDTO{}, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing printing")
		}
		if existing != nil {
			dto, err := s.mergeQuantity(ctx, existing, quantity)
			return dto, false, err
		}
	}

	var (
		raw *scryfall.Card
		err error
	)
	if req.ScryfallID != "" {
		raw, err = s.fetcher.GetCardByID(ctx, req.ScryfallID)
	} else {
		raw, err = s.fetcher.GetCardByName(ctx, req.Name, req.SetCode)
	}
	if err != nil {
		return CardDTO{}, false, err
	}
	if raw == nil {
		return CardDTO{}, false, pkgerrors.New(pkgerrors.CodeNotFound, "Card not found on Scryfall")
	}

	// Name lookups can still resolve to an owned printing.
	existing, err := s.repo.FindByPrinting(ctx, raw.ID, req.Foil)
	if err != nil {
		return CardDTO{}, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing printing")
	}
	if existing != nil {
		dto, err := s.mergeQuantity(ctx, existing, quantity)
		return dto, false, err
	}

	card := CardFromInfo(raw.Info(), quantity, req.Foil)
	if req.Condition != "" {
		cond, err := enums.ParseCondition(req.Condition)
		if err != nil {
			return CardDTO{}, false, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		card.Condition = cond
	}
	card.Notes = req.Notes

	if err := s.repo.Create(ctx, &card); err != nil {
		return CardDTO{}, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert card")
	}
	s.logger.Info(s.logger.WithCard(ctx, card.Name), "card added to collection")
	return toCardDTO(card, nil), true, nil
}

func (s *Service) mergeQuantity(ctx context.Context, existing *models.Card, quantity int) (CardDTO, error) {
	existing.Quantity += quantity
	if err := s.repo.Save(ctx, existing); err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update quantity")
	}
	refs, err := s.repo.DeckRefs(ctx, existing.ID)
	if err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deck references")
	}
	s.logger.Info(s.logger.WithCard(ctx, existing.Name), "quantity incremented for owned printing")
	return toCardDTO(*existing, refs), nil
}

// Update applies a partial edit to an owned card.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (CardDTO, error) {
	card, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CardDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	if err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load card")
	}

	if req.Quantity != nil {
		card.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		cond, err := enums.ParseCondition(*req.Condition)
		if err != nil {
			return CardDTO{}, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		card.Condition = cond
	}
	if req.Foil != nil {
		card.Foil = *req.Foil
	}
	if req.Notes != nil {
		card.Notes = *req.Notes
	}

	if err := s.repo.Save(ctx, &card); err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save card")
	}

	refs, err := s.repo.DeckRefs(ctx, card.ID)
	if err != nil {
		return CardDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deck references")
	}
	return toCardDTO(card, refs), nil
}

// Delete removes a card and its deck memberships.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load card")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete card")
	}
	return nil
}

// RefreshResult summarizes a price refresh run.
type RefreshResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// RefreshPrices re-fetches every card's prices sequentially through the
// rate-limited client. One bad card does not stop the run; failures are
// aggregated and reported alongside the counts.
func (s *Service) RefreshPrices(ctx context.Context) (RefreshResult, error) {
	cards, err := s.repo.ListAll(ctx)
	if err != nil {
		return RefreshResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cards")
	}

	var result RefreshResult
	var errs error
	for i := range cards {
		card := &cards[i]
		cardCtx := s.logger.WithCard(ctx, card.Name)

		raw, err := s.fetcher.GetCardByID(ctx, card.ScryfallID)
		if err != nil {
			s.logger.Error(cardCtx, "price refresh fetch failed", err)
			errs = multierr.Append(errs, err)
			result.Failed++
			continue
		}
		if raw == nil {
			s.logger.Warn(cardCtx, "printing no longer on scryfall, prices kept")
			result.Failed++
			continue
		}

		info := raw.Info()
		card.PriceUSD = info.PriceUSD
		card.PriceUSDFoil = info.PriceUSDFoil
		card.PriceUpdated = time.Now().UTC()
		if err := s.repo.Save(ctx, card); err != nil {
			s.logger.Error(cardCtx, "price refresh save failed", err)
			errs = multierr.Append(errs, err)
			result.Failed++
			continue
		}
		result.Updated++
	}

	s.metrics.AddPriceUpdates(result.Updated)
	if errs != nil {
		s.logger.Warn(ctx, "price refresh finished with failures")
	}
	return result, nil
}

// Stats computes the aggregate collection statistics.
func (s *Service) Stats(ctx context.Context) (StatsDTO, error) {
	cards, err := s.repo.ListAll(ctx)
	if err != nil {
		return StatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cards")
	}
	return ComputeStats(cards), nil
}

// Wipe deletes every card and association.
func (s *Service) Wipe(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "wipe collection")
	}
	s.logger.Info(ctx, "collection wiped")
	return nil
}

// CardFromInfo builds a collection row from a flattened Scryfall card. The
// deck importer shares it so imported and hand-added cards look identical.
func CardFromInfo(info scryfall.CardInfo, quantity int, foil bool) models.Card {
	return models.Card{
		ScryfallID:      info.ScryfallID,
		Name:            info.Name,
		SetCode:         info.SetCode,
		SetName:         info.SetName,
		CollectorNumber: info.CollectorNumber,
		Rarity:          info.Rarity,
		ManaCost:        info.ManaCost,
		CMC:             info.CMC,
		TypeLine:        info.TypeLine,
		OracleText:      info.OracleText,
		Colors:          info.Colors,
		ColorIdentity:   info.ColorIdentity,
		ImageSmall:      info.ImageSmall,
		ImageNormal:     info.ImageNormal,
		ImageLarge:      info.ImageLarge,
		ImageArtCrop:    info.ImageArtCrop,
		PriceUSD:        info.PriceUSD,
		PriceUSDFoil:    info.PriceUSDFoil,
		PriceUpdated:    time.Now().UTC(),
		Quantity:        quantity,
		Foil:            foil,
		Condition:       enums.ConditionNearMint,
		ScryfallURI:     info.ScryfallURI,
	}
}
