package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgrayson/cardkeeper-backend/api/responses"
	"github.com/dgrayson/cardkeeper-backend/api/validators"
	"github.com/dgrayson/cardkeeper-backend/internal/collection"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
)

func parseCardID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid card id")
	}
	return uint(id), nil
}

// CollectionList returns the filtered, sorted collection with totals.
func CollectionList(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params := r.URL.Query()

		secondary := params.Get("secondary_sort")
		if secondary == "" {
			secondary = "name"
		}
		query := collection.Query{
			Search:    params.Get("search"),
			Color:     params.Get("color"),
			Rarity:    params.Get("rarity"),
			Type:      params.Get("type"),
			SortBy:    params.Get("sort"),
			SortOrder: params.Get("order"),
			ThenBy:    secondary,
			ThenOrder: params.Get("secondary_order"),
		}

		resp, err := svc.List(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CardGet returns one card with its deck memberships.
func CardGet(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseCardID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CardAdd looks the card up on Scryfall and adds it to the collection.
func CardAdd(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload collection.AddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, created, err := svc.Add(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		// Merging into an owned printing is an update, not a creation.
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, resp)
	}
}

// CardUpdate applies a partial edit to an owned card.
func CardUpdate(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseCardID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload collection.UpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Update(ctx, id, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CardDelete removes a card from the collection.
func CardDelete(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseCardID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Card deleted successfully"})
	}
}

// PricesRefresh re-fetches every card's prices from Scryfall.
func PricesRefresh(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		result, err := svc.RefreshPrices(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"message":       fmt.Sprintf("Updated prices for %d cards", result.Updated),
			"updated_count": result.Updated,
		})
	}
}

// CollectionStats returns the aggregate statistics payload.
func CollectionStats(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := svc.Stats(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CollectionWipe deletes every card; decks survive without members.
func CollectionWipe(svc *collection.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Wipe(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Collection cleared successfully"})
	}
}
