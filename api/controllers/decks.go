package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgrayson/cardkeeper-backend/api/responses"
	"github.com/dgrayson/cardkeeper-backend/api/validators"
	"github.com/dgrayson/cardkeeper-backend/internal/decks"
	pkgerrors "github.com/dgrayson/cardkeeper-backend/pkg/errors"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
)

type importDeckPayload struct {
	URL string `json:"url" validate:"required"`
}

func parseDeckID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid deck id")
	}
	return uint(id), nil
}

// DeckList returns every deck with card counts.
func DeckList(svc *decks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// DeckGet returns one deck.
func DeckGet(svc *decks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseDeckID(r)
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

// DeckImport imports an Archidekt deck and reconciles it against the
// collection.
func DeckImport(imp *decks.Importer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload importDeckPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := imp.Import(ctx, payload.URL)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// DeckDelete removes a deck, keeping its cards in the collection.
func DeckDelete(svc *decks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := parseDeckID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Deck deleted successfully"})
	}
}

// DeckWipe deletes every deck.
func DeckWipe(svc *decks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Wipe(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "All decks deleted successfully"})
	}
}
