package controllers

import (
	"net/http"

	"github.com/dgrayson/cardkeeper-backend/api/responses"
	"github.com/dgrayson/cardkeeper-backend/internal/search"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
)

// CardSearch runs a ranked fuzzy name search against Scryfall.
func CardSearch(svc *search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := svc.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Autocomplete proxies Scryfall's name suggestions.
func Autocomplete(svc *search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := svc.Autocomplete(ctx, r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Printings lists every printing of an exactly named card.
func Printings(svc *search.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := svc.Printings(ctx, r.URL.Query().Get("name"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
