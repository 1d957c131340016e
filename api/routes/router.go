package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgrayson/cardkeeper-backend/api/controllers"
	"github.com/dgrayson/cardkeeper-backend/api/middleware"
	"github.com/dgrayson/cardkeeper-backend/internal/collection"
	"github.com/dgrayson/cardkeeper-backend/internal/decks"
	"github.com/dgrayson/cardkeeper-backend/internal/search"
	"github.com/dgrayson/cardkeeper-backend/pkg/config"
	"github.com/dgrayson/cardkeeper-backend/pkg/db"
	"github.com/dgrayson/cardkeeper-backend/pkg/logger"
	"github.com/dgrayson/cardkeeper-backend/web"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	collectionSvc *collection.Service,
	searchSvc *search.Service,
	decksSvc *decks.Service,
	importer *decks.Importer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/", web.Index())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/collection", controllers.CollectionList(collectionSvc, logg))
		r.Delete("/collection", controllers.CollectionWipe(collectionSvc, logg))
		r.Get("/stats", controllers.CollectionStats(collectionSvc, logg))
		r.Post("/prices/refresh", controllers.PricesRefresh(collectionSvc, logg))

		r.Post("/card", controllers.CardAdd(collectionSvc, logg))
		r.Route("/card/{id}", func(r chi.Router) {
			r.Get("/", controllers.CardGet(collectionSvc, logg))
			r.Put("/", controllers.CardUpdate(collectionSvc, logg))
			r.Delete("/", controllers.CardDelete(collectionSvc, logg))
		})

		r.Get("/search", controllers.CardSearch(searchSvc, logg))
		r.Get("/autocomplete", controllers.Autocomplete(searchSvc, logg))
		r.Get("/printings", controllers.Printings(searchSvc, logg))

		r.Get("/decks", controllers.DeckList(decksSvc, logg))
		r.Delete("/decks", controllers.DeckWipe(decksSvc, logg))
		r.Post("/deck/import", controllers.DeckImport(importer, logg))
		r.Route("/deck/{id}", func(r chi.Router) {
			r.Get("/", controllers.DeckGet(decksSvc, logg))
			r.Delete("/", controllers.DeckDelete(decksSvc, logg))
		})
	})

	return r
}
