package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trililingo/trililingo-api/internal/api/shared"
	"github.com/trililingo/trililingo-api/internal/store"
)

// CatalogHandler serves the learnable-item catalog.
type CatalogHandler struct {
	items  store.ItemStore
	logger *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(items store.ItemStore, logger *slog.Logger) *CatalogHandler {
	if items == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("item store cannot be nil for CatalogHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}
	return &CatalogHandler{
		items:  items,
		logger: logger.With(slog.String("component", "catalog_handler")),
	}
}

// GetBySkill handles GET /catalog/{language}/{skill} requests, returning
// the items for a (language, skill) pair in catalog order. An unknown
// pair yields an empty list, not 404.
func (h *CatalogHandler) GetBySkill(w http.ResponseWriter, r *http.Request) {
	language := chi.URLParam(r, "language")
	skill := chi.URLParam(r, "skill")
	if language == "" || skill == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "language and skill are required")
		return
	}

	items, err := h.items.GetBySkill(r.Context(), language, skill)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}
