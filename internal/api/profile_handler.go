package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/trililingo/trililingo-api/internal/api/shared"
	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/service/prefs"
)

// ProfileHandler handles profile and daily-selection HTTP requests.
type ProfileHandler struct {
	prefsService *prefs.Service
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(prefsService *prefs.Service, logger *slog.Logger) *ProfileHandler {
	if prefsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("prefs service cannot be nil for ProfileHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}
	return &ProfileHandler{
		prefsService: prefsService,
		validate:     validator.New(),
		logger:       logger.With(slog.String("component", "profile_handler")),
	}
}

// GetProfile handles GET /profile requests.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.prefsService.Get(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		TotalXP:           p.TotalXP,
		StreakCount:       p.StreakCount,
		LastStudyEpochDay: p.LastStudyEpochDay,
		ActiveLanguage:    p.ActiveLanguage,
	})
}

// SetLanguage handles PUT /profile/language requests.
func (h *ProfileHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "language is required")
		return
	}

	if err := h.prefsService.SetActiveLanguage(r.Context(), req.Language); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDailySelection handles GET /daily-selection/{language}/{skill}
// requests. A pair with no stored selection yields a disabled empty
// selection, not 404.
func (h *ProfileHandler) GetDailySelection(w http.ResponseWriter, r *http.Request) {
	language, skill, ok := pathLanguageSkill(w, r)
	if !ok {
		return
	}

	sel, err := h.prefsService.GetDailySelection(r.Context(), language, skill)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, dailySelectionResponse(language, skill, sel))
}

// PutDailySelection handles PUT /daily-selection/{language}/{skill}
// requests.
func (h *ProfileHandler) PutDailySelection(w http.ResponseWriter, r *http.Request) {
	language, skill, ok := pathLanguageSkill(w, r)
	if !ok {
		return
	}

	var req DailySelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "item_ids must contain at least one id")
		return
	}

	if err := h.prefsService.SetDailySelection(r.Context(), language, skill, req.Enabled, req.ItemIDs); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	sel, err := h.prefsService.GetDailySelection(r.Context(), language, skill)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, dailySelectionResponse(language, skill, sel))
}

// DeleteDailySelection handles DELETE /daily-selection/{language}/{skill}
// requests.
func (h *ProfileHandler) DeleteDailySelection(w http.ResponseWriter, r *http.Request) {
	language, skill, ok := pathLanguageSkill(w, r)
	if !ok {
		return
	}

	if err := h.prefsService.ClearDailySelection(r.Context(), language, skill); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathLanguageSkill(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	language := chi.URLParam(r, "language")
	skill := chi.URLParam(r, "skill")
	if language == "" || skill == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "language and skill are required")
		return "", "", false
	}
	return language, skill, true
}

func dailySelectionResponse(language, skill string, sel domain.DailySelection) DailySelectionResponse {
	ids := sel.ItemIDs
	if ids == nil {
		ids = []string{}
	}
	return DailySelectionResponse{
		Language:    language,
		Skill:       skill,
		Enabled:     sel.Enabled,
		ItemIDs:     ids,
		UpdatedAtMs: sel.UpdatedAtMs,
		MinSize:     domain.DailySelectionMinSize,
	}
}
