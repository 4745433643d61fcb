// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/trililingo/trililingo-api/internal/api/shared"
	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/platform/logger"
	"github.com/trililingo/trililingo-api/internal/service/study"
)

// defaultSessionListLimit caps GET /sessions when no limit is given.
const defaultSessionListLimit = 20

// StudyHandler handles challenge and session HTTP requests.
type StudyHandler struct {
	studyService *study.Service
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService *study.Service, logger *slog.Logger) *StudyHandler {
	if studyService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("study service cannot be nil for StudyHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}
	return &StudyHandler{
		studyService: studyService,
		validate:     validator.New(),
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// GetChallenges handles GET /challenges?language=&skill=&mode= requests.
// An empty catalog yields an empty challenge list with 200, never an
// error.
func (h *StudyHandler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	language := r.URL.Query().Get("language")
	skill := r.URL.Query().Get("skill")
	if language == "" || skill == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "language and skill are required")
		return
	}
	mode := domain.ParseStudyMode(r.URL.Query().Get("mode"))

	challenges, err := h.studyService.LoadChallenges(r.Context(), language, skill, mode)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("challenges loaded",
		slog.String("language", language),
		slog.String("skill", skill),
		slog.String("mode", string(mode)),
		slog.Int("count", len(challenges)))
	shared.RespondWithJSON(w, r, http.StatusOK, ChallengesResponse{
		Language:   language,
		Skill:      skill,
		Mode:       string(mode),
		Challenges: challenges,
	})
}

// StartSession handles POST /sessions requests.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "language and activity_type are required")
		return
	}

	session, err := h.studyService.StartSession(r.Context(), req.Language, req.ActivityType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// ListSessions handles GET /sessions?limit= requests, newest first.
func (h *StudyHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sessions, err := h.studyService.LatestSessions(r.Context(), limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sessions)
}

// GetSessionAttempts handles GET /sessions/{id}/attempts requests.
func (h *StudyHandler) GetSessionAttempts(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "session id is required")
		return
	}

	attempts, err := h.studyService.AttemptsForSession(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, attempts)
}

// SubmitAttempt handles POST /sessions/{id}/attempts requests.
func (h *StudyHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "session id is required")
		return
	}

	var req SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "item_id is required; response_ms and hint_count must be non-negative")
		return
	}

	result, err := h.studyService.RecordAttempt(r.Context(), study.AttemptInput{
		SessionID:    sessionID,
		ItemID:       req.ItemID,
		ChosenAnswer: req.ChosenAnswer,
		ResponseMs:   req.ResponseMs,
		HintCount:    req.HintCount,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("attempt recorded",
		slog.String("session_id", sessionID),
		slog.String("item_id", req.ItemID),
		slog.Bool("is_correct", result.Evaluation.IsCorrect),
		slog.Int("xp_awarded", result.Attempt.XPAwarded))
	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitAttemptResponse{
		IsCorrect:     result.Evaluation.IsCorrect,
		ToleranceNote: result.Evaluation.ToleranceNote,
		XPAwarded:     result.Attempt.XPAwarded,
		BaseXP:        result.Attempt.BaseXP,
		XPMultiplier:  result.Attempt.XPMultiplier,
		CorrectAnswer: result.Attempt.CorrectAnswer,
		State:         result.State,
	})
}

// FinishSession handles POST /sessions/{id}/finish requests.
func (h *StudyHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	h.finalizeSession(w, r, false)
}

// AbortSession handles POST /sessions/{id}/abort requests.
func (h *StudyHandler) AbortSession(w http.ResponseWriter, r *http.Request) {
	h.finalizeSession(w, r, true)
}

func (h *StudyHandler) finalizeSession(w http.ResponseWriter, r *http.Request, abort bool) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "session id is required")
		return
	}

	var session *domain.StudySession
	var err error
	if abort {
		session, err = h.studyService.AbortSession(r.Context(), sessionID)
	} else {
		session, err = h.studyService.FinishSession(r.Context(), sessionID)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, session)
}
