package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
	"github.com/naka-gawa/github-profile-stats/internal/usecase"
)

const (
	// ProviderTokenHeader carries the caller's own GitHub token.
	ProviderTokenHeader = "X-Provider-Token"
	// UserIDHeader identifies the signed-in user who owns new snapshots.
	UserIDHeader = "X-User-Id"
)

// statusClientClosedRequest is logged when the caller went away mid-request.
const statusClientClosedRequest = 499

type ApiController struct {
	logger  providers.Logger
	service usecase.AnalysisServiceInterface
	cache   providers.CacheProviderInterface
}

type analyzeResponse struct {
	AnalysisID string `json:"analysisId"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func NewApiController(logger providers.Logger, service usecase.AnalysisServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

// Analyze runs a fresh analysis and returns the id of the stored snapshot.
func (ac *ApiController) Analyze(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		ac.writeError(w, r, &domain.ValidationError{Field: "Username", Reason: "is required"}, "")
		return
	}

	var owner *string
	if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
		owner = &userID
	}

	id, err := ac.service.Analyze(r.Context(), name, r.Header.Get(ProviderTokenHeader), owner)
	if err != nil {
		fallback := "An error occurred while analyzing the profile."
		var persistenceErr *domain.PersistenceError
		if errors.As(err, &persistenceErr) {
			fallback = "Failed to save analysis results."
		}
		ac.writeError(w, r, err, fallback)
		return
	}
	ac.writeJSON(w, r, http.StatusOK, analyzeResponse{AnalysisID: id})
}

// GetAnalysis serves a stored snapshot. Snapshots never change, so hits are served from cache.
func (ac *ApiController) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	cacheKey := "analysis:" + id
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeRaw(w, http.StatusOK, data)
		return
	}

	snapshot, err := ac.service.GetAnalysis(r.Context(), id)
	if err != nil {
		ac.writeError(w, r, err, "An error occurred while loading the analysis.")
		return
	}

	gson, err := json.Marshal(snapshot)
	if err != nil {
		ac.writeError(w, r, err, "An error occurred while loading the analysis.")
		return
	}
	ac.cache.Set(cacheKey, gson)
	writeRaw(w, http.StatusOK, gson)
}

func (ac *ApiController) GetContributions(w http.ResponseWriter, r *http.Request) {
	login := strings.TrimSpace(r.PathValue("login"))
	if login == "" {
		ac.writeError(w, r, &domain.ValidationError{Field: "Username", Reason: "is required"}, "")
		return
	}

	data, err := ac.service.Contributions(r.Context(), login, r.Header.Get(ProviderTokenHeader))
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			ac.writeJSON(w, r, http.StatusNotFound, errorResponse{Message: "User '" + login + "' not found on GitHub."})
			return
		}
		ac.writeError(w, r, err, "An error occurred while fetching contribution data.")
		return
	}
	ac.writeJSON(w, r, http.StatusOK, data)
}

func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := 1
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ac.writeError(w, r, &domain.ValidationError{Field: "page", Reason: "must be a number"}, "")
			return
		}
		page = parsed
	}

	history, err := ac.service.History(r.Context(), query.Get("ownerUserId"), page)
	if err != nil {
		ac.writeError(w, r, err, "An error occurred while loading the history.")
		return
	}
	ac.writeJSON(w, r, http.StatusOK, history)
}

func (ac *ApiController) Compare(w http.ResponseWriter, r *http.Request) {
	comparison, err := ac.service.Compare(r.Context(), r.PathValue("slug"))
	if err != nil {
		ac.writeError(w, r, err, "An error occurred while comparing profiles.")
		return
	}
	ac.writeJSON(w, r, http.StatusOK, comparison)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageFor keeps upstream and storage details out of responses.
func messageFor(err error, fallback string) string {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var configErr *domain.ConfigError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &notFoundErr):
		return err.Error()
	case errors.Is(err, domain.ErrMissingToken):
		return "GitHub token is not configured."
	case errors.As(err, &configErr):
		return "GitHub client is not configured correctly."
	default:
		return fallback
	}
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	logType := providers.GetLogTypeByRequestType(r.Method)

	var configErr *domain.ConfigError
	switch {
	case errors.As(err, &configErr):
		ac.logger.Errorf(logType, "Configuration error on %s %s: %v", r.Method, r.URL.Path, err)
	case status >= http.StatusInternalServerError:
		ac.logger.Errorf(logType, "%s %s failed: %v", r.Method, r.URL.Path, err)
	default:
		ac.logger.Debugf(logType, "%s %s rejected with %d: %v", r.Method, r.URL.Path, status, err)
	}

	ac.writeJSON(w, r, status, errorResponse{Message: messageFor(err, fallback)})
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Failed to encode response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, gson)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
