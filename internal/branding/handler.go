package branding

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ProfileResponse is the response for GET /branding.
// @Description Current branding profile and its hydration state.
type ProfileResponse struct {
	Profile Profile `json:"profile"`
	State   State   `json:"state" example:"synced"`
}

// RefreshResponse is the response for POST /branding/refresh.
// @Description Acknowledgement that a branding refresh was triggered.
type RefreshResponse struct {
	Status string `json:"status" example:"refreshing"`
}

// Handler provides HTTP handlers for branding endpoints.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a branding Handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers branding routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/branding", h.handleGetBranding)
	mux.HandleFunc("GET /api/v1/branding/theme", h.handleGetTheme)
	mux.HandleFunc("POST /api/v1/branding/refresh", h.handleRefresh)
}

// handleGetBranding returns the current branding profile.
//
//	@Summary		Get branding profile
//	@Description	Returns the current white-label branding profile and whether it has synced with the remote source.
//	@Tags			branding
//	@Produce		json
//	@Success		200	{object}	ProfileResponse	"Current profile"
//	@Router			/branding [get]
func (h *Handler) handleGetBranding(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ProfileResponse{
		Profile: h.store.Profile(),
		State:   h.store.State(),
	})
}

// handleGetTheme returns the currently applied theme state.
//
//	@Summary		Get theme state
//	@Description	Returns the derived theme: CSS custom properties, document title, and dark-mode flag.
//	@Tags			branding
//	@Produce		json
//	@Success		200	{object}	ThemeState	"Current theme state"
//	@Router			/branding/theme [get]
func (h *Handler) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Theme())
}

// handleRefresh triggers an asynchronous fetch from the remote branding
// source. The response does not wait for the fetch to resolve; outcomes
// surface through GET /branding and the metrics.
//
//	@Summary		Refresh branding
//	@Description	Triggers an asynchronous branding fetch from the remote source.
//	@Tags			branding
//	@Produce		json
//	@Success		202	{object}	RefreshResponse	"Refresh triggered"
//	@Router			/branding/refresh [post]
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// Detach from the request context: the fetch outlives this response.
	ctx := context.WithoutCancel(r.Context())
	go h.store.Fetch(ctx)

	writeJSON(w, http.StatusAccepted, RefreshResponse{Status: "refreshing"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
