package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/color"
)

var upstreamFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "catalog_stale_serves_total",
	Help: "Total number of catalog responses served from the last good product list after an upstream failure.",
})

func init() {
	prometheus.MustRegister(upstreamFallbacks)
}

// Source provides the raw inputs of a render pass from the remote API.
// Defined here (consumer-side) rather than importing the concrete client.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	PanelNames(ctx context.Context, pt PanelType) ([]PanelName, error)
}

// CardColorProvider supplies the branding base color for card gradients.
type CardColorProvider interface {
	CardColor() string
}

// Section is one rendered display section of the catalog.
// @Description A display section: a labelled panel group with its ordered products.
type Section struct {
	Key        string    `json:"key" example:"xtream-0"`
	Label      string    `json:"label" example:"Server 1"`
	PanelType  PanelType `json:"panel_type" example:"xtream"`
	PanelIndex int       `json:"panel_index" example:"0"`
	Products   []Product `json:"products"`
}

// Response is the render-ready catalog for one filter state.
// @Description The ordered catalog sections plus presentation extras.
type Response struct {
	Sections     []Section   `json:"sections"`
	CardGradient [2]string   `json:"card_gradient"`
	Filter       FilterState `json:"filter"`
	Stale        bool        `json:"stale,omitempty"`
}

// Handler serves the composed catalog.
type Handler struct {
	source Source
	theme  CardColorProvider
	logger *zap.Logger

	mu       sync.RWMutex
	lastGood []Product // last successfully fetched product list
}

// NewHandler creates a catalog Handler.
func NewHandler(source Source, theme CardColorProvider, logger *zap.Logger) *Handler {
	return &Handler{source: source, theme: theme, logger: logger}
}

// RegisterRoutes registers catalog routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/catalog", h.handleGetCatalog)
}

// handleGetCatalog composes the catalog for the requested filter state.
//
//	@Summary		Get catalog
//	@Description	Returns the product catalog grouped into panel sections, filtered and ordered for display.
//	@Tags			catalog
//	@Produce		json
//	@Param			panel			query		string	false	"Panel key (e.g. xtream-0) or all"	default(all)
//	@Param			account_type	query		string	false	"all, subscriber or reseller"		default(all)
//	@Param			price			query		string	false	"all, free, under10, under25 or over25"	default(all)
//	@Success		200	{object}	Response	"Rendered catalog"
//	@Failure		400	{object}	map[string]any	"Invalid filter parameter"
//	@Failure		503	{object}	map[string]any	"Upstream unavailable and no cached catalog"
//	@Router			/catalog [get]
func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	fs, err := parseFilterState(r)
	if err != nil {
		writeCatalogError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, stale, ok := h.loadProducts(r.Context())
	if !ok {
		writeCatalogError(w, http.StatusServiceUnavailable, "product source unavailable and no cached catalog")
		return
	}

	labels := h.loadLabels(r.Context())

	rendered := Render(Apply(Group(products), fs))
	sections := make([]Section, len(rendered))
	for i := range rendered {
		sections[i] = Section{
			Key:        rendered[i].Key.String(),
			Label:      labels.Label(rendered[i].Key),
			PanelType:  rendered[i].PanelType,
			PanelIndex: rendered[i].PanelIndex,
			Products:   rendered[i].Products,
		}
	}

	resp := Response{Sections: sections, Filter: fs, Stale: stale}
	if gradient, err := color.Gradient(h.theme.CardColor()); err != nil {
		// A malformed card color is a defect in the branding layer, not
		// an environmental fault; flag it without breaking the render.
		h.logger.Error("card color rejected by gradient derivation", zap.Error(err))
	} else {
		resp.CardGradient = gradient
	}

	writeJSON(w, http.StatusOK, resp)
}

// loadProducts fetches the product list, falling back to the last good
// list when the upstream is unavailable. ok is false only when there is
// nothing to serve at all.
func (h *Handler) loadProducts(ctx context.Context) (products []Product, stale, ok bool) {
	fetched, err := h.source.Products(ctx)
	if err == nil {
		h.mu.Lock()
		h.lastGood = fetched
		h.mu.Unlock()
		return fetched, false, true
	}

	h.logger.Warn("product fetch failed", zap.Error(err))

	h.mu.RLock()
	cached := h.lastGood
	h.mu.RUnlock()
	if cached == nil {
		return nil, false, false
	}
	upstreamFallbacks.Inc()
	return cached, true, true
}

// loadLabels fetches panel names for both panel types. Label failures are
// cosmetic: the fallback labels cover whatever is missing.
func (h *Handler) loadLabels(ctx context.Context) PanelLabels {
	names := make(map[PanelType][]PanelName, 2)
	for _, pt := range []PanelType{PanelXtream, PanelXuiOne} {
		list, err := h.source.PanelNames(ctx, pt)
		if err != nil {
			h.logger.Debug("panel name fetch failed, using fallback labels",
				zap.String("panel_type", string(pt)), zap.Error(err))
			continue
		}
		names[pt] = list
	}
	return NewPanelLabels(names)
}

// parseFilterState builds the filter state from query parameters,
// rejecting values outside the known sets. Selecting a specific panel
// resets the price filter to all -- that transition belongs to the
// caller of the pipeline, which is this handler.
func parseFilterState(r *http.Request) (FilterState, error) {
	q := r.URL.Query()

	fs := FilterState{
		Panel:       q.Get("panel"),
		AccountType: AccountFilter(q.Get("account_type")),
		Price:       PriceFilter(q.Get("price")),
	}
	if fs.Panel == "" {
		fs.Panel = FilterAll
	}
	if fs.AccountType == "" {
		fs.AccountType = AccountFilterAll
	}
	if fs.Price == "" {
		fs.Price = PriceFilterAll
	}

	if fs.Panel != FilterAll {
		if _, err := ParsePanelKey(fs.Panel); err != nil {
			return FilterState{}, err
		}
		// Panel selection is exclusive intent: price filtering resets.
		fs.Price = PriceFilterAll
	}

	switch fs.AccountType {
	case AccountFilterAll, AccountFilterSubscriber, AccountFilterReseller:
	default:
		return FilterState{}, fmt.Errorf("unknown account_type %q", fs.AccountType)
	}

	switch fs.Price {
	case PriceFilterAll, PriceFilterFree, PriceFilterUnder10, PriceFilterUnder25, PriceFilterOver25:
	default:
		return FilterState{}, fmt.Errorf("unknown price filter %q", fs.Price)
	}

	return fs, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeCatalogError writes an RFC 7807 problem response.
func writeCatalogError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://streamvault.app/problems/catalog-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
