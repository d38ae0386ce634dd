// Package upstream is the read-only client for the storefront's remote
// API: the product source, the panel-name source, and the branding
// source. The wire protocol is plain JSON over HTTP; the client owns no
// retry policy.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/branding"
	"github.com/streamvault/storefront/internal/catalog"
)

var requestFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_request_failures_total",
		Help: "Total number of failed requests to the remote storefront API.",
	},
	[]string{"endpoint"},
)

func init() {
	prometheus.MustRegister(requestFailures)
}

// Client talks to the remote storefront API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Products returns the full product list with documented defaults applied
// to absent optional fields.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "/api/products", "products", &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}

// PanelNames returns the display names configured for panels of the given
// type. Names are cosmetic; callers fall back to generated labels for
// panels missing from the listing.
func (c *Client) PanelNames(ctx context.Context, pt catalog.PanelType) ([]catalog.PanelName, error) {
	var names []catalog.PanelName
	endpoint := fmt.Sprintf("/api/panels/%s", pt)
	if err := c.get(ctx, endpoint, "panels", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Branding returns the current branding payload.
func (c *Client) Branding(ctx context.Context) (branding.Profile, error) {
	var profile branding.Profile
	if err := c.get(ctx, "/api/settings/branding", "branding", &profile); err != nil {
		return branding.Profile{}, err
	}
	return profile, nil
}

func (c *Client) get(ctx context.Context, path, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		requestFailures.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		requestFailures.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		requestFailures.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
