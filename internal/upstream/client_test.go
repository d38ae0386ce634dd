package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/catalog"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zap.NewNop())
}

func TestProducts_applies_defaults(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a","name":"Basic","prices":{"1":9.99}},
			{"id":"b","name":"Reseller","panel_type":"xuione","panel_index":1,"account_type":"reseller","prices":{"1":50}}
		]`))
	}))

	products, err := c.Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}

	a := products[0]
	if a.PanelType != catalog.PanelXtream || a.AccountType != catalog.AccountSubscriber {
		t.Errorf("defaults not applied: %+v", a)
	}

	b := products[1]
	if b.PanelType != catalog.PanelXuiOne || b.PanelIndex != 1 || b.AccountType != catalog.AccountReseller {
		t.Errorf("explicit fields lost: %+v", b)
	}
}

func TestProducts_upstream_error(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	if _, err := c.Products(context.Background()); err == nil {
		t.Error("expected error for 502 response, got nil")
	}
}

func TestProducts_malformed_body(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))

	if _, err := c.Products(context.Background()); err == nil {
		t.Error("expected error for malformed body, got nil")
	}
}

func TestPanelNames(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/panels/xtream" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"index":0,"name":"Primary"},{"index":1,"name":"Backup"}]`))
	}))

	names, err := c.PanelNames(context.Background(), catalog.PanelXtream)
	if err != nil {
		t.Fatalf("PanelNames: %v", err)
	}
	if len(names) != 2 || names[0].Name != "Primary" {
		t.Errorf("names = %+v", names)
	}
}

func TestBranding(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/settings/branding" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"site_name":"Acme TV","theme":"dark","primary_color":"#112233","secondary_color":"#445566","accent_color":"#778899","card_color":"#101010"}`))
	}))

	profile, err := c.Branding(context.Background())
	if err != nil {
		t.Fatalf("Branding: %v", err)
	}
	if profile.SiteName != "Acme TV" || profile.Theme != "dark" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestContext_cancellation(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := c.Products(ctx); err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}
