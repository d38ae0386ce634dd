package branding_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/streamvault/storefront/internal/branding"
)

func setupHandlerEnv(t *testing.T, src branding.Source) (*branding.Store, *http.ServeMux) {
	t.Helper()

	store := branding.NewStore(snapshots(t), src, nil, zap.NewNop())
	store.Load(context.Background())

	handler := branding.NewHandler(store, zap.NewNop())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return store, mux
}

func TestHandleGetBranding(t *testing.T) {
	_, mux := setupHandlerEnv(t, &staticSource{})

	req := httptest.NewRequest("GET", "/api/v1/branding", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp branding.ProfileResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.State != branding.StateCached {
		t.Errorf("state = %q, want cached", resp.State)
	}
	if resp.Profile.SiteName != "IPTV Billing" {
		t.Errorf("site_name = %q", resp.Profile.SiteName)
	}
}

func TestHandleGetTheme(t *testing.T) {
	_, mux := setupHandlerEnv(t, &staticSource{})

	req := httptest.NewRequest("GET", "/api/v1/branding/theme", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var theme branding.ThemeState
	if err := json.NewDecoder(w.Body).Decode(&theme); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if theme.DocumentTitle != "IPTV Billing" {
		t.Errorf("document_title = %q", theme.DocumentTitle)
	}
	if theme.CustomProperties["--color-accent"] != "#059669" {
		t.Errorf("--color-accent = %q", theme.CustomProperties["--color-accent"])
	}
}

func TestHandleRefresh_triggers_fetch(t *testing.T) {
	store, mux := setupHandlerEnv(t, &staticSource{profile: remoteProfile()})

	req := httptest.NewRequest("POST", "/api/v1/branding/refresh", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	// The fetch runs asynchronously; wait for it to land.
	require.Eventually(t, func() bool {
		return store.State() == branding.StateSynced
	}, 2*time.Second, 10*time.Millisecond, "refresh never synced the profile")
	require.Equal(t, "Acme TV", store.Profile().SiteName)
}

func TestHandleRefresh_method_not_allowed(t *testing.T) {
	_, mux := setupHandlerEnv(t, &staticSource{})

	req := httptest.NewRequest("GET", "/api/v1/branding/refresh", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
