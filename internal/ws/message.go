package ws

import (
	"time"

	"github.com/streamvault/storefront/internal/branding"
)

// MessageType discriminates WebSocket messages.
type MessageType string

const (
	MessageBrandingUpdated MessageType = "branding.updated"
	MessageCatalogChanged  MessageType = "catalog.changed"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}

// BrandingUpdatedData is the payload for branding.updated messages. Clients
// apply the theme state directly without re-fetching the profile.
type BrandingUpdatedData struct {
	Theme branding.ThemeState `json:"theme"`
}

// CatalogChangedData is the payload for catalog.changed messages. It carries
// no detail; clients re-request the catalog with their current filter state.
type CatalogChangedData struct {
	Reason string `json:"reason"`
}
