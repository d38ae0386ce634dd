package catalog

import "fmt"

// PanelName is one entry from the panel-name source: a display name for
// the panel at the given index of a panel type.
type PanelName struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// PanelLabels resolves display labels for panel groups from the upstream
// panel-name listings.
type PanelLabels map[PanelType]map[int]string

// NewPanelLabels builds a label lookup from per-type name listings.
func NewPanelLabels(names map[PanelType][]PanelName) PanelLabels {
	labels := make(PanelLabels, len(names))
	for pt, list := range names {
		m := make(map[int]string, len(list))
		for _, n := range list {
			if n.Name != "" {
				m[n.Index] = n.Name
			}
		}
		labels[pt] = m
	}
	return labels
}

// Label returns the display label for a panel key, falling back to a
// generated one when the upstream listing has no entry for it.
func (l PanelLabels) Label(key PanelKey) string {
	if m, ok := l[key.Type]; ok {
		if name, ok := m[key.Index]; ok {
			return name
		}
	}
	return FallbackLabel(key)
}

// FallbackLabel generates the default label for an unnamed panel:
// "Server {index+1}" for xtream panels, "Panel {index+1}" for xuione.
func FallbackLabel(key PanelKey) string {
	if key.Type == PanelXuiOne {
		return fmt.Sprintf("Panel %d", key.Index+1)
	}
	return fmt.Sprintf("Server %d", key.Index+1)
}
