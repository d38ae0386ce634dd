// Package catalog composes raw product records into the display sections
// rendered by the storefront: grouping by panel, cascading filters, and
// deterministic ordering.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// PanelType identifies the upstream panel software a product provisions on.
type PanelType string

const (
	PanelXtream PanelType = "xtream"
	PanelXuiOne PanelType = "xuione"
)

// AccountType distinguishes end-user subscriptions from reseller packages.
type AccountType string

const (
	AccountSubscriber AccountType = "subscriber"
	AccountReseller   AccountType = "reseller"
)

// Product is a single purchasable package as returned by the remote API.
// Products are read-only once received; the pipeline regroups and reorders
// them but never mutates fields.
type Product struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	PanelType         PanelType          `json:"panel_type"`
	PanelIndex        int                `json:"panel_index"`
	AccountType       AccountType        `json:"account_type"`
	Prices            map[string]float64 `json:"prices"`
	IsTrial           bool               `json:"is_trial"`
	TrialDuration     int                `json:"trial_duration,omitempty"`
	TrialDurationUnit string             `json:"trial_duration_unit,omitempty"`
	DisplayOrder      int                `json:"display_order"`
}

// Normalize applies the documented defaults for absent or out-of-range
// optional fields: panel_type "xtream", panel_index 0, account_type
// "subscriber". Called once at decode time so the rest of the pipeline
// never has to reason about unset values.
func (p *Product) Normalize() {
	if p.PanelType != PanelXuiOne {
		p.PanelType = PanelXtream
	}
	if p.PanelIndex < 0 {
		p.PanelIndex = 0
	}
	if p.AccountType != AccountReseller {
		p.AccountType = AccountSubscriber
	}
}

// MinPrice returns the smallest price across all terms. ok is false when
// the product has no prices at all; the minimum over an empty set is
// undefined and such products fall out of every non-"all" price bucket.
func (p Product) MinPrice() (min float64, ok bool) {
	for _, v := range p.Prices {
		if !ok || v < min {
			min = v
			ok = true
		}
	}
	return min, ok
}

// Key returns the panel identity this product is displayed under.
func (p Product) Key() PanelKey {
	return PanelKey{Type: p.PanelType, Index: p.PanelIndex}
}

// PanelKey uniquely identifies a display section: two products with equal
// keys belong to the same section regardless of any other attribute.
type PanelKey struct {
	Type  PanelType
	Index int
}

// String serializes the key as "{panel_type}-{panel_index}".
func (k PanelKey) String() string {
	return fmt.Sprintf("%s-%d", k.Type, k.Index)
}

// ParsePanelKey parses a serialized panel key such as "xtream-0".
func ParsePanelKey(s string) (PanelKey, error) {
	i := strings.LastIndexByte(s, '-')
	if i <= 0 {
		return PanelKey{}, fmt.Errorf("malformed panel key %q", s)
	}
	pt := PanelType(s[:i])
	if pt != PanelXtream && pt != PanelXuiOne {
		return PanelKey{}, fmt.Errorf("unknown panel type in key %q", s)
	}
	idx, err := strconv.Atoi(s[i+1:])
	if err != nil || idx < 0 {
		return PanelKey{}, fmt.Errorf("malformed panel index in key %q", s)
	}
	return PanelKey{Type: pt, Index: idx}, nil
}
