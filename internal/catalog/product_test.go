package catalog

import "testing"

func TestNormalize_defaults(t *testing.T) {
	p := Product{PanelIndex: -3}
	p.Normalize()

	if p.PanelType != PanelXtream {
		t.Errorf("PanelType = %q, want xtream", p.PanelType)
	}
	if p.PanelIndex != 0 {
		t.Errorf("PanelIndex = %d, want 0", p.PanelIndex)
	}
	if p.AccountType != AccountSubscriber {
		t.Errorf("AccountType = %q, want subscriber", p.AccountType)
	}
}

func TestNormalize_keeps_valid_values(t *testing.T) {
	p := Product{PanelType: PanelXuiOne, PanelIndex: 2, AccountType: AccountReseller}
	p.Normalize()

	if p.PanelType != PanelXuiOne || p.PanelIndex != 2 || p.AccountType != AccountReseller {
		t.Errorf("Normalize changed valid fields: %+v", p)
	}
}

func TestNormalize_unknown_enum_values(t *testing.T) {
	p := Product{PanelType: "plex", AccountType: "admin"}
	p.Normalize()

	if p.PanelType != PanelXtream {
		t.Errorf("PanelType = %q, want xtream", p.PanelType)
	}
	if p.AccountType != AccountSubscriber {
		t.Errorf("AccountType = %q, want subscriber", p.AccountType)
	}
}

func TestMinPrice(t *testing.T) {
	p := Product{Prices: map[string]float64{"1": 15, "12": 9.99, "6": 40}}
	min, ok := p.MinPrice()
	if !ok {
		t.Fatal("MinPrice ok = false, want true")
	}
	if min != 9.99 {
		t.Errorf("MinPrice = %v, want 9.99", min)
	}
}

func TestMinPrice_empty(t *testing.T) {
	p := Product{}
	if _, ok := p.MinPrice(); ok {
		t.Error("MinPrice ok = true for empty prices, want false")
	}
}

func TestPanelKey_string(t *testing.T) {
	k := PanelKey{Type: PanelXuiOne, Index: 3}
	if got := k.String(); got != "xuione-3" {
		t.Errorf("String = %q, want xuione-3", got)
	}
}

func TestParsePanelKey(t *testing.T) {
	k, err := ParsePanelKey("xtream-0")
	if err != nil {
		t.Fatalf("ParsePanelKey: %v", err)
	}
	if k.Type != PanelXtream || k.Index != 0 {
		t.Errorf("ParsePanelKey = %+v", k)
	}
}

func TestParsePanelKey_rejects_malformed(t *testing.T) {
	for _, s := range []string{"", "xtream", "-1", "xtream--1", "plex-0", "xtream-x"} {
		if _, err := ParsePanelKey(s); err == nil {
			t.Errorf("ParsePanelKey(%q) succeeded, want error", s)
		}
	}
}
