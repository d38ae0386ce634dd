package catalog

import "sort"

// panelRank fixes the display order of panel types: xtream sections always
// precede xuione sections.
func panelRank(t PanelType) int {
	if t == PanelXuiOne {
		return 1
	}
	return 0
}

// Render produces the final render sequence for a (filtered) grouping:
// groups sorted by (panel_type, panel_index) ascending, products within
// each group ordered for display, and groups left empty by filtering
// dropped entirely -- an empty section is never rendered.
//
// The input grouping is not modified; returned groups own fresh slices.
func Render(g *Grouping) []PanelGroup {
	out := make([]PanelGroup, 0, g.Len())
	for _, key := range g.Keys() {
		grp, _ := g.Get(key)
		if len(grp.Products) == 0 {
			continue
		}
		out = append(out, PanelGroup{
			Key:        grp.Key,
			PanelType:  grp.PanelType,
			PanelIndex: grp.PanelIndex,
			Products:   orderProducts(grp.Products),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PanelType != out[j].PanelType {
			return panelRank(out[i].PanelType) < panelRank(out[j].PanelType)
		}
		return out[i].PanelIndex < out[j].PanelIndex
	})

	return out
}

// orderProducts arranges one group's products for display: subscriber
// packages first, reseller packages after, each partition stably sorted
// by display_order ascending so equal orders keep their input position.
func orderProducts(products []Product) []Product {
	subs := make([]Product, 0, len(products))
	resellers := make([]Product, 0)
	for i := range products {
		if products[i].AccountType == AccountReseller {
			resellers = append(resellers, products[i])
		} else {
			subs = append(subs, products[i])
		}
	}

	byDisplayOrder := func(s []Product) {
		sort.SliceStable(s, func(i, j int) bool {
			return s[i].DisplayOrder < s[j].DisplayOrder
		})
	}
	byDisplayOrder(subs)
	byDisplayOrder(resellers)

	return append(subs, resellers...)
}
