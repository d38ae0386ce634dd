package catalog

// Filter sentinels. The zero value of each filter field is treated as "all".
const FilterAll = "all"

// AccountFilter narrows products by account type.
type AccountFilter string

const (
	AccountFilterAll        AccountFilter = FilterAll
	AccountFilterSubscriber AccountFilter = "subscriber"
	AccountFilterReseller   AccountFilter = "reseller"
)

// PriceFilter narrows products by their cheapest term. The four non-"all"
// buckets partition [0, ∞): free = 0, under10 = (0,10), under25 = [10,25),
// over25 = [25, ∞).
type PriceFilter string

const (
	PriceFilterAll     PriceFilter = FilterAll
	PriceFilterFree    PriceFilter = "free"
	PriceFilterUnder10 PriceFilter = "under10"
	PriceFilterUnder25 PriceFilter = "under25"
	PriceFilterOver25  PriceFilter = "over25"
)

// FilterState is the UI filter selection for one render pass. Panel holds
// either "all" or a serialized panel key ("xtream-0"). The pipeline is
// stateless: the UI rule that selecting a panel resets the price filter is
// owned by the caller, which simply passes the already-reset state here.
type FilterState struct {
	Panel       string        `json:"panel"`
	AccountType AccountFilter `json:"account_type"`
	Price       PriceFilter   `json:"price"`
}

// Apply narrows a grouping according to the filter state. Stages cascade
// in a fixed order:
//
//  1. Panel selection. A non-"all" panel keeps only that bucket and
//     suppresses the account and price stages entirely -- narrowing to one
//     panel is a stronger intent than compound filtering.
//  2. Account-type filter.
//  3. Price filter on each product's cheapest term.
//
// Buckets may come out empty but are never removed; hiding empty sections
// is the renderer's decision, not the pipeline's.
func Apply(g *Grouping, fs FilterState) *Grouping {
	if fs.Panel != "" && fs.Panel != FilterAll {
		return selectPanel(g, fs.Panel)
	}

	out := NewGrouping()
	for _, key := range g.Keys() {
		grp, _ := g.Get(key)
		kept := make([]Product, 0, len(grp.Products))
		for i := range grp.Products {
			p := grp.Products[i]
			if !matchAccount(p, fs.AccountType) {
				continue
			}
			if !matchPrice(p, fs.Price) {
				continue
			}
			kept = append(kept, p)
		}
		out.order = append(out.order, key)
		out.groups[key] = &PanelGroup{Key: key, PanelType: key.Type, PanelIndex: key.Index, Products: kept}
	}
	return out
}

// selectPanel keeps only the bucket for the serialized key. An unknown or
// malformed key yields an empty grouping rather than an error: the filter
// state is untrusted UI input.
func selectPanel(g *Grouping, panel string) *Grouping {
	out := NewGrouping()
	key, err := ParsePanelKey(panel)
	if err != nil {
		return out
	}
	grp, ok := g.Get(key)
	if !ok {
		return out
	}
	products := make([]Product, len(grp.Products))
	copy(products, grp.Products)
	out.order = append(out.order, key)
	out.groups[key] = &PanelGroup{Key: key, PanelType: key.Type, PanelIndex: key.Index, Products: products}
	return out
}

func matchAccount(p Product, f AccountFilter) bool {
	switch f {
	case AccountFilterSubscriber:
		// Unset account types were defaulted to subscriber at decode time;
		// treat a stray empty value the same way.
		return p.AccountType != AccountReseller
	case AccountFilterReseller:
		return p.AccountType == AccountReseller
	default:
		return true
	}
}

func matchPrice(p Product, f PriceFilter) bool {
	if f == "" || f == PriceFilterAll {
		return true
	}
	min, ok := p.MinPrice()
	if !ok {
		// No prices at all: excluded from every non-"all" bucket.
		return false
	}
	switch f {
	case PriceFilterFree:
		return min == 0
	case PriceFilterUnder10:
		return min > 0 && min < 10
	case PriceFilterUnder25:
		return min >= 10 && min < 25
	case PriceFilterOver25:
		return min >= 25
	default:
		return true
	}
}
