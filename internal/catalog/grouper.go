package catalog

// PanelGroup owns the products sharing one panel identity, in insertion
// order. Groups are built fresh on every pass and never persisted.
type PanelGroup struct {
	Key        PanelKey  `json:"key"`
	PanelType  PanelType `json:"panel_type"`
	PanelIndex int       `json:"panel_index"`
	Products   []Product `json:"products"`
}

// Grouping maps panel keys to their groups while remembering first-seen
// bucket order, which a plain map would lose.
type Grouping struct {
	order  []PanelKey
	groups map[PanelKey]*PanelGroup
}

// NewGrouping returns an empty grouping.
func NewGrouping() *Grouping {
	return &Grouping{groups: make(map[PanelKey]*PanelGroup)}
}

// Group buckets products by panel identity in a single pass over the
// input. No product is dropped here, whatever its account type or price
// shape; filtering is a later, separate stage. Pure: regrouping the
// flattened output reproduces the same buckets.
func Group(products []Product) *Grouping {
	g := NewGrouping()
	for i := range products {
		g.add(products[i])
	}
	return g
}

func (g *Grouping) add(p Product) {
	key := p.Key()
	grp, ok := g.groups[key]
	if !ok {
		grp = &PanelGroup{Key: key, PanelType: key.Type, PanelIndex: key.Index}
		g.groups[key] = grp
		g.order = append(g.order, key)
	}
	grp.Products = append(grp.Products, p)
}

// Keys returns the panel keys in first-seen order.
func (g *Grouping) Keys() []PanelKey {
	return g.order
}

// Get returns the group for key, if present.
func (g *Grouping) Get(key PanelKey) (*PanelGroup, bool) {
	grp, ok := g.groups[key]
	return grp, ok
}

// Len returns the number of buckets, including empty ones.
func (g *Grouping) Len() int {
	return len(g.order)
}

// Flatten returns all products in bucket order then insertion order.
func (g *Grouping) Flatten() []Product {
	var out []Product
	for _, key := range g.order {
		out = append(out, g.groups[key].Products...)
	}
	return out
}
