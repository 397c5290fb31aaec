package domain

// Product is a single listing observed at one retailer. (Source, ExternalID)
// identifies the listing within that retailer's catalog; Name is the only
// signal used for matching.
type Product struct {
	Source     string  `json:"source"`
	ExternalID string  `json:"externalId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"` // EUR
	URL        string  `json:"url"`
}

// Key returns the identity of the listing within an input collection.
func (p Product) Key() string {
	return p.Source + "\x00" + p.ExternalID
}

// MatchGroup is a set of products from distinct sources believed to denote
// the same real-world product. The anchor's name labels the group.
type MatchGroup struct {
	Anchor  Product   `json:"anchor"`
	Matches []Product `json:"matches,omitempty"`
}

// Products returns the group members in group order, anchor first.
func (g MatchGroup) Products() []Product {
	out := make([]Product, 0, 1+len(g.Matches))
	out = append(out, g.Anchor)
	out = append(out, g.Matches...)
	return out
}

// PriceEntry is one source's price within a comparison row.
type PriceEntry struct {
	Source string  `json:"source"`
	Price  float64 `json:"price"`
	URL    string  `json:"url,omitempty"`
}

// ComparisonRow is a read-only summary derived from one MatchGroup: one price
// entry per source present in the group plus the cheapest-source summary.
type ComparisonRow struct {
	ProductName    string       `json:"productName"`
	Prices         []PriceEntry `json:"prices"`
	CheapestSource string       `json:"cheapestSource"`
	CheapestPrice  float64      `json:"cheapestPrice"`
	PriceSpread    float64      `json:"priceSpread"`
}
