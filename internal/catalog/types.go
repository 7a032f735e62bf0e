package catalog

// DefaultDomain is the catalog host used when a configuration has no domain.
const DefaultDomain = "www.vinted.co.uk"

// FilterConfig is a named set of marketplace filter criteria owned by a
// subscriber. Id fields reference the static enumeration tables but are
// passed through to the query string without membership validation.
type FilterConfig struct {
	Name         string `json:"name"`
	Domain       string `json:"domain,omitempty"`
	BrandIDs     []int  `json:"brand_ids"`
	ColorIDs     []int  `json:"color_ids"`
	StatusIDs    []int  `json:"status_ids"`
	PriceFrom    *int   `json:"price_from"`
	PriceTo      *int   `json:"price_to"`
	Currency     string `json:"currency,omitempty"`
	SizeIDsMen   []int  `json:"size_ids_men,omitempty"`
	SizeIDsWomen []int  `json:"size_ids_women,omitempty"`
}

// ListingItem is a catalog entry discovered on a listing page.
type ListingItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// UnknownID is the sentinel id recorded when extraction from an item link
// fails. Degraded items are still counted and merged into the known set.
const UnknownID = "Unknown"

// NoTitle is the placeholder used when an item anchor carries no title.
const NoTitle = "No title"

// DefaultMenConfig returns the empty men's configuration created on first
// subscriber interaction.
func DefaultMenConfig() FilterConfig {
	return FilterConfig{
		Name:       "Men's Config",
		BrandIDs:   []int{},
		ColorIDs:   []int{},
		StatusIDs:  []int{},
		SizeIDsMen: []int{},
	}
}

// DefaultWomenConfig returns the empty women's configuration created on first
// subscriber interaction.
func DefaultWomenConfig() FilterConfig {
	return FilterConfig{
		Name:         "Women's Config",
		BrandIDs:     []int{},
		ColorIDs:     []int{},
		StatusIDs:    []int{},
		SizeIDsWomen: []int{},
	}
}
