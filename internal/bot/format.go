package bot

import (
	"fmt"
	"strings"

	"vintedwatch/internal/catalog"
)

// configSummary renders a configuration the way the dashboard shows it,
// resolving filter ids back to their labels.
func configSummary(cfg catalog.FilterConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration: %s\n", cfg.Name)
	fmt.Fprintf(&b, "Brands: %s\n", labelsOrNone(catalog.Brands, cfg.BrandIDs))
	fmt.Fprintf(&b, "Colors: %s\n", labelsOrNone(catalog.Colors, cfg.ColorIDs))
	fmt.Fprintf(&b, "Statuses: %s\n", labelsOrNone(catalog.Statuses, cfg.StatusIDs))
	fmt.Fprintf(&b, "Min Price: %s\n", priceOrNone(cfg.PriceFrom))
	fmt.Fprintf(&b, "Max Price: %s\n", priceOrNone(cfg.PriceTo))
	fmt.Fprintf(&b, "Currency: %s\n", orNone(cfg.Currency))
	fmt.Fprintf(&b, "Men's Sizes: %s\n", labelsOrNone(catalog.SizesMen, cfg.SizeIDsMen))
	fmt.Fprintf(&b, "Women's Sizes: %s\n", labelsOrNone(catalog.SizesWomen, cfg.SizeIDsWomen))
	return b.String()
}

func labelsOrNone(table []catalog.Entry, ids []int) string {
	labels := catalog.Labels(table, ids)
	if len(labels) == 0 {
		return "None"
	}
	return strings.Join(labels, ", ")
}

func priceOrNone(v *int) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%d", *v)
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
