package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// BuildURL turns a filter configuration into the canonical catalog request
// URL. Unset fields are omitted entirely, sequence fields are serialized as
// repeated "key[]" parameters in slice order, and the name/domain fields
// never appear in the query. Pure; no network I/O.
func BuildURL(cfg FilterConfig) string {
	domain := cfg.Domain
	if domain == "" {
		domain = DefaultDomain
	}

	var params []string
	addScalar := func(key string, value *int) {
		if value != nil {
			params = append(params, url.QueryEscape(key)+"="+strconv.Itoa(*value))
		}
	}
	addSeq := func(key string, values []int) {
		for _, v := range values {
			params = append(params, url.QueryEscape(key+"[]")+"="+strconv.Itoa(v))
		}
	}

	addScalar("price_from", cfg.PriceFrom)
	addScalar("price_to", cfg.PriceTo)
	if cfg.Currency != "" {
		params = append(params, "currency="+url.QueryEscape(cfg.Currency))
	}
	addSeq("brand_ids", cfg.BrandIDs)
	addSeq("color_ids", cfg.ColorIDs)
	addSeq("status_ids", cfg.StatusIDs)
	addSeq("size_ids_men", cfg.SizeIDsMen)
	addSeq("size_ids_women", cfg.SizeIDsWomen)

	base := "https://" + domain + "/catalog"
	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}
