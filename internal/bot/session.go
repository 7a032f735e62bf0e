package bot

import "vintedwatch/internal/catalog"

// Editable field identifiers, used in callback data
const (
	fieldBrands    = "brands"
	fieldColors    = "colors"
	fieldStatuses  = "statuses"
	fieldPriceFrom = "price_from"
	fieldPriceTo   = "price_to"
	fieldCurrency  = "currency"
	fieldSizeMen   = "size_men"
	fieldSizeWomen = "size_women"
)

// session holds a chat's transient editing state: the active configuration
// key and the pending selection for the field currently being edited. Pending
// values reach the store only on an explicit confirm.
type session struct {
	configKey       string
	field           string
	pendingIDs      map[int]struct{}
	pendingPrice    *int
	pendingCurrency string
}

// activeKey resolves the session's configuration key against the persisted
// configurations, preferring "men" then the first key in sorted order when
// the session has no valid selection yet.
func (s *session) activeKey(configs map[string]catalog.FilterConfig) string {
	if s.configKey != "" {
		if _, ok := configs[s.configKey]; ok {
			return s.configKey
		}
	}
	if _, ok := configs["men"]; ok {
		s.configKey = "men"
		return "men"
	}
	keys := sortedKeys(configs)
	if len(keys) > 0 {
		s.configKey = keys[0]
		return keys[0]
	}
	return ""
}

// beginIDEdit seeds the pending id set for a sequence field from the
// persisted configuration.
func (s *session) beginIDEdit(field string, ids []int) {
	s.field = field
	s.pendingIDs = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s.pendingIDs[id] = struct{}{}
	}
}

// toggle flips one id in the pending selection
func (s *session) toggle(id int) {
	if s.pendingIDs == nil {
		s.pendingIDs = make(map[int]struct{})
	}
	if _, ok := s.pendingIDs[id]; ok {
		delete(s.pendingIDs, id)
	} else {
		s.pendingIDs[id] = struct{}{}
	}
}

// pendingSlice returns the pending ids ordered by the given table
func (s *session) pendingSlice(table []catalog.Entry) []int {
	ids := make([]int, 0, len(s.pendingIDs))
	for _, e := range table {
		if _, ok := s.pendingIDs[e.ID]; ok {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
