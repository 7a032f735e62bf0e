package watcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"vintedwatch/internal/catalog"
	"vintedwatch/internal/fetcher"
	"vintedwatch/logger"
	"vintedwatch/services/configstore"
	"vintedwatch/services/ledger"
	"vintedwatch/services/notifier"
)

// Watcher runs the poll cycle: for every subscriber configuration it builds
// the catalog URL, fetches and parses the listing page, diffs discovered
// item ids against the subscriber's known set, notifies the delta, and
// persists the merged set. The watcher itself holds no state across cycles;
// the ledger is the only durable state.
type Watcher struct {
	store        configstore.Store
	knownLedger  ledger.Ledger
	pageFetcher  fetcher.Fetcher
	dispatcher   notifier.Notifier
	log          *logger.Logger
	pollInterval time.Duration
}

// NewWatcher creates a new watcher
func NewWatcher(
	store configstore.Store,
	knownLedger ledger.Ledger,
	pageFetcher fetcher.Fetcher,
	dispatcher notifier.Notifier,
	log *logger.Logger,
	pollInterval time.Duration,
) *Watcher {
	return &Watcher{
		store:        store,
		knownLedger:  knownLedger,
		pageFetcher:  pageFetcher,
		dispatcher:   dispatcher,
		log:          log,
		pollInterval: pollInterval,
	}
}

// Start runs poll cycles on the configured interval until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		start := time.Now()
		w.RunCycle(ctx)
		w.log.Debug().
			Dur("elapsed", time.Since(start)).
			Msg("Poll cycle finished")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunCycle executes one full pass over all subscribers and their
// configurations. Failures are contained per (subscriber, configuration)
// pair and never abort the cycle.
func (w *Watcher) RunCycle(ctx context.Context) {
	all, err := w.store.LoadAll(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to load subscriber configurations")
		return
	}

	for _, chatID := range sortedChatIDs(all) {
		if ctx.Err() != nil {
			return
		}
		w.processSubscriber(ctx, chatID, all[chatID])
	}
}

// processSubscriber runs every configuration of one subscriber against a
// single known-id set loaded once up front, then persists the merged set
// once. Ids found by an earlier configuration in the same cycle therefore
// suppress notifications from a sibling configuration.
func (w *Watcher) processSubscriber(ctx context.Context, chatID int64, configs map[string]catalog.FilterConfig) {
	log := w.log.WithField("chat_id", chatID)

	knownIDs, err := w.knownLedger.Load(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load known ids, skipping subscriber")
		return
	}

	merged := false
	for _, key := range sortedConfigKeys(configs) {
		cfg := configs[key]
		if w.processConfig(ctx, chatID, key, cfg, knownIDs) {
			merged = true
		}
	}

	if !merged {
		return
	}
	if err := w.knownLedger.Replace(ctx, chatID, knownIDs); err != nil {
		log.Error().Err(err).Msg("Failed to persist known ids")
	}
}

// processConfig handles one (subscriber, configuration) pair. It mutates
// knownIDs in place with the ids discovered on this fetch and reports
// whether anything was merged. A fetch or parse failure leaves knownIDs
// untouched for this pair.
func (w *Watcher) processConfig(ctx context.Context, chatID int64, key string, cfg catalog.FilterConfig, knownIDs map[string]struct{}) bool {
	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("Unnamed config (%s)", key)
	}
	log := w.log.WithFields(logger.Fields{"chat_id": chatID, "config": name})

	url := catalog.BuildURL(cfg)
	log.Info().Str("url", url).Msg("Polling catalog")

	markup, err := w.pageFetcher.Fetch(ctx, url)
	if err != nil {
		log.Error().Err(err).Msg("Fetch failed")
		return false
	}

	items, err := catalog.ParseListings(markup, domainOf(cfg))
	if err != nil {
		log.Error().Err(err).Msg("Parse failed")
		return false
	}
	log.Info().Int("count", len(items)).Msg("Found listings")

	newItems := filterNew(items, knownIDs)
	if len(newItems) > 0 {
		message := composeMessage(name, newItems)
		if err := w.dispatcher.Notify(ctx, chatID, message); err != nil {
			// Best effort: the merge below still happens
			log.Error().Err(err).Int("new_items", len(newItems)).Msg("Notification dispatch failed")
		} else {
			log.Info().Int("new_items", len(newItems)).Msg("Sent notification")
		}
	} else {
		log.Info().Msg("No new listings")
	}

	for _, item := range items {
		knownIDs[item.ID] = struct{}{}
	}
	return true
}

// filterNew returns the items whose ids are absent from knownIDs, preserving
// document order. Duplicate new ids within one fetch all pass through.
func filterNew(items []catalog.ListingItem, knownIDs map[string]struct{}) []catalog.ListingItem {
	var newItems []catalog.ListingItem
	for _, item := range items {
		if _, ok := knownIDs[item.ID]; !ok {
			newItems = append(newItems, item)
		}
	}
	return newItems
}

// composeMessage renders one grouped HTML notification for a configuration
func composeMessage(configName string, items []catalog.ListingItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New Vinted products found for <b>%s</b>:\n\n", configName)
	for _, item := range items {
		fmt.Fprintf(&b, "<b>%s</b>\nID: %s\nURL: %s\n\n", item.Title, item.ID, item.URL)
	}
	return b.String()
}

func domainOf(cfg catalog.FilterConfig) string {
	if cfg.Domain != "" {
		return cfg.Domain
	}
	return catalog.DefaultDomain
}

func sortedChatIDs(all map[int64]map[string]catalog.FilterConfig) []int64 {
	ids := make([]int64, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedConfigKeys(configs map[string]catalog.FilterConfig) []string {
	keys := make([]string, 0, len(configs))
	for key := range configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
