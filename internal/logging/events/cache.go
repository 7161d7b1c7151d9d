package events

import "github.com/atomicstack/panegrid/internal/logging"

// CacheTracer records async cache lookups and settlements.
type CacheTracer struct{}

// PageTracer records page moves and filter toggles.
type PageTracer struct{}

var (
	// Cache traces async.Cache activity, keyed by owning viewer.
	Cache = CacheTracer{}
	// Page traces pagination changes.
	Page = PageTracer{}
)

func (CacheTracer) Hit(owner, key string) {
	logging.Trace("cache.hit", map[string]interface{}{"owner": owner, "key": key})
}

func (CacheTracer) Miss(owner, key string) {
	logging.Trace("cache.miss", map[string]interface{}{"owner": owner, "key": key})
}

func (CacheTracer) Attach(owner, key string) {
	logging.Trace("cache.attach", map[string]interface{}{"owner": owner, "key": key})
}

func (CacheTracer) Stale(owner, key string) {
	logging.Trace("cache.stale", map[string]interface{}{"owner": owner, "key": key})
}

func (CacheTracer) Settle(owner, key string, err error) {
	payload := map[string]interface{}{"owner": owner, "key": key}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("cache.settle", payload)
}

func (CacheTracer) Drop(owner, key string) {
	logging.Trace("cache.drop", map[string]interface{}{"owner": owner, "key": key})
}

func (CacheTracer) Expire(owner, key string) {
	logging.Trace("cache.expire", map[string]interface{}{"owner": owner, "key": key})
}

func (CacheTracer) Invalidate(owner, key string) {
	logging.Trace("cache.invalidate", map[string]interface{}{"owner": owner, "key": key})
}

func (PageTracer) Move(viewer, pane string, page, total int) {
	logging.Trace("page.move", map[string]interface{}{"viewer": viewer, "pane": pane, "page": page, "total": total})
}

func (PageTracer) Filter(viewer, pane, filter string, active bool) {
	logging.Trace("page.filter", map[string]interface{}{"viewer": viewer, "pane": pane, "filter": filter, "active": active})
}
