package frontier

import (
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/wayback"
)

// Frontier manages breadth-first traversal state for a single crawl:
// the pending FIFO queue, the set of seen dedup keys, the pages-visited
// counter, and per-URL fetch failures. It is an explicit owned value so
// several independent crawls can run in one process; it is not safe for
// concurrent use and the crawl loop never needs it to be.
type Frontier struct {
	maxPages int // 0 = unlimited
	log      *logrus.Logger

	pending []wayback.CrawlURL
	seen    map[string]struct{} // Key() of everything ever enqueued
	visited int
	failed  map[string]error // Key() -> terminal fetch error
}

// New creates an empty Frontier. maxPages bounds the number of pages
// Next will hand out; zero means unbounded.
func New(maxPages int, log *logrus.Logger) *Frontier {
	return &Frontier{
		maxPages: maxPages,
		log:      log,
		seen:     make(map[string]struct{}),
		failed:   make(map[string]error),
	}
}

// Enqueue adds u to the pending queue unless its dedup key has already been
// queued or visited. Returns true if the URL was newly added.
func (f *Frontier) Enqueue(u wayback.CrawlURL) bool {
	key := u.Key()
	if _, ok := f.seen[key]; ok {
		f.log.WithField("url", key).Debug("Already seen, skipping enqueue")
		return false
	}
	f.seen[key] = struct{}{}
	f.pending = append(f.pending, u)
	return true
}

// Next dequeues the oldest pending URL and counts it as visited.
// Returns ok=false when the queue is empty or the page budget is reached;
// a reached budget wins even when work remains pending.
func (f *Frontier) Next() (wayback.CrawlURL, bool) {
	if f.maxPages > 0 && f.visited >= f.maxPages {
		if len(f.pending) > 0 {
			f.log.WithFields(logrus.Fields{
				"max_pages": f.maxPages,
				"pending":   len(f.pending),
			}).Info("Page budget reached, stopping with URLs still pending")
		}
		return wayback.CrawlURL{}, false
	}
	if len(f.pending) == 0 {
		return wayback.CrawlURL{}, false
	}
	u := f.pending[0]
	f.pending = f.pending[1:]
	f.visited++
	return u, true
}

// MarkFailed records a terminal fetch failure for u. The URL stays in the
// seen set, so it will not be re-queued; a failing page never blocks the
// rest of the crawl.
func (f *Frontier) MarkFailed(u wayback.CrawlURL, err error) {
	f.failed[u.Key()] = err
}

// Visited returns how many URLs Next has handed out.
func (f *Frontier) Visited() int {
	return f.visited
}

// Pending returns the current queue length.
func (f *Frontier) Pending() int {
	return len(f.pending)
}

// Failures returns the per-URL terminal fetch errors recorded so far.
// The returned map is the Frontier's own; callers must not mutate it.
func (f *Frontier) Failures() map[string]error {
	return f.failed
}
