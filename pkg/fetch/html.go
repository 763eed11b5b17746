package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
	"github.com/Sriram-PR/clinic-scraper/pkg/wayback"
)

// FetchHTML retrieves the HTML body for a crawl URL, consulting the snapshot
// cache first when one is configured. Cache entries are keyed by the dedup
// key so captures of the same page at different timestamps share one entry.
func (f *Fetcher) FetchHTML(ctx context.Context, u wayback.CrawlURL) (string, error) {
	pageLog := f.log.WithField("url", u.Wrapped)

	if f.cache != nil {
		html, found, err := f.cache.Get(u.Key())
		if err != nil {
			// Cache trouble is never fatal to a fetch
			pageLog.Warnf("Snapshot cache read failed: %v", err)
		} else if found {
			pageLog.Debug("Snapshot cache hit")
			return html, nil
		}
	}

	req, err := http.NewRequest(http.MethodGet, u.Wrapped, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-AU,en;q=0.9")

	resp, err := f.FetchWithRetry(req, ctx)
	if err != nil {
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrResponseBodyRead, err)
	}
	html := string(body)

	if f.cache != nil {
		if err := f.cache.Put(u.Key(), html); err != nil {
			pageLog.Warnf("Snapshot cache write failed: %v", err)
		}
	}

	return html, nil
}
