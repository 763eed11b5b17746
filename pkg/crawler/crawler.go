package crawler

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/config"
	"github.com/Sriram-PR/clinic-scraper/pkg/extract"
	"github.com/Sriram-PR/clinic-scraper/pkg/fetch"
	"github.com/Sriram-PR/clinic-scraper/pkg/frontier"
	"github.com/Sriram-PR/clinic-scraper/pkg/models"
	"github.com/Sriram-PR/clinic-scraper/pkg/report"
	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
	"github.com/Sriram-PR/clinic-scraper/pkg/wayback"
)

// Crawler walks the archived clinic directory breadth-first and extracts a
// ClinicRecord per clinic page. Execution is single-threaded by design: one
// page is fetched, classified, and processed to completion before the next is
// dequeued, so records come out in a deterministic discovery order.
type Crawler struct {
	cfg       *config.AppConfig
	scope     *wayback.Scope
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	log       *logrus.Logger
}

// CrawlResult is the summary of one crawl run.
type CrawlResult struct {
	RunID         string
	Records       []models.ClinicRecord // Discovery order
	Report        report.Report
	PagesVisited  int
	FetchFailures map[string]error // Canonical URL -> terminal fetch error
}

// New wires a Crawler from its collaborators.
func New(cfg *config.AppConfig, fetcher *fetch.Fetcher, extractor *extract.Extractor, log *logrus.Logger) (*Crawler, error) {
	scope, err := wayback.NewScope(cfg.SitePrefix)
	if err != nil {
		return nil, fmt.Errorf("building crawl scope: %w", err)
	}
	return &Crawler{
		cfg:       cfg,
		scope:     scope,
		fetcher:   fetcher,
		extractor: extractor,
		log:       log,
	}, nil
}

// Run performs the crawl from the configured start URL until the frontier is
// empty, the page budget is exhausted, or ctx is cancelled. Per-page failures
// never abort the run; the only fatal errors are an unusable start URL and
// context cancellation.
func (c *Crawler) Run(ctx context.Context) (*CrawlResult, error) {
	runID := uuid.NewString()
	runLog := c.log.WithField("run_id", runID)

	start, err := wayback.Canonicalize(c.cfg.StartURL)
	if err != nil {
		return nil, fmt.Errorf("start URL: %w", err)
	}
	if !c.scope.InScope(start) {
		return nil, fmt.Errorf("%w: start URL '%s' is outside the configured site prefix",
			utils.ErrConfigValidation, start.Original)
	}

	front := frontier.New(c.cfg.MaxPages, c.log)
	front.Enqueue(start)

	// Records keyed for dedup, with first-seen order preserved.
	recordsByKey := make(map[string]models.ClinicRecord)
	var order []string

	for {
		if ctx.Err() != nil {
			runLog.Warnf("Crawl cancelled: %v", ctx.Err())
			return nil, ctx.Err()
		}
		u, ok := front.Next()
		if !ok {
			break
		}
		kind := c.scope.Classify(u)
		pageLog := runLog.WithFields(logrus.Fields{"url": u.Original, "kind": kind.String()})
		pageLog.Info("Processing page")

		html, err := c.fetcher.FetchHTML(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			pageLog.WithField("error_category", utils.CategorizeError(err)).
				Warnf("Fetch failed after retries: %v", err)
			front.MarkFailed(u, err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			parseErr := fmt.Errorf("%w: HTML: %v", utils.ErrParsing, err)
			pageLog.Warnf("Parse failed: %v", parseErr)
			front.MarkFailed(u, parseErr)
			continue
		}

		switch kind {
		case wayback.PageKindLanding, wayback.PageKindRegion:
			queued := c.discoverLinks(doc, u, front, pageLog)
			pageLog.Debugf("Queued %d new links", queued)
			// Some region pages carry full clinic details inline; keep them
			// when detection agrees.
			if c.extractor.LooksLikeClinicPage(doc) {
				c.collect(c.extractor.Assemble(u.Original, doc), recordsByKey, &order, pageLog)
			}
		case wayback.PageKindClinic:
			c.collect(c.extractor.Assemble(u.Original, doc), recordsByKey, &order, pageLog)
		default:
			pageLog.Debug("Out-of-scope page dequeued, skipping")
		}
	}

	result := &CrawlResult{
		RunID:         runID,
		PagesVisited:  front.Visited(),
		FetchFailures: front.Failures(),
	}
	for _, key := range order {
		record := recordsByKey[key]
		result.Report.Add(record)
		result.Records = append(result.Records, record)
	}

	runLog.WithFields(logrus.Fields{
		"pages_visited":  result.PagesVisited,
		"fetch_failures": len(result.FetchFailures),
		"records":        len(result.Records),
		"incomplete":     result.Report.IncompleteRecords,
	}).Info("Crawl finished")

	return result, nil
}

// discoverLinks resolves every anchor on the page and enqueues the in-scope
// ones. Malformed hrefs are dropped and logged; they never stop the crawl.
func (c *Crawler) discoverLinks(doc *goquery.Document, page wayback.CrawlURL, front *frontier.Frontier, pageLog *logrus.Entry) int {
	queued := 0
	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, exists := anchor.Attr("href")
		if !exists || href == "" {
			return
		}
		link, err := wayback.Resolve(page, href)
		if err != nil {
			pageLog.WithField("error_category", utils.CategorizeError(err)).
				Debugf("Dropping unparseable href '%s': %v", href, err)
			return
		}
		if !c.scope.InScope(link) {
			return
		}
		if front.Enqueue(link) {
			queued++
		}
	})
	return queued
}

// collect merges an assembled record into the result set. Records with no
// extracted fields at all are discarded; duplicates (same normalized name and
// address) keep whichever carries more fields, without losing their original
// position in the output order.
func (c *Crawler) collect(record models.ClinicRecord, recordsByKey map[string]models.ClinicRecord, order *[]string, pageLog *logrus.Entry) {
	if record.FieldCount() == 0 {
		pageLog.Debug("No clinic fields extracted, skipping record")
		return
	}
	key := record.DedupKey()
	existing, seen := recordsByKey[key]
	if !seen {
		recordsByKey[key] = record
		*order = append(*order, key)
		pageLog.WithField("clinic", record.Name).Info("Extracted clinic record")
		return
	}
	if record.FieldCount() > existing.FieldCount() {
		recordsByKey[key] = record
		pageLog.WithField("clinic", record.Name).Debug("Replaced duplicate record with richer extraction")
	}
}
