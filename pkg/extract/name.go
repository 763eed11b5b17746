package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// Heading selectors for the name rule, most specific container first.
var nameHeadingSelectors = []string{
	"main h1",
	"article h1",
	".entry-content h1",
	".site-main h1",
	"h1",
}

var breadcrumbSelectors = []string{
	".breadcrumbs li:last-child",
	".breadcrumb li:last-child",
	`nav[aria-label*="breadcrumb"] li:last-child`,
}

// Headings that name the directory rather than a clinic.
var rejectedNames = map[string]struct{}{
	"our clinics": {},
	"clinics":     {},
}

// welcomePrefixes are boilerplate lead-ins stripped from headings and titles.
var welcomePrefixes = []string{"welcome to ", "welcome back to "}

// ExtractName picks the clinic name. Rule order: first heading inside a
// recognized main-content container, then the last breadcrumb segment, then
// the <title> with site suffixes stripped.
func (e *Extractor) ExtractName(doc *goquery.Document) (models.Candidate, bool) {
	// Rule 1: main content heading
	for _, selector := range nameHeadingSelectors {
		heading := doc.Find(selector).First()
		if heading.Length() == 0 {
			continue
		}
		cleaned := cleanHeading(heading.Text())
		if cleaned == "" {
			continue
		}
		if _, rejected := rejectedNames[strings.ToLower(cleaned)]; rejected {
			continue
		}
		return models.Candidate{
			Value:      cleaned,
			Confidence: 0,
			Source:     models.SourceMainHeading,
			DocOrder:   docOrderIndex(doc, heading),
		}, true
	}

	// Rule 2: last breadcrumb segment
	for _, selector := range breadcrumbSelectors {
		crumb := doc.Find(selector).First()
		if crumb.Length() == 0 {
			continue
		}
		cleaned := utils.NormalizeWhitespace(crumb.Text())
		if cleaned == "" {
			continue
		}
		if _, rejected := rejectedNames[strings.ToLower(cleaned)]; rejected {
			continue
		}
		return models.Candidate{
			Value:      cleaned,
			Confidence: 1,
			Source:     models.SourceBreadcrumb,
			DocOrder:   docOrderIndex(doc, crumb),
		}, true
	}

	// Rule 3: <title> with the site suffix stripped
	title := utils.NormalizeWhitespace(doc.Find("title").First().Text())
	if title != "" {
		for _, sep := range e.titleSeps {
			if idx := strings.Index(title, sep); idx >= 0 {
				title = title[:idx]
				break
			}
		}
		if cleaned := cleanHeading(title); cleaned != "" {
			return models.Candidate{
				Value:      cleaned,
				Confidence: 2,
				Source:     models.SourcePageTitle,
				DocOrder:   docOrderIndex(doc, doc.Find("title").First()),
			}, true
		}
	}

	return models.Candidate{}, false
}

// cleanHeading normalizes heading text and strips boilerplate prefixes.
func cleanHeading(text string) string {
	cleaned := utils.NormalizeWhitespace(text)
	lower := strings.ToLower(cleaned)
	for _, prefix := range welcomePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimLeft(cleaned[len(prefix):], " ")
		}
	}
	return cleaned
}
