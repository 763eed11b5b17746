package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
)

// ExtractEmail picks the clinic email from mailto: anchors in the main content
// area, skipping header/footer chrome. When several remain, the one closest in
// document order to the page's selected name/address element (refOrder) wins;
// ties keep the earlier anchor. refOrder < 0 means no reference element exists,
// in which case the first anchor in document order wins.
func (e *Extractor) ExtractEmail(doc *goquery.Document, refOrder int) (models.Candidate, bool) {
	var candidates []models.Candidate
	seen := make(map[string]struct{})

	for _, container := range mainContainers(doc) {
		container.Find(`a[href^="mailto:"]`).Each(func(_ int, anchor *goquery.Selection) {
			if anchor.ParentsFiltered("header, footer, .site-header, .site-footer").Length() > 0 {
				return
			}
			href, _ := anchor.Attr("href")
			email := emailFromHref(href)
			if email == "" {
				return
			}
			if _, dup := seen[email]; dup {
				return
			}
			seen[email] = struct{}{}
			candidates = append(candidates, models.Candidate{
				Value:      email,
				Confidence: 0,
				Source:     models.SourceMailtoLink,
				DocOrder:   docOrderIndex(doc, anchor),
			})
		})
		if len(candidates) > 0 {
			break
		}
	}

	if len(candidates) == 0 {
		return models.Candidate{}, false
	}

	best := candidates[0]
	if refOrder >= 0 {
		bestDist := distance(best.DocOrder, refOrder)
		for _, c := range candidates[1:] {
			if d := distance(c.DocOrder, refOrder); d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best, true
}

// emailFromHref extracts a plain address from a mailto: href,
// dropping any ?subject= style parameters.
func emailFromHref(href string) string {
	lower := strings.ToLower(href)
	if !strings.HasPrefix(lower, "mailto:") {
		return ""
	}
	email := href[len("mailto:"):]
	if idx := strings.Index(email, "?"); idx >= 0 {
		email = email[:idx]
	}
	return strings.TrimSpace(email)
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
