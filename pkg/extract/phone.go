package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// ExtractPhone picks a clinic-specific phone number from tel: anchors in the
// main content area. Numbers on the configured generic denylist (national
// booking lines and the like) produce no candidate at all; among the rest,
// the first in document order wins.
func (e *Extractor) ExtractPhone(doc *goquery.Document) (models.Candidate, bool) {
	var winner models.Candidate
	found := false

	for _, container := range mainContainers(doc) {
		container.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
			value := utils.NormalizeWhitespace(anchor.Text())
			if value == "" {
				// Fall back to the number embedded in the href
				href, _ := anchor.Attr("href")
				value = utils.NormalizeWhitespace(strings.TrimPrefix(href, "tel:"))
			}
			if value == "" {
				return true
			}
			if _, generic := e.phoneDeny[utils.DigitsOnly(value)]; generic {
				return true // Denylisted numbers never become candidates
			}
			winner = models.Candidate{
				Value:      value,
				Confidence: 0,
				Source:     models.SourceTelLink,
				DocOrder:   docOrderIndex(doc, anchor),
			}
			found = true
			return false
		})
		if found {
			return winner, true
		}
	}

	return models.Candidate{}, false
}
