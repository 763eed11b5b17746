package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/clinic-scraper/pkg/models"
	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// directionsCues mark anchors that lead to a map; the clinic address is
// usually the link text of exactly those anchors.
var directionsCues = []string{"directions", "maps", "find us"}

var addressTokenSplit = regexp.MustCompile(`[\s,]+`)

// ExtractAddress picks the clinic street address. Rule order: directions/maps
// anchors whose text passes the address shape test; any main-content anchor
// passing the shape test; plain text blocks in the main container passing a
// looser shape test.
func (e *Extractor) ExtractAddress(doc *goquery.Document) (models.Candidate, bool) {
	// Rule 1: anchors with a directions/maps cue in href, own text, or the
	// surrounding element's text.
	var winner models.Candidate
	found := false
	for _, container := range mainContainers(doc) {
		container.Find("a").Each(func(_ int, anchor *goquery.Selection) {
			if found {
				return
			}
			text := utils.NormalizeWhitespace(anchor.Text())
			if text == "" || !e.looksLikeAddress(text, true) {
				return
			}
			href, _ := anchor.Attr("href")
			nearby := ""
			if parent := anchor.Parent(); parent.Length() > 0 {
				nearby = parent.Text()
			}
			if containsAny(href, directionsCues) || containsAny(text, directionsCues) || containsAny(nearby, directionsCues) {
				winner = models.Candidate{
					Value:      text,
					Confidence: 0,
					Source:     models.SourceDirectionsLink,
					DocOrder:   docOrderIndex(doc, anchor),
				}
				found = true
			}
		})
		if found {
			return winner, true
		}
	}

	// Rule 2: any main-content anchor whose text has the address shape.
	for _, container := range mainContainers(doc) {
		container.Find("a").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
			text := utils.NormalizeWhitespace(anchor.Text())
			if text != "" && e.looksLikeAddress(text, false) {
				winner = models.Candidate{
					Value:      text,
					Confidence: 1,
					Source:     models.SourceDirectionsLink,
					DocOrder:   docOrderIndex(doc, anchor),
				}
				found = true
				return false
			}
			return true
		})
		if found {
			return winner, true
		}
	}

	// Rule 3: plain text blocks in the main container.
	for _, container := range mainContainers(doc) {
		container.Find("p, div, span").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := utils.NormalizeWhitespace(el.Text())
			if text != "" && len(text) <= 200 && e.looksLikeAddress(text, false) {
				winner = models.Candidate{
					Value:      text,
					Confidence: 2,
					Source:     models.SourceContentText,
					DocOrder:   docOrderIndex(doc, el),
				}
				found = true
				return false
			}
			return true
		})
		if found {
			return winner, true
		}
	}

	return models.Candidate{}, false
}

// looksLikeAddress applies the configurable address shape test: the text must
// contain a number and, in strict mode, both a street-type token and a state
// abbreviation; loose mode accepts either of the two.
func (e *Extractor) looksLikeAddress(text string, strict bool) bool {
	lower := strings.ToLower(text)

	hasDigit := strings.ContainsAny(lower, "0123456789")
	if !hasDigit {
		return false
	}

	hasStreet := false
	hasState := false
	for _, token := range addressTokenSplit.Split(lower, -1) {
		if _, ok := e.streetTokens[token]; ok {
			hasStreet = true
		}
		if _, ok := e.stateTokens[token]; ok {
			hasState = true
		}
	}

	if strict {
		return hasStreet && hasState
	}
	return hasStreet || hasState
}
