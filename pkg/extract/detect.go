package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeClinicPage reports whether a parsed page reads like a clinic
// detail page. The heuristic is deliberately simple: a page carrying at
// least two of {name, address, phone} qualifies, as does one whose main
// heading opens with the chain's "Welcome to" boilerplate. Region and
// landing pages fail both tests.
func (e *Extractor) LooksLikeClinicPage(doc *goquery.Document) bool {
	score := 0
	if _, ok := e.ExtractName(doc); ok {
		score++
	}
	if _, ok := e.ExtractAddress(doc); ok {
		score++
	}
	if _, ok := e.ExtractPhone(doc); ok {
		score++
	}
	if score >= 2 {
		return true
	}

	heading := doc.Find("h1").First()
	if heading.Length() > 0 {
		text := strings.ToLower(strings.TrimSpace(heading.Text()))
		if strings.HasPrefix(text, "welcome to ") {
			return true
		}
	}
	return false
}
