package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/Sriram-PR/clinic-scraper/pkg/config"
	"github.com/Sriram-PR/clinic-scraper/pkg/models"
	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// mainContentSelectors identify the page's primary content container, in
// preference order. Archived pages vary between themes, so several candidates
// are tried before falling back to the whole document.
var mainContentSelectors = []string{"main", "article", ".entry-content", ".site-main"}

// Extractor runs the per-field heuristic rules against parsed clinic pages.
// Each field has an ordered rule list: the first rule producing candidates
// wins, and within a rule the earliest element in document order wins.
// Extractors share no mutable state, so one Extractor serves a whole crawl.
type Extractor struct {
	streetTokens map[string]struct{}
	stateTokens  map[string]struct{}
	cuePhrases   []string            // lowercase service cue phrases
	phoneDeny    map[string]struct{} // digits-only generic numbers
	titleSeps    []string
	log          *logrus.Logger
}

// NewExtractor compiles the configured pattern sets into lookup form.
func NewExtractor(cfg config.ExtractionConfig, log *logrus.Logger) *Extractor {
	e := &Extractor{
		streetTokens: make(map[string]struct{}, len(cfg.StreetTypeTokens)),
		stateTokens:  make(map[string]struct{}, len(cfg.StateAbbreviations)),
		phoneDeny:    make(map[string]struct{}, len(cfg.GenericPhoneNumbers)),
		titleSeps:    cfg.TitleSeparators,
		log:          log,
	}
	for _, tok := range cfg.StreetTypeTokens {
		e.streetTokens[strings.ToLower(tok)] = struct{}{}
	}
	for _, tok := range cfg.StateAbbreviations {
		e.stateTokens[strings.ToLower(tok)] = struct{}{}
	}
	for _, phrase := range cfg.ServiceMarkerPhrases {
		e.cuePhrases = append(e.cuePhrases, strings.ToLower(phrase))
	}
	for _, num := range cfg.GenericPhoneNumbers {
		e.phoneDeny[utils.DigitsOnly(num)] = struct{}{}
	}
	return e
}

// Assemble runs all five field extractors over a parsed page and merges the
// winning candidates into an immutable ClinicRecord. A field with no winning
// candidate stays empty; that is expected, not an error.
func (e *Extractor) Assemble(pageURL string, doc *goquery.Document) models.ClinicRecord {
	record := models.ClinicRecord{URL: pageURL}

	// Name and address first: the email proximity rule needs their positions.
	refOrder := -1
	if name, ok := e.ExtractName(doc); ok {
		record.Name = name.Value
		refOrder = name.DocOrder
	}
	if addr, ok := e.ExtractAddress(doc); ok {
		record.Address = addr.Value
		if refOrder < 0 {
			refOrder = addr.DocOrder
		}
	}
	if phone, ok := e.ExtractPhone(doc); ok {
		record.Phone = phone.Value
	}
	if email, ok := e.ExtractEmail(doc, refOrder); ok {
		record.Email = email.Value
	}
	record.Services = e.ExtractServices(doc)

	return record
}

// mainContainers returns the page's content containers in preference order,
// falling back to the document body when no known container exists.
func mainContainers(doc *goquery.Document) []*goquery.Selection {
	var containers []*goquery.Selection
	for _, sel := range mainContentSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			containers = append(containers, s.First())
		}
	}
	if len(containers) == 0 {
		containers = append(containers, doc.Find("body").First())
	}
	return containers
}

// docOrderIndex returns sel's first node position in a pre-order walk of the
// whole document. Used as the concrete definition of "closeness" between
// elements; -1 when the selection is empty.
func docOrderIndex(doc *goquery.Document, sel *goquery.Selection) int {
	if sel.Length() == 0 {
		return -1
	}
	target := sel.Get(0)
	idx := -1
	doc.Find("*").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Get(0) == target {
			idx = i
			return false
		}
		return true
	})
	return idx
}

// ownText collects only the direct text children of sel's first node,
// ignoring text nested in child elements.
func ownText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for child := sel.Get(0).FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
			b.WriteString(" ")
		}
	}
	return utils.NormalizeWhitespace(b.String())
}

// containsAny reports whether lowercased text contains any of the phrases.
func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
