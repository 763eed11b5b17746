package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// maxServiceItemLen rejects lists whose items read like paragraphs;
// a services list is short noun phrases.
const maxServiceItemLen = 120

// ExtractServices returns the bulleted services list, in document order.
// Rule order: the first <ul> following a service cue phrase ("assist with",
// "services include", ...); otherwise the first plausible list in the main
// container. Items are trimmed verbatim, empty items dropped.
func (e *Extractor) ExtractServices(doc *goquery.Document) []string {
	// Rule 1: cue phrase, then the next list in document order.
	for _, container := range mainContainers(doc) {
		cueSeen := false
		var services []string
		container.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if !cueSeen {
				if containsAny(ownText(el), e.cuePhrases) {
					cueSeen = true
				}
				return true
			}
			if goquery.NodeName(el) == "ul" {
				services = listItems(el, 0)
				return false
			}
			return true
		})
		if len(services) > 0 {
			return services
		}
	}

	// Rule 2: first main-content list whose items all look like services.
	for _, container := range mainContainers(doc) {
		var services []string
		container.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
			items := listItems(ul, maxServiceItemLen)
			if len(items) > 0 {
				services = items
				return false
			}
			return true
		})
		if len(services) > 0 {
			return services
		}
	}

	return nil
}

// listItems collects the trimmed text of a list's items. A non-zero maxLen
// rejects the whole list when any item exceeds it.
func listItems(ul *goquery.Selection, maxLen int) []string {
	var items []string
	ok := true
	ul.Find("li").Each(func(_ int, li *goquery.Selection) {
		text := utils.NormalizeWhitespace(li.Text())
		if text == "" {
			return
		}
		if maxLen > 0 && len(text) > maxLen {
			ok = false
			return
		}
		items = append(items, text)
	})
	if !ok {
		return nil
	}
	return items
}
