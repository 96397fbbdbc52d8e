package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/williampepple1/similar-pages/internal/config"
)

// Extractor pulls a page title out of parsed HTML
type Extractor struct {
	Config *config.TitleConfig
}

// NewExtractor creates a new title extractor
func NewExtractor(config *config.TitleConfig) *Extractor {
	return &Extractor{
		Config: config,
	}
}

// Title tries each selector in order and returns the first non-empty match.
// Meta elements yield their content attribute, everything else its text.
func (e *Extractor) Title(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	for _, selector := range e.Config.Selectors {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}

		var value string
		if goquery.NodeName(s) == "meta" {
			value, _ = s.Attr("content")
		} else {
			value = s.Text()
		}

		if value = strings.Join(strings.Fields(value), " "); value != "" {
			return value
		}
	}
	return ""
}
