// Package citations extracts URL citations from web-search-augmented
// completions and ranks them to find the most likely product page.
package citations

import (
	"regexp"
	"strings"

	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
)

// Citation is a URL+title pair surfaced by a web search as supporting
// evidence. Duplicates are allowed; ranking deduplicates implicitly.
type Citation struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Sentinel values returned when no usable citation could be extracted.
// Callers must check for these rather than treating them as a real URL.
const (
	SentinelURL   = "URL not found"
	SentinelTitle = "Unknown Product"
)

// Sentinel returns the failure-signal citation.
func Sentinel() Citation {
	return Citation{URL: SentinelURL, Title: SentinelTitle}
}

// IsSentinel reports whether c is the extraction-failure sentinel.
func IsSentinel(c Citation) bool {
	return c.URL == SentinelURL
}

// IsSentinelURL reports whether url is the sentinel URL. Callers holding a
// bare URL use this instead of constructing a Citation.
func IsSentinelURL(url string) bool {
	return url == SentinelURL
}

var urlPattern = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

// Extract walks every content block of every output item and collects the
// url_citation annotations. If none are found it falls back to scanning the
// output text for URL-shaped substrings, and finally to the sentinel.
func Extract(resp *llm.SearchResponse) []Citation {
	var found []Citation

	if resp != nil {
		for _, item := range resp.Items {
			for _, block := range item.Blocks {
				for _, ann := range block.Annotations {
					if ann.Type != llm.AnnotationTypeURLCitation || ann.URL == "" {
						continue
					}
					found = append(found, Citation{URL: ann.URL, Title: ann.Title})
				}
			}
		}

		if len(found) == 0 {
			for _, match := range urlPattern.FindAllString(resp.OutputText, -1) {
				found = append(found, Citation{URL: match})
			}
		}
	}

	if len(found) == 0 {
		return []Citation{Sentinel()}
	}
	return found
}

// Scoring weights for ranking candidate URLs by path shape and brand match.
const (
	productPathScore      = 100
	blogPathPenalty       = -50
	collectionPathPenalty = -30
	staticPagePenalty     = -20
	brandMatchScore       = 10
)

// Score computes the ranking heuristic for a single citation. Rules compose
// additively on the lower-cased URL; a URL can match several at once.
func Score(c Citation, brandHint string) int {
	url := strings.ToLower(c.URL)
	score := 0

	if strings.Contains(url, "/products/") || strings.Contains(url, "/product/") {
		score += productPathScore
	}
	if strings.Contains(url, "/blogs/") || strings.Contains(url, "/blog/") {
		score += blogPathPenalty
	}
	if strings.Contains(url, "/collections/") || strings.Contains(url, "/collection/") {
		score += collectionPathPenalty
	}
	if strings.Contains(url, "/pages/") {
		score += staticPagePenalty
	}

	brand := strings.ReplaceAll(strings.ToLower(brandHint), " ", "")
	if brand != "" && strings.Contains(strings.ReplaceAll(url, " ", ""), brand) {
		score += brandMatchScore
	}

	return score
}

// SelectBest picks the highest-scoring citation, breaking ties in favor of
// the first-seen maximal element so identical input ordering is reproducible.
func SelectBest(cits []Citation, brandHint string) Citation {
	if len(cits) == 0 {
		return Sentinel()
	}

	best := cits[0]
	bestScore := Score(best, brandHint)
	for _, c := range cits[1:] {
		if s := Score(c, brandHint); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}
