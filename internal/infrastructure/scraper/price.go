package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// Latvian store pages render prices as "20.59 €" or "20,59 €".
var priceRegex = regexp.MustCompile(`(\d+[.,]\d+)\s*€`)

// extractPrice pulls the first euro amount out of page text. The first match
// on a product page is the listing price; later matches are cross-sells.
func extractPrice(text string) (float64, bool) {
	m := priceRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
