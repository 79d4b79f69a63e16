package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vualidon/FoodRecallReportAgent/pkg/domain"
)

// government pages carry the publish date in a handful of fixed layouts, so
// the date is recovered by pattern match before the model sees the text
var (
	fdaMonthNameRe = regexp.MustCompile(`FDA Publish Date:\s*([A-Za-z]+)\s+(\d{1,2}),\s+(\d{4})`)
	fdaNumericRe   = regexp.MustCompile(`FDA Publish Date:\s*(\d{1,2})/(\d{1,2})/(\d{4})`)
	fdaISORe       = regexp.MustCompile(`FDA Publish Date:\s*(\d{4})-(\d{2})-(\d{2})`)
	usdaRe         = regexp.MustCompile(`([A-Za-z]+),\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*-\s*Current`)
)

var monthNums = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
}

// dateFromContent recovers the announcement date from the page text for the
// sources with known layouts. For FDA and USDA the result always wins over
// whatever the model extracted; a page without a recognizable date stamps the
// current date. Unknown sources return empty and defer to the model.
func dateFromContent(source domain.Source, content string, now time.Time) string {
	switch source {
	case domain.SourceFDA:
		return fdaDate(content, now)
	case domain.SourceUSDA:
		return usdaDate(content, now)
	default:
		return ""
	}
}

// fdaDate tries the three FDA publish-date layouts in order, first match wins
func fdaDate(content string, now time.Time) string {
	if m := fdaMonthNameRe.FindStringSubmatch(content); m != nil {
		if month, ok := monthNums[strings.ToLower(m[1])]; ok {
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}
	if m := fdaNumericRe.FindStringSubmatch(content); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	if m := fdaISORe.FindStringSubmatch(content); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	return now.Format("2006-01-02")
}

// usdaDate matches the "<Weekday>, MM/DD/YYYY - Current" banner USDA puts on
// active recall pages
func usdaDate(content string, now time.Time) string {
	if m := usdaRe.FindStringSubmatch(content); m != nil {
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		year, _ := strconv.Atoi(m[4])
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	return now.Format("2006-01-02")
}

// validDate reports whether s is a well-formed YYYY-MM-DD date. Format only,
// no range checks beyond what the layout enforces.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
