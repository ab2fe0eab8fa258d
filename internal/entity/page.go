package entity

import (
	"fmt"
	"regexp"
	"strconv"

	"bibstats/internal/anomaly"
)

var (
	singlePage = regexp.MustCompile(`^\d+$`)
	pageRange  = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

// PageSpan is the number of pages covered by a pages field, or Absent.
type PageSpan struct {
	Raw   string
	Pages int
}

// NewPageSpan accepts "n" (one page) and "a-b" with b >= a. Anything else,
// including a descending range, is recorded in sink and yields Absent.
func NewPageSpan(raw, key string, sink anomaly.Sink) PageSpan {
	p := PageSpan{Raw: raw, Pages: spanOf(raw)}
	if p.Pages == Absent && sink != nil {
		sink.Record(fmt.Sprintf("[Page: %s] [Key: %s]", raw, key))
	}
	return p
}

func spanOf(raw string) int {
	if singlePage.MatchString(raw) {
		return 1
	}
	m := pageRange.FindStringSubmatch(raw)
	if m == nil {
		return Absent
	}
	from, err := strconv.Atoi(m[1])
	if err != nil {
		return Absent
	}
	to, err := strconv.Atoi(m[2])
	if err != nil {
		return Absent
	}
	switch diff := to - from; {
	case diff == 0:
		return 1
	case diff > 0:
		return diff
	default:
		return Absent
	}
}

func (p PageSpan) Valid() bool {
	return p.Pages != Absent
}
