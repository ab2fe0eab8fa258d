// Package facet owns the long-lived histograms of one parse. Every update is
// called once per completed record; reports are built once at end of stream.
package facet

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bibstats/internal/anomaly"
	"bibstats/internal/entity"
)

// RowCaps bounds the number of rows a report displays. Statistics always use
// the whole histogram.
type RowCaps struct {
	FieldCount      int
	TitleWords      int
	TitleCharacters int
	Crossref        int
	Pages           int
}

type Options struct {
	// FeaturedTypes get their own column in the field-count report; all other
	// record types are summed into a third column.
	FeaturedTypes     [2]string
	FieldThresholds   map[string]int
	CrossrefThreshold int
	RowCaps           RowCaps
}

func DefaultOptions() Options {
	return Options{
		FeaturedTypes: [2]string{"article", "inproceedings"},
		FieldThresholds: map[string]int{
			"article":     260,
			"book":        400,
			"proceedings": 200,
		},
		CrossrefThreshold: 3000,
		RowCaps: RowCaps{
			FieldCount:      50,
			TitleWords:      50,
			TitleCharacters: 150,
			Crossref:        150,
			Pages:           100,
		},
	}
}

type Aggregator struct {
	opts  Options
	title cases.Caser

	fieldCounts   map[string]Histogram[int]
	personsByYear map[int]map[string]entity.Person
	titleWords    Histogram[int]
	titleChars    Histogram[int]
	eePerYear     Histogram[int]
	crossrefs     Histogram[string]
	pageSpans     Histogram[int]

	fieldLog    anomaly.Sink
	crossrefLog anomaly.Sink
}

// New returns an empty aggregator writing threshold diagnostics to logs.
func New(opts Options, logs *anomaly.Set) *Aggregator {
	a := &Aggregator{
		opts:          opts,
		title:         cases.Title(language.English),
		fieldCounts:   map[string]Histogram[int]{},
		personsByYear: map[int]map[string]entity.Person{},
		titleWords:    Histogram[int]{},
		titleChars:    Histogram[int]{},
		eePerYear:     Histogram[int]{},
		crossrefs:     Histogram[string]{},
		pageSpans:     Histogram[int]{},
		fieldLog:      anomaly.Discard,
		crossrefLog:   anomaly.Discard,
	}
	if logs != nil {
		a.fieldLog = logs.FieldCount
		a.crossrefLog = logs.Crossref
	}
	return a
}

// UpdateFieldDistribution counts one record of recordType with fieldCount
// direct fields and flags counts above the type's threshold.
func (a *Aggregator) UpdateFieldDistribution(recordType, key string, fieldCount int) {
	h, ok := a.fieldCounts[recordType]
	if !ok {
		h = Histogram[int]{}
		a.fieldCounts[recordType] = h
	}
	h.Add(fieldCount)

	if limit, ok := a.opts.FieldThresholds[recordType]; ok && fieldCount > limit {
		a.fieldLog.Record(fmt.Sprintf("%s key: %s --> # fields = %d", a.title.String(recordType), key, fieldCount))
	}
}

// UpdatePersonYear unions persons into the set of the given year. Repeated
// names in the same year collapse.
func (a *Aggregator) UpdatePersonYear(persons []entity.Person, year int) {
	if len(persons) == 0 || year == entity.Absent {
		return
	}
	set, ok := a.personsByYear[year]
	if !ok {
		set = make(map[string]entity.Person, len(persons))
		a.personsByYear[year] = set
	}
	for _, p := range persons {
		set[p.Name] = p
	}
}

func (a *Aggregator) UpdateTitleStats(t entity.Title) {
	if !t.Valid() {
		return
	}
	a.titleWords.Add(t.Words)
	a.titleChars.Add(t.Characters)
}

func (a *Aggregator) UpdateElectronicVersionStats(year int) {
	a.eePerYear.Add(year)
}

// UpdateCrossrefStats counts one reference to the target key and flags
// targets referenced more often than the threshold.
func (a *Aggregator) UpdateCrossrefStats(target string) {
	if n := a.crossrefs.Add(target); n > a.opts.CrossrefThreshold {
		a.crossrefLog.Record(target)
	}
}

func (a *Aggregator) UpdatePageStats(p entity.PageSpan) {
	if !p.Valid() {
		return
	}
	a.pageSpans.Add(p.Pages)
}
