package facet

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"bibstats/internal/entity"
	"bibstats/internal/stats"
)

// Row is one displayed bucket: the key and one count per report column.
type Row struct {
	Key    int    `json:"key"`
	Label  string `json:"label,omitempty"`
	Values []int  `json:"values"`
}

// Series is the distribution of one column's bucket counts.
type Series struct {
	Name  string             `json:"name"`
	Stats stats.Distribution `json:"stats"`
}

type Report struct {
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Columns []string           `json:"columns"`
	Rows    []Row              `json:"rows"`
	Series  []Series           `json:"series,omitempty"`
	Stats   stats.Distribution `json:"stats"`
}

// Facet names double as output file names.
const (
	FieldPerPublication    = "field_per_publication"
	NewAuthorPerYear       = "new_author_per_year"
	PersonNameLength       = "person_name_length"
	WordsPerTitle          = "number_of_words_per_title"
	CharactersPerTitle     = "number_of_characters_per_title"
	ElectronicPerYear      = "ee_per_year"
	CrossrefPerBook        = "crossref_per_book"
	PagesPerCrossReference = "number_of_pages_per_crossref"
)

// Reports builds the eight facet reports, recording each distribution in rec.
func (a *Aggregator) Reports(rec *stats.Recorder) ([]Report, error) {
	builders := []func(*stats.Recorder) (Report, error){
		a.fieldReport,
		a.newAuthorReport,
		a.nameLengthReport,
		a.titleWordsReport,
		a.titleCharactersReport,
		a.electronicReport,
		a.crossrefReport,
		a.pagesReport,
	}
	out := make([]Report, 0, len(builders))
	for _, build := range builders {
		r, err := build(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// fieldReport splits record types into the two featured columns and an
// "other" column summed over every remaining type.
func (a *Aggregator) fieldReport(rec *stats.Recorder) (Report, error) {
	featured := a.opts.FeaturedTypes
	other := a.otherFieldCounts()
	columns := []Histogram[int]{a.fieldCounts[featured[0]], a.fieldCounts[featured[1]], other}

	r := Report{
		Name:    FieldPerPublication,
		Title:   fmt.Sprintf("Number of publication which have the same number of fields from 1 to %d", a.opts.RowCaps.FieldCount),
		Columns: []string{"Fields", a.title.String(featured[0]), a.title.String(featured[1]), "Other"},
	}

	seriesOrder := []struct {
		name string
		h    Histogram[int]
	}{
		{"Other", other},
		{featured[0], columns[0]},
		{featured[1], columns[1]},
	}
	for _, s := range seriesOrder {
		if len(s.h) == 0 {
			continue
		}
		d, err := rec.Record("Number Of Fields Per "+s.name, stats.Counts(s.h.Counts()))
		if err != nil {
			return r, err
		}
		r.Series = append(r.Series, Series{Name: s.name, Stats: d})
	}
	r.Stats = combine(r.Series)

	union := Histogram[int]{}
	for _, h := range columns {
		for k := range h {
			union[k] = 0
		}
	}
	for _, k := range limit(union.Keys(), a.opts.RowCaps.FieldCount) {
		r.Rows = append(r.Rows, Row{Key: k, Values: []int{columns[0][k], columns[1][k], columns[2][k]}})
	}
	return r, nil
}

// otherFieldCounts sums the histograms of every non-featured type at equal
// field-count keys.
func (a *Aggregator) otherFieldCounts() Histogram[int] {
	other := Histogram[int]{}
	for recordType, h := range a.fieldCounts {
		if recordType == a.opts.FeaturedTypes[0] || recordType == a.opts.FeaturedTypes[1] {
			continue
		}
		other.Merge(h)
	}
	return other
}

// combine folds per-column distributions into the facet summary: the five
// numbers and the sum add up, the moments take the largest column value.
func combine(series []Series) stats.Distribution {
	var d stats.Distribution
	if len(series) == 0 {
		return stats.Compute(nil)
	}
	for i, s := range series {
		x := s.Stats
		d.Count += x.Count
		d.Minimum += x.Minimum
		d.LowerQuartile += x.LowerQuartile
		d.Median += x.Median
		d.UpperQuartile += x.UpperQuartile
		d.Maximum += x.Maximum
		d.Sum += x.Sum
		if i == 0 {
			d.Mean, d.Variance, d.StandardDeviation = x.Mean, x.Variance, x.StandardDeviation
			continue
		}
		d.Mean = math.Max(d.Mean, x.Mean)
		d.Variance = math.Max(d.Variance, x.Variance)
		d.StandardDeviation = math.Max(d.StandardDeviation, x.StandardDeviation)
	}
	return d
}

// firstAppearances keeps, for every year in ascending order, only the names
// not seen in an earlier year.
func (a *Aggregator) firstAppearances() (map[int][]entity.Person, map[string]entity.Person) {
	seen := map[string]entity.Person{}
	byYear := make(map[int][]entity.Person, len(a.personsByYear))
	years := make([]int, 0, len(a.personsByYear))
	for y := range a.personsByYear {
		years = append(years, y)
	}
	slices.Sort(years)
	for _, y := range years {
		var fresh []entity.Person
		for name, p := range a.personsByYear[y] {
			if _, ok := seen[name]; ok {
				continue
			}
			fresh = append(fresh, p)
		}
		for _, p := range fresh {
			seen[p.Name] = p
		}
		slices.SortFunc(fresh, func(p, q entity.Person) int { return cmp.Compare(p.Name, q.Name) })
		byYear[y] = fresh
	}
	return byYear, seen
}

func (a *Aggregator) newAuthorReport(rec *stats.Recorder) (Report, error) {
	byYear, _ := a.firstAppearances()
	counts := Histogram[int]{}
	for y, persons := range byYear {
		counts[y] = len(persons)
	}
	return single(rec, Report{
		Name:    NewAuthorPerYear,
		Title:   "Number of authors/editors which made their first publication in the same year",
		Columns: []string{"Year", "New Authors / Editors"},
	}, "New Authors Or Editors Per Year", counts, 0)
}

// nameLengthReport buckets every name once, by its first appearance.
func (a *Aggregator) nameLengthReport(rec *stats.Recorder) (Report, error) {
	_, unique := a.firstAppearances()
	lengths := Histogram[int]{}
	for _, p := range unique {
		if p.Length == entity.Absent {
			continue
		}
		lengths.Add(p.Length)
	}
	return single(rec, Report{
		Name:    PersonNameLength,
		Title:   "Number of author/editor names which have the same number of characters",
		Columns: []string{"Characters", "Person names"},
	}, "Person Names Length", lengths, 0)
}

func (a *Aggregator) titleWordsReport(rec *stats.Recorder) (Report, error) {
	return single(rec, Report{
		Name:    WordsPerTitle,
		Title:   fmt.Sprintf("Number of titles which have the same number of words from 1 to %d", a.opts.RowCaps.TitleWords),
		Columns: []string{"Words", "Titles"},
	}, "Number Of Words Per Title", a.titleWords, a.opts.RowCaps.TitleWords)
}

func (a *Aggregator) titleCharactersReport(rec *stats.Recorder) (Report, error) {
	return single(rec, Report{
		Name:    CharactersPerTitle,
		Title:   fmt.Sprintf("Number of titles which have the same number of characters from 1 to %d", a.opts.RowCaps.TitleCharacters),
		Columns: []string{"Characters", "Titles"},
	}, "Number Of Characters Per Title", a.titleChars, a.opts.RowCaps.TitleCharacters)
}

func (a *Aggregator) electronicReport(rec *stats.Recorder) (Report, error) {
	return single(rec, Report{
		Name:    ElectronicPerYear,
		Title:   "Number of electronic versions made the same year",
		Columns: []string{"Year", "Electronic versions"},
	}, "Number Of Electronic Versions Per Year", a.eePerYear, 0)
}

// crossrefReport regroups targets by how often they are referenced: the row
// key is a reference count and the value is the number of books with it.
func (a *Aggregator) crossrefReport(rec *stats.Recorder) (Report, error) {
	books := Histogram[int]{}
	for _, n := range a.crossrefs {
		books.Add(n)
	}
	return single(rec, Report{
		Name:    CrossrefPerBook,
		Title:   fmt.Sprintf("Number of books which have the same number of cross references from 1 to %d", a.opts.RowCaps.Crossref),
		Columns: []string{"Cross References", "Books"},
	}, "Number Of Cross References Per Book", books, a.opts.RowCaps.Crossref)
}

func (a *Aggregator) pagesReport(rec *stats.Recorder) (Report, error) {
	return single(rec, Report{
		Name:    PagesPerCrossReference,
		Title:   fmt.Sprintf("Number of cross references which have the same number of pages from 1 to %d", a.opts.RowCaps.Pages),
		Columns: []string{"Pages", "Cross References"},
	}, "Number Of Pages Per Cross references", a.pageSpans, a.opts.RowCaps.Pages)
}

// single fills a one-column report from h. A cap of zero displays every row.
func single(rec *stats.Recorder, r Report, statsTitle string, h Histogram[int], rowCap int) (Report, error) {
	d, err := rec.Record(statsTitle, stats.Counts(h.Counts()))
	if err != nil {
		return r, err
	}
	r.Stats = d
	for _, k := range limit(h.Keys(), rowCap) {
		r.Rows = append(r.Rows, Row{Key: k, Values: []int{h[k]}})
	}
	return r, nil
}

func limit(keys []int, n int) []int {
	if n > 0 && len(keys) > n {
		return keys[:n]
	}
	return keys
}

// FirstAppearances returns, per year, the persons whose name had not
// appeared in any earlier year, sorted by name.
func (a *Aggregator) FirstAppearances() map[int][]entity.Person {
	byYear, _ := a.firstAppearances()
	return byYear
}
