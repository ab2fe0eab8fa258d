// Package ingest drives the single forward pass over the bibliography and
// commits every completed record to the aggregators exactly once.
package ingest

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bibstats/internal/anomaly"
	"bibstats/internal/entity"
)

// Nesting levels of the document.
const (
	levelDocument = 1
	levelRecord   = 2
	levelField    = 3
)

// Committer receives the contributions of one completed record. The
// dispatcher calls it in the order the methods are listed.
type Committer interface {
	UpdateFieldDistribution(recordType, key string, fieldCount int)
	UpdatePersonYear(persons []entity.Person, year int)
	UpdateTitleStats(t entity.Title)
	UpdateElectronicVersionStats(year int)
	UpdateCrossrefStats(target string)
	UpdatePageStats(p entity.PageSpan)
}

// DateObserver receives the modification date of every record as soon as
// the record starts.
type DateObserver interface {
	Observe(date, key string) error
}

// ProgressFn is called after each committed record.
type ProgressFn func(recordType string, records int64)

type Options struct {
	// HomePageType records are left out of the field-count distribution.
	HomePageType string
	// Records keyed in ExcludedNamespace contribute no title, and cross
	// references into it are not counted.
	ExcludedNamespace string
	OnRecord          ProgressFn
}

func DefaultOptions() Options {
	return Options{HomePageType: "www", ExcludedNamespace: "homepages"}
}

type Dispatcher struct {
	opts    Options
	facets  Committer
	dates   DateObserver
	logs    *anomaly.Set
	depth   int
	records int64
	rec     record
}

// record is the transient state of the record being traversed.
type record struct {
	typ     string
	key     string
	fields  int
	field   string
	year    int
	ee      bool
	persons []entity.Person

	person   strings.Builder
	yearText strings.Builder
	title    strings.Builder
	crossref strings.Builder
	pages    strings.Builder
}

func (r *record) reset() {
	r.typ, r.key, r.field = "", "", ""
	r.fields = 0
	r.year = entity.Absent
	r.ee = false
	r.persons = nil
	r.person.Reset()
	r.yearText.Reset()
	r.title.Reset()
	r.crossref.Reset()
	r.pages.Reset()
}

func NewDispatcher(opts Options, facets Committer, dates DateObserver, logs *anomaly.Set) *Dispatcher {
	if logs == nil {
		logs = anomaly.NewSet(anomaly.Unbounded)
	}
	d := &Dispatcher{opts: opts, facets: facets, dates: dates, logs: logs}
	d.rec.reset()
	return d
}

// Records is the number of records committed so far.
func (d *Dispatcher) Records() int64 {
	return d.records
}

// Run reads r to the end. Any error aborts the pass; records committed
// before the error stay committed.
func (d *Dispatcher) Run(r io.Reader) error {
	decoder := xml.NewDecoder(r)
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charsetReader

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("read source: %w", err)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStructure, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			err = d.start(t)
		case xml.EndElement:
			err = d.end()
		case xml.CharData:
			d.characters(t)
		}
		if err != nil {
			var recErr *RecordError
			if errors.As(err, &recErr) {
				recErr.Line, _ = decoder.InputPos()
			}
			return err
		}
	}
	if d.depth != 0 {
		return fmt.Errorf("%w: document ended at depth %d", ErrStructure, d.depth)
	}
	return nil
}

func (d *Dispatcher) start(t xml.StartElement) error {
	d.depth++
	name := t.Name.Local

	switch {
	case d.depth == levelRecord:
		d.rec.reset()
		d.rec.typ = name
		d.rec.key = attr(t, "key")
		if d.dates != nil {
			if err := d.dates.Observe(attr(t, "mdate"), d.rec.key); err != nil {
				return &RecordError{Key: d.rec.key, Err: fmt.Errorf("%w: %w", ErrMalformedDate, err)}
			}
		}
	case d.depth == levelField:
		d.rec.fields++
		d.rec.field = name
		if name == "ee" {
			d.rec.ee = true
		}
	case d.depth > levelField:
		if name == d.rec.field && routed(name) {
			return &RecordError{Key: d.rec.key, Text: name, Err: ErrNestedField}
		}
	}
	return nil
}

// characters routes text inside a field, including text of inline markup
// nested in it, to the buffer of that field's kind.
func (d *Dispatcher) characters(text xml.CharData) {
	if d.depth < levelField {
		return
	}
	switch d.rec.field {
	case "author", "editor":
		d.rec.person.Write(text)
	case "year":
		d.rec.yearText.Write(text)
	case "title":
		if !d.excluded(d.rec.key) {
			d.rec.title.Write(text)
		}
	case "crossref":
		d.rec.crossref.Write(text)
	case "pages":
		d.rec.pages.Write(text)
	}
}

func (d *Dispatcher) end() error {
	defer func() { d.depth-- }()

	switch d.depth {
	case levelField:
		err := d.endField()
		d.rec.field = ""
		return err
	case levelRecord:
		d.commit()
	}
	return nil
}

func (d *Dispatcher) endField() error {
	switch d.rec.field {
	case "author", "editor":
		if raw := d.rec.person.String(); raw != "" {
			d.rec.persons = append(d.rec.persons, entity.NewPerson(raw, d.rec.key, d.logs.Names))
		}
		d.rec.person.Reset()
	case "year":
		raw := strings.TrimSpace(d.rec.yearText.String())
		d.rec.yearText.Reset()
		if raw == "" {
			return nil
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			return &RecordError{Key: d.rec.key, Text: raw, Err: ErrMalformedYear}
		}
		d.rec.year = year
	}
	return nil
}

// commit hands the record to the aggregators in a fixed order: field count,
// persons by year, title, electronic version, cross reference, pages.
func (d *Dispatcher) commit() {
	r := &d.rec
	if r.typ != d.opts.HomePageType {
		d.facets.UpdateFieldDistribution(r.typ, r.key, r.fields)
	}
	d.facets.UpdatePersonYear(r.persons, r.year)
	if title := r.title.String(); title != "" {
		d.facets.UpdateTitleStats(entity.NewTitle(title, r.key, d.logs.Titles))
	}
	if r.ee && r.year != entity.Absent {
		d.facets.UpdateElectronicVersionStats(r.year)
	}
	if target := r.crossref.String(); target != "" && !d.excluded(target) {
		d.facets.UpdateCrossrefStats(target)
	}
	if pages := r.pages.String(); pages != "" {
		d.facets.UpdatePageStats(entity.NewPageSpan(pages, r.key, d.logs.Pages))
	}

	d.records++
	if d.opts.OnRecord != nil {
		d.opts.OnRecord(r.typ, d.records)
	}
	r.reset()
}

func (d *Dispatcher) excluded(key string) bool {
	return d.opts.ExcludedNamespace != "" && strings.HasPrefix(key, d.opts.ExcludedNamespace)
}

func routed(name string) bool {
	switch name {
	case "author", "editor", "year", "title", "crossref", "pages", "ee":
		return true
	}
	return false
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
