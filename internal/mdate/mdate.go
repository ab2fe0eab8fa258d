// Package mdate counts record modification dates per month, year and day of
// month.
package mdate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bibstats/internal/anomaly"
	"bibstats/internal/facet"
	"bibstats/internal/stats"
)

// ErrMalformed is returned for dates whose month or day is not a number.
var ErrMalformed = errors.New("malformed modification date")

const (
	MonthlyModifications = "monthly_mdate"
	YearlyModifications  = "yearly_mdate"
	DailyModifications   = "daily_mdate"
)

type Aggregator struct {
	months [12]int
	days   [31]int
	years  facet.Histogram[string]
	log    anomaly.Sink
}

func New(log anomaly.Sink) *Aggregator {
	if log == nil {
		log = anomaly.Discard
	}
	return &Aggregator{years: facet.Histogram[string]{}, log: log}
}

// Observe counts one YYYY-MM-DD date. Out-of-range parts and a year that is
// not four digits are logged and the date is not counted; a missing date is
// logged the same way.
func (a *Aggregator) Observe(date, key string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		a.log.Record(fmt.Sprintf("[Key: %s] [Date: ]", key))
		return nil
	}
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return fmt.Errorf("%w %q", ErrMalformed, date)
	}
	year := parts[0]
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("%w %q: month: %v", ErrMalformed, date, err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return fmt.Errorf("%w %q: day: %v", ErrMalformed, date, err)
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || len(year) != 4 || strings.Trim(year, "0123456789") != "" {
		a.log.Record(fmt.Sprintf("[Key: %s] [Date: %s-%d-%d]", key, year, month, day))
		return nil
	}
	a.years.Add(year)
	a.months[month-1]++
	a.days[day-1]++
	return nil
}

// Reports builds the monthly, yearly and daily modification reports. Month
// and day buckets are always present, zero-filled.
func (a *Aggregator) Reports(rec *stats.Recorder) ([]facet.Report, error) {
	monthly := facet.Report{
		Name:    MonthlyModifications,
		Title:   "Monthly modification frequence of publications",
		Columns: []string{"Month", "Modifications"},
	}
	for i, n := range a.months {
		monthly.Rows = append(monthly.Rows, facet.Row{Key: i + 1, Label: time.Month(i + 1).String(), Values: []int{n}})
	}
	d, err := rec.Record("Number Of Modification Per Month", stats.Counts(a.months[:]))
	if err != nil {
		return nil, err
	}
	monthly.Stats = d

	yearly := facet.Report{
		Name:    YearlyModifications,
		Title:   "Yearly modification frequence of publications",
		Columns: []string{"Year", "Modifications"},
	}
	for _, y := range a.years.Keys() {
		// Observe only counts four-digit years.
		key, _ := strconv.Atoi(y)
		yearly.Rows = append(yearly.Rows, facet.Row{Key: key, Label: y, Values: []int{a.years[y]}})
	}
	if yearly.Stats, err = rec.Record("Number Of Modifications Per Year", stats.Counts(a.years.Counts())); err != nil {
		return nil, err
	}

	daily := facet.Report{
		Name:    DailyModifications,
		Title:   "Day of month modification frequence of publications",
		Columns: []string{"Day", "Modifications"},
	}
	for i, n := range a.days {
		daily.Rows = append(daily.Rows, facet.Row{Key: i + 1, Values: []int{n}})
	}
	if daily.Stats, err = rec.Record("Number Of Modifications Per Day Of Month", stats.Counts(a.days[:])); err != nil {
		return nil, err
	}

	return []facet.Report{monthly, yearly, daily}, nil
}
