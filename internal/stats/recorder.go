package stats

import (
	"fmt"
	"io"
)

// Recorder computes distributions and appends a numbered summary block for
// each one to w. The counter is the only state it keeps.
type Recorder struct {
	w     io.Writer
	count int
}

func NewRecorder(w io.Writer) *Recorder {
	if w == nil {
		w = io.Discard
	}
	return &Recorder{w: w}
}

// Record computes the distribution of sample and writes it under title.
func (r *Recorder) Record(title string, sample []float64) (Distribution, error) {
	d := Compute(sample)
	r.count++
	_, err := fmt.Fprintf(r.w,
		"\n____________________________\n\n%d. %s\n\n"+
			"Sample minimum = %g\nLower quartile = %.2f\nMedian = %.2f\nUpper quartile = %.2f\nSample maximum = %g\n\n"+
			"Arithmetic Mean = %.2f\nVariance = %.2f\nStandard Deviation = %.2f\n\nTotal = %g\n",
		r.count, title,
		d.Minimum, d.LowerQuartile, d.Median, d.UpperQuartile, d.Maximum,
		d.Mean, d.Variance, d.StandardDeviation, d.Sum,
	)
	if err != nil {
		return d, fmt.Errorf("write distribution summary: %w", err)
	}
	return d, nil
}

// Invocations reports how many distributions have been recorded.
func (r *Recorder) Invocations() int {
	return r.count
}
