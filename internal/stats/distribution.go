package stats

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Sentinel marks a statistic that could not be computed for the sample size.
const Sentinel = -1.0

// Distribution is the summary of one sample. Statistics that need more
// observations than the sample holds are set to Sentinel.
type Distribution struct {
	Count             int     `json:"count"`
	Minimum           float64 `json:"minimum"`
	LowerQuartile     float64 `json:"lower_quartile"`
	Median            float64 `json:"median"`
	UpperQuartile     float64 `json:"upper_quartile"`
	Maximum           float64 `json:"maximum"`
	Sum               float64 `json:"sum"`
	Mean              float64 `json:"mean"`
	Variance          float64 `json:"variance"`
	StandardDeviation float64 `json:"standard_deviation"`
}

// Compute sorts a copy of sample and derives every statistic from it.
func Compute(sample []float64) Distribution {
	n := len(sample)
	d := Distribution{
		Count:             n,
		Minimum:           Sentinel,
		LowerQuartile:     Sentinel,
		Median:            Sentinel,
		UpperQuartile:     Sentinel,
		Maximum:           Sentinel,
		Mean:              Sentinel,
		Variance:          Sentinel,
		StandardDeviation: Sentinel,
	}
	if n == 0 {
		return d
	}

	s := &stats.Sample{Xs: append([]float64(nil), sample...)}
	s.Sort()
	xs := s.Xs

	d.Minimum, d.Maximum = s.Bounds()
	d.Sum = s.Sum()
	d.Median = median(xs)
	d.LowerQuartile = lowerQuartile(xs)
	d.UpperQuartile = upperQuartile(xs)
	if n >= 2 {
		d.Mean = d.Sum / float64(n)
	}
	d.Variance = variance(xs, d.Mean)
	d.StandardDeviation = math.Sqrt(d.Variance)
	return d
}

func median(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return Sentinel
	}
	if n%2 != 0 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

func lowerQuartile(xs []float64) float64 {
	n := len(xs)
	if n < 4 {
		return Sentinel
	}
	q := n / 4
	if (n/2)%2 != 0 {
		return xs[q]
	}
	return (xs[q-1] + xs[q]) / 2
}

// upperQuartile has one more branch than lowerQuartile: when the half is
// even and n is odd it averages upward from 3n/4. Reports depend on this.
func upperQuartile(xs []float64) float64 {
	n := len(xs)
	if n < 4 {
		return Sentinel
	}
	q := n * 3 / 4
	switch {
	case (n/2)%2 != 0:
		return xs[q]
	case n%2 != 0:
		return (xs[q] + xs[q+1]) / 2
	default:
		return (xs[q-1] + xs[q]) / 2
	}
}

// variance is the population variance around the reported mean, which is
// Sentinel for a single observation.
func variance(xs []float64, mean float64) float64 {
	var acc float64
	for _, x := range xs {
		d := x - mean
		acc += d * d
	}
	return acc / float64(len(xs))
}

// Counts converts histogram bucket counts into a sample.
func Counts(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
