package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		sample []float64
		want   Distribution
		sd     float64
	}{
		{
			name:   "half and list even",
			sample: seq(8),
			want: Distribution{Count: 8, Minimum: 1, LowerQuartile: 2.5, Median: 4.5, UpperQuartile: 6.5,
				Maximum: 8, Sum: 36, Mean: 4.5, Variance: 5.25},
			sd: 2.29,
		},
		{
			name:   "list odd half even",
			sample: seq(9),
			want: Distribution{Count: 9, Minimum: 1, LowerQuartile: 2.5, Median: 5, UpperQuartile: 7.5,
				Maximum: 9, Sum: 45, Mean: 5, Variance: 60.0 / 9},
			sd: 2.58,
		},
		{
			name:   "list even half odd",
			sample: seq(10),
			want: Distribution{Count: 10, Minimum: 1, LowerQuartile: 3, Median: 5.5, UpperQuartile: 8,
				Maximum: 10, Sum: 55, Mean: 5.5, Variance: 8.25},
			sd: 2.87,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.sample)
			assert.Equal(t, tt.want.Count, got.Count)
			assert.Equal(t, tt.want.Minimum, got.Minimum)
			assert.Equal(t, tt.want.LowerQuartile, got.LowerQuartile)
			assert.Equal(t, tt.want.Median, got.Median)
			assert.Equal(t, tt.want.UpperQuartile, got.UpperQuartile)
			assert.Equal(t, tt.want.Maximum, got.Maximum)
			assert.Equal(t, tt.want.Sum, got.Sum)
			assert.Equal(t, tt.want.Mean, got.Mean)
			assert.InDelta(t, tt.want.Variance, got.Variance, 1e-9)
			assert.InDelta(t, tt.sd, got.StandardDeviation, 0.005)
		})
	}
}

func TestComputeUnsortedInputIsNotMutated(t *testing.T) {
	sample := []float64{5, 1, 4, 2, 3}
	got := Compute(sample)

	assert.Equal(t, []float64{5, 1, 4, 2, 3}, sample)
	assert.Equal(t, 1.0, got.Minimum)
	assert.Equal(t, 5.0, got.Maximum)
	assert.Equal(t, 3.0, got.Median)
	// n=5: half is even and n is odd.
	assert.Equal(t, 1.5, got.LowerQuartile)
	assert.Equal(t, 4.5, got.UpperQuartile)
}

func TestComputeSmallSamples(t *testing.T) {
	empty := Compute(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, Sentinel, empty.Minimum)
	assert.Equal(t, Sentinel, empty.Maximum)
	assert.Equal(t, Sentinel, empty.Mean)
	assert.Equal(t, 0.0, empty.Sum)

	one := Compute([]float64{7})
	assert.Equal(t, 7.0, one.Minimum)
	assert.Equal(t, 7.0, one.Maximum)
	assert.Equal(t, 7.0, one.Sum)
	assert.Equal(t, Sentinel, one.Mean)
	assert.Equal(t, Sentinel, one.Median)
	assert.Equal(t, Sentinel, one.LowerQuartile)
	assert.Equal(t, 64.0, one.Variance)
	assert.Equal(t, 8.0, one.StandardDeviation)

	three := Compute([]float64{3, 1, 2})
	assert.Equal(t, 2.0, three.Median)
	assert.Equal(t, 2.0, three.Mean)
	assert.Equal(t, Sentinel, three.LowerQuartile)
	assert.Equal(t, Sentinel, three.UpperQuartile)
}

func TestRecorderNumbersInvocations(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)

	_, err := r.Record("Eight", seq(8))
	require.NoError(t, err)
	d, err := r.Record("Nine", seq(9))
	require.NoError(t, err)

	assert.Equal(t, 2, r.Invocations())
	assert.Equal(t, 5.0, d.Median)
	out := buf.String()
	assert.Contains(t, out, "1. Eight")
	assert.Contains(t, out, "2. Nine")
	assert.Contains(t, out, "Upper quartile = 7.50")
	assert.Contains(t, out, "Total = 45")
}
