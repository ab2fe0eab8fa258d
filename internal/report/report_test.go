package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibstats/internal/anomaly"
	"bibstats/internal/facet"
)

func TestEncodeFacet(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeFacet(&buf, facet.Report{
		Columns: []string{"Fields", "Article", "Inproceedings", "Other"},
		Rows: []facet.Row{
			{Key: 5, Values: []int{0, 1, 0}},
			{Key: 6, Values: []int{1, 0, 2}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fields , Article , Inproceedings , Other\n5 , 0 , 1 , 0\n6 , 1 , 0 , 2\n", buf.String())
}

func TestEncodeFacetUsesLabels(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeFacet(&buf, facet.Report{
		Columns: []string{"Month", "Modifications"},
		Rows:    []facet.Row{{Key: 1, Label: "January", Values: []int{4}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Month , Modifications\nJanuary , 4\n", buf.String())
}

func TestWriteFacet(t *testing.T) {
	dir := t.TempDir()
	r := facet.Report{Name: facet.ElectronicPerYear, Columns: []string{"Year", "Electronic versions"}}
	require.NoError(t, WriteFacet(dir, r))

	raw, err := os.ReadFile(filepath.Join(dir, "ee_per_year.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Year , Electronic versions\n", string(raw))
}

func TestEncodeAnomalies(t *testing.T) {
	crossref := anomaly.NewLog("Crossref", 2)
	for _, e := range []string{"conf/b", "conf/a", "conf/c"} {
		crossref.Record(e)
	}
	pages := anomaly.NewLog("Pages", anomaly.Unbounded)
	pages.Record("[Page: x] [Key: b]")
	pages.Record("[Page: y] [Key: a]")

	var buf bytes.Buffer
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, EncodeAnomalies(&buf, []*anomaly.Log{crossref, pages}, at))

	want := "2024-03-01 10:00:00\n\n" +
		"Crossref\n\nconf/b\nconf/a\n" + separator + "\n\n" +
		"Pages\n\n[Page: x] [Key: b]\n[Page: y] [Key: a]\n" + separator + "\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFacetMissingDir(t *testing.T) {
	err := WriteFacet(filepath.Join(t.TempDir(), "missing"), facet.Report{Name: "x"})
	assert.Error(t, err)
}
