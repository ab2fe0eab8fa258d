package db

import (
	"path/filepath"
	"testing"
	"time"

	"bibstats/internal/anomaly"
	"bibstats/internal/facet"
	"bibstats/internal/stats"
)

func TestPersistRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bibstats.db")
	reports := []facet.Report{
		{
			Name:    facet.FieldPerPublication,
			Columns: []string{"Fields", "Article", "Inproceedings", "Other"},
			Rows: []facet.Row{
				{Key: 5, Values: []int{0, 1, 0}},
				{Key: 6, Values: []int{1, 0, 0}},
			},
			Series: []facet.Series{
				{Name: "article", Stats: stats.Compute([]float64{1})},
				{Name: "inproceedings", Stats: stats.Compute([]float64{1})},
			},
			Stats: stats.Compute([]float64{1, 1}),
		},
		{
			Name:    facet.ElectronicPerYear,
			Columns: []string{"Year", "Electronic versions"},
			Rows:    []facet.Row{{Key: 1996, Values: []int{3}}},
			Stats:   stats.Compute([]float64{3}),
		},
	}
	names := anomaly.NewLog("names", anomaly.Unbounded)
	names.Record("[2] Name: Al [Key: k]")
	pages := anomaly.NewLog("pages", anomaly.Unbounded)

	id, err := PersistRun(dbPath, Run{Source: "dblp.xml", Records: 3, Started: time.Now(), Elapsed: time.Second}, reports, []*anomaly.Log{names, pages})
	if err != nil {
		t.Fatalf("persist run: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a generated run id")
	}

	checks := map[string]int{
		"runs":        1,
		"facet_rows":  7,
		"facet_stats": 4,
		"anomalies":   1,
	}
	for table, want := range checks {
		got, err := CountRows(dbPath, table)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Fatalf("expected %d rows in %s, got %d", want, table, got)
		}
	}
}

func TestPersistRunKeepsEarlierRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bibstats.db")
	for i := 0; i < 2; i++ {
		if _, err := PersistRun(dbPath, Run{Source: "dblp.xml"}, nil, nil); err != nil {
			t.Fatalf("persist run %d: %v", i, err)
		}
	}
	runs, err := CountRows(dbPath, "runs")
	if err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}
