package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bibstats/internal/anomaly"
	"bibstats/internal/facet"
	"bibstats/internal/stats"
)

// Run identifies one completed pass.
type Run struct {
	ID      string
	Source  string
	Records int64
	Started time.Time
	Elapsed time.Duration
}

// PersistRun stores the reports and anomaly logs of one run in a single
// transaction and returns the run id. Earlier runs are kept.
func PersistRun(dbPath string, run Run, reports []facet.Report, logs []*anomaly.Log) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	conn, err := Open(dbPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs(id, source, records, started_at, elapsed_ms) VALUES(?,?,?,?,?)`,
		run.ID,
		run.Source,
		run.Records,
		run.Started.UTC().Format(time.RFC3339),
		run.Elapsed.Milliseconds(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range reports {
		if err := insertReport(tx, run.ID, r); err != nil {
			return "", err
		}
	}

	for _, l := range logs {
		for i, entry := range l.Emitted() {
			if _, err := tx.Exec(
				`INSERT INTO anomalies(run_id, log, position, entry) VALUES(?,?,?,?)`,
				run.ID, l.Title(), i, entry,
			); err != nil {
				return "", fmt.Errorf("insert anomaly: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}
	return run.ID, nil
}

func insertReport(tx *sql.Tx, runID string, r facet.Report) error {
	for _, row := range r.Rows {
		for i, v := range row.Values {
			column := ""
			if i+1 < len(r.Columns) {
				column = r.Columns[i+1]
			}
			if _, err := tx.Exec(
				`INSERT INTO facet_rows(run_id, facet, bucket, label, column_name, value) VALUES(?,?,?,?,?,?)`,
				runID, r.Name, row.Key, row.Label, column, v,
			); err != nil {
				return fmt.Errorf("insert facet row: %w", err)
			}
		}
	}

	series := []facet.Series{{Name: "all", Stats: r.Stats}}
	series = append(series, r.Series...)
	for _, s := range series {
		if err := insertStats(tx, runID, r.Name, s.Name, s.Stats); err != nil {
			return err
		}
	}
	return nil
}

func insertStats(tx *sql.Tx, runID, facetName, series string, d stats.Distribution) error {
	if _, err := tx.Exec(
		`INSERT INTO facet_stats(run_id, facet, series, count, minimum, lower_quartile, median, upper_quartile, maximum, sum, mean, variance, standard_deviation)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, facetName, series,
		d.Count, d.Minimum, d.LowerQuartile, d.Median, d.UpperQuartile, d.Maximum,
		d.Sum, d.Mean, d.Variance, d.StandardDeviation,
	); err != nil {
		return fmt.Errorf("insert facet stats: %w", err)
	}
	return nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
