package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    source TEXT,
    records INTEGER,
    started_at TEXT,
    elapsed_ms INTEGER
);

CREATE TABLE IF NOT EXISTS facet_rows (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    facet TEXT,
    bucket INTEGER,
    label TEXT,
    column_name TEXT,
    value INTEGER
);

CREATE TABLE IF NOT EXISTS facet_stats (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    facet TEXT,
    series TEXT,
    count INTEGER,
    minimum REAL,
    lower_quartile REAL,
    median REAL,
    upper_quartile REAL,
    maximum REAL,
    sum REAL,
    mean REAL,
    variance REAL,
    standard_deviation REAL
);

CREATE TABLE IF NOT EXISTS anomalies (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    log TEXT,
    position INTEGER,
    entry TEXT
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
