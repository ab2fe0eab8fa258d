package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bibstats/internal/facet"
)

// Summary is the JSON record of one run.
type Summary struct {
	RunID     string         `json:"run_id"`
	Source    string         `json:"source"`
	Records   int64          `json:"records"`
	Started   time.Time      `json:"started"`
	Elapsed   string         `json:"elapsed"`
	Anomalies map[string]int `json:"anomalies"`
	Reports   []facet.Report `json:"reports"`
}

func SaveSummary(path string, summary Summary) error {
	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func LoadSummary(path string) (Summary, error) {
	var summary Summary
	raw, err := os.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("read summary: %w", err)
	}
	if err := json.Unmarshal(raw, &summary); err != nil {
		return summary, fmt.Errorf("decode summary: %w", err)
	}
	return summary, nil
}
