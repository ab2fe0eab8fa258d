// Package pipeline wires one run: a single pass over the source, report
// construction, then the output sinks in parallel.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"bibstats/internal/anomaly"
	"bibstats/internal/config"
	"bibstats/internal/db"
	"bibstats/internal/facet"
	"bibstats/internal/ingest"
	"bibstats/internal/mdate"
	"bibstats/internal/metrics"
	"bibstats/internal/report"
	"bibstats/internal/stats"
	"bibstats/internal/workspace"
)

// Result describes a completed run.
type Result struct {
	RunID   string
	Source  string
	Records int64
	Started time.Time
	Elapsed time.Duration
	Reports []facet.Report
	Logs    *anomaly.Set
}

// Run parses cfg.Input once and writes every configured output. Nothing is
// written to the output directory when the pass fails.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Source: cfg.Input, Started: time.Now()}
	boot := logger.With("stage", "BOOT")
	boot.Info("run started", "run_id", res.RunID, "input", cfg.Input, "output_dir", cfg.OutputDir)

	src, err := ingest.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	res.Logs = anomaly.NewSet(cfg.AnomalyCapacity)
	facets := facet.New(cfg.FacetOptions(), res.Logs)
	dates := mdate.New(res.Logs.Dates)
	pass := metrics.NewPass()

	ingestLog := logger.With("stage", "INGEST")
	ingestLog.Info("pass started", "size", humanize.IBytes(uint64(src.Size)))
	opts := cfg.IngestOptions()
	opts.OnRecord = func(recordType string, records int64) {
		pass.ObserveRecord(recordType)
		if records%cfg.ProgressEvery == 0 {
			ingestLog.Info("progress", "records", humanize.Comma(records), "elapsed", time.Since(res.Started).Round(time.Second))
		}
	}

	d := ingest.NewDispatcher(opts, facets, dates, res.Logs)
	if err := d.Run(&contextReader{ctx: ctx, r: src}); err != nil {
		ingestLog.Error("pass failed", "records", d.Records(), "error", err)
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(cfg.Input), err)
	}
	res.Records = d.Records()
	ingestLog.Info("pass finished", "records", humanize.Comma(res.Records))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	res.Reports, err = buildReports(filepath.Join(cfg.OutputDir, report.StatisticsFile), facets, dates)
	if err != nil {
		return nil, err
	}
	logger.Info("reports built", "stage", "FACET", "reports", len(res.Reports))

	res.Elapsed = time.Since(res.Started)
	pass.Finish(res.Elapsed, res.Logs.All())

	if errs := Emit(sinks(cfg, res, pass), 0); len(errs) > 0 {
		err := errors.Join(errs...)
		logger.Error("output failed", "stage", "REPORT", "error", err)
		return res, err
	}
	logger.Info("run finished", "stage", "REPORT", "elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// buildReports records every distribution in statsPath while building the
// facet reports followed by the modification-date reports.
func buildReports(statsPath string, facets *facet.Aggregator, dates *mdate.Aggregator) ([]facet.Report, error) {
	f, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("create statistics file: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	rec := stats.NewRecorder(bw)

	reports, err := facets.Reports(rec)
	if err != nil {
		return nil, err
	}
	dateReports, err := dates.Reports(rec)
	if err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("flush statistics file: %w", err)
	}
	return append(reports, dateReports...), nil
}

func sinks(cfg config.Config, res *Result, pass *metrics.Pass) []Sink {
	var out []Sink
	for _, r := range res.Reports {
		out = append(out, Sink{Name: r.Name, Write: func() error {
			return report.WriteFacet(cfg.OutputDir, r)
		}})
	}

	logs := res.Logs.All()
	out = append(out,
		Sink{Name: "anomalies", Write: func() error {
			return report.WriteAnomalies(filepath.Join(cfg.OutputDir, report.AnomalyFile), logs, res.Started)
		}},
		Sink{Name: "summary", Write: func() error {
			return workspace.SaveSummary(filepath.Join(cfg.OutputDir, report.SummaryFile), summaryOf(res))
		}},
	)

	if cfg.Database != "" {
		out = append(out, Sink{Name: "database", Write: func() error {
			_, err := db.PersistRun(cfg.Database, db.Run{
				ID:      res.RunID,
				Source:  res.Source,
				Records: res.Records,
				Started: res.Started,
				Elapsed: res.Elapsed,
			}, res.Reports, logs)
			return err
		}})
	}
	if cfg.MetricsTextfile != "" {
		out = append(out, Sink{Name: "metrics", Write: func() error {
			return pass.WriteTextfile(cfg.MetricsTextfile)
		}})
	}
	return out
}

func summaryOf(res *Result) workspace.Summary {
	counts := map[string]int{}
	for _, l := range res.Logs.All() {
		counts[l.Title()] = l.Len()
	}
	return workspace.Summary{
		RunID:     res.RunID,
		Source:    res.Source,
		Records:   res.Records,
		Started:   res.Started,
		Elapsed:   res.Elapsed.String(),
		Anomalies: counts,
		Reports:   res.Reports,
	}
}

// contextReader stops the pass at the next read once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
