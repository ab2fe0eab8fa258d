// Package report writes facet reports and anomaly logs as text files.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bibstats/internal/anomaly"
	"bibstats/internal/facet"
)

const (
	columnSeparator = " , "
	AnomalyFile     = "anomalies.log"
	StatisticsFile  = "statistical_distribution.txt"
	SummaryFile     = "summary.json"
)

var separator = strings.Repeat("_", 40)

// FacetPath is the row file of the named facet inside dir.
func FacetPath(dir, name string) string {
	return filepath.Join(dir, name+".csv")
}

// WriteFacet writes r's header and displayed rows to dir/<name>.csv.
func WriteFacet(dir string, r facet.Report) error {
	return writeFile(FacetPath(dir, r.Name), func(w io.Writer) error {
		return EncodeFacet(w, r)
	})
}

func EncodeFacet(w io.Writer, r facet.Report) error {
	if _, err := fmt.Fprintln(w, strings.Join(r.Columns, columnSeparator)); err != nil {
		return err
	}
	fields := make([]string, 0, 4)
	for _, row := range r.Rows {
		fields = fields[:0]
		if row.Label != "" {
			fields = append(fields, row.Label)
		} else {
			fields = append(fields, strconv.Itoa(row.Key))
		}
		for _, v := range row.Values {
			fields = append(fields, strconv.Itoa(v))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, columnSeparator)); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnomalies writes every log under its header, in the given order.
func WriteAnomalies(path string, logs []*anomaly.Log, at time.Time) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeAnomalies(w, logs, at)
	})
}

func EncodeAnomalies(w io.Writer, logs []*anomaly.Log, at time.Time) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", at.Format(time.DateTime)); err != nil {
		return err
	}
	for _, l := range logs {
		if _, err := fmt.Fprintf(w, "%s\n\n", l.Title()); err != nil {
			return err
		}
		for _, entry := range l.Emitted() {
			if _, err := fmt.Fprintln(w, entry); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", separator); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	bw := bufio.NewWriter(f)
	if err := encode(bw); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
