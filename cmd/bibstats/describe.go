package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bibstats/internal/stats"
)

var describeTitle string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the distribution of numbers read from stdin",
	Long: `Read whitespace-separated numbers from stdin and print their distribution:
minimum, quartiles, median, maximum, mean, variance and standard deviation.

Example:
  seq 1 10 | bibstats describe`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, err := readSample(cmd.InOrStdin())
		if err != nil {
			return err
		}
		_, err = stats.NewRecorder(cmd.OutOrStdout()).Record(describeTitle, sample)
		return err
	},
}

// readSample parses every whitespace-separated token of r as a number.
func readSample(r io.Reader) ([]float64, error) {
	var sample []float64
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", tok, err)
		}
		sample = append(sample, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	return sample, nil
}

func init() {
	describeCmd.Flags().StringVar(&describeTitle, "title", "Sample", "title of the printed block")
	rootCmd.AddCommand(describeCmd)
}
