package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSample(t *testing.T) {
	sample, err := readSample(strings.NewReader("1 2\n3.5\n\n4"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3.5, 4}, sample)

	_, err = readSample(strings.NewReader("1 two"))
	assert.Error(t, err)
}

func TestDescribeCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("1 2 3 4 5 6 7 8"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"describe", "--title", "Eight"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "1. Eight")
	assert.Contains(t, out.String(), "Median = 4.50")
	assert.Contains(t, out.String(), "Total = 36")
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "json", slog.LevelInfo).Info("hello", "stage", "BOOT")
	assert.Contains(t, buf.String(), `"stage":"BOOT"`)

	buf.Reset()
	newLogger(&buf, "auto", slog.LevelInfo).Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "non-terminal writers get JSON")

	buf.Reset()
	newLogger(&buf, "text", slog.LevelWarn).Info("hidden")
	assert.Empty(t, buf.String())
}

func TestCommandErrorsAreReturnedNotPrinted(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"describe", "unexpected"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.Error(t, rootCmd.Execute())
	assert.Empty(t, stderr.String())
}
