// Package config loads the run configuration from YAML on top of defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bibstats/internal/facet"
	"bibstats/internal/ingest"
)

var validate = validator.New()

type Config struct {
	Input           string `yaml:"input" validate:"required"`
	OutputDir       string `yaml:"output_dir" validate:"required"`
	Database        string `yaml:"database,omitempty"`
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`

	LogLevel      string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string `yaml:"log_format" validate:"oneof=text json auto"`
	ProgressEvery int64  `yaml:"progress_every" validate:"gt=0"`

	AnomalyCapacity   int            `yaml:"anomaly_capacity" validate:"gt=0"`
	FieldThresholds   map[string]int `yaml:"field_thresholds" validate:"dive,gt=0"`
	CrossrefThreshold int            `yaml:"crossref_threshold" validate:"gt=0"`
	FeaturedTypes     []string       `yaml:"featured_types" validate:"len=2,dive,required"`
	HomePageType      string         `yaml:"home_page_type"`
	ExcludedNamespace string         `yaml:"excluded_namespace"`
	RowCaps           RowCaps        `yaml:"row_caps"`
}

type RowCaps struct {
	FieldCount      int `yaml:"field_count" validate:"gte=0"`
	TitleWords      int `yaml:"title_words" validate:"gte=0"`
	TitleCharacters int `yaml:"title_characters" validate:"gte=0"`
	Crossref        int `yaml:"crossref" validate:"gte=0"`
	Pages           int `yaml:"pages" validate:"gte=0"`
}

// Default mirrors the constants the statistics were historically computed with.
func Default() Config {
	f := facet.DefaultOptions()
	in := ingest.DefaultOptions()
	thresholds := make(map[string]int, len(f.FieldThresholds))
	for k, v := range f.FieldThresholds {
		thresholds[k] = v
	}
	return Config{
		OutputDir:         "out",
		LogLevel:          "info",
		LogFormat:         "auto",
		ProgressEvery:     500000,
		AnomalyCapacity:   100,
		FieldThresholds:   thresholds,
		CrossrefThreshold: f.CrossrefThreshold,
		FeaturedTypes:     []string{f.FeaturedTypes[0], f.FeaturedTypes[1]},
		HomePageType:      in.HomePageType,
		ExcludedNamespace: in.ExcludedNamespace,
		RowCaps: RowCaps{
			FieldCount:      f.RowCaps.FieldCount,
			TitleWords:      f.RowCaps.TitleWords,
			TitleCharacters: f.RowCaps.TitleCharacters,
			Crossref:        f.RowCaps.Crossref,
			Pages:           f.RowCaps.Pages,
		},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks the final configuration, after flag overrides.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Marshal renders c as YAML, used to bootstrap a workspace.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c Config) FacetOptions() facet.Options {
	thresholds := make(map[string]int, len(c.FieldThresholds))
	for k, v := range c.FieldThresholds {
		thresholds[k] = v
	}
	opts := facet.Options{
		FieldThresholds:   thresholds,
		CrossrefThreshold: c.CrossrefThreshold,
		RowCaps: facet.RowCaps{
			FieldCount:      c.RowCaps.FieldCount,
			TitleWords:      c.RowCaps.TitleWords,
			TitleCharacters: c.RowCaps.TitleCharacters,
			Crossref:        c.RowCaps.Crossref,
			Pages:           c.RowCaps.Pages,
		},
	}
	copy(opts.FeaturedTypes[:], c.FeaturedTypes)
	return opts
}

func (c Config) IngestOptions() ingest.Options {
	return ingest.Options{
		HomePageType:      c.HomePageType,
		ExcludedNamespace: c.ExcludedNamespace,
	}
}

// Level maps LogLevel to a slog level; unknown names fall back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
