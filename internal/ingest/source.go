package ingest

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Source is the forward-only input stream of one run.
type Source struct {
	io.Reader
	Path    string
	Size    int64
	closers []io.Closer
}

// Open opens path for a single forward read. Files ending in .gz are
// decompressed on the fly.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat source: %w", err)
	}

	src := &Source{Path: path, Size: info.Size(), closers: []io.Closer{f}}
	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open gzip source: %w", err)
		}
		src.closers = append([]io.Closer{zr}, src.closers...)
		r = zr
	}
	src.Reader = bufio.NewReaderSize(r, 1<<20)
	return src, nil
}

func (s *Source) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// charsetReader decodes the single-byte encodings dblp dumps are published in.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset: %s", label)
	}
}
