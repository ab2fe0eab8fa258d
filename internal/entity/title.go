package entity

import (
	"fmt"

	"bibstats/internal/anomaly"
)

type Title struct {
	Text       string
	Words      int
	Characters int
	Spaces     int
}

// NewTitle records short titles and titles with whitespace runs as two
// independent diagnostics.
func NewTitle(raw, key string, sink anomaly.Sink) Title {
	s := measure(raw)
	t := Title{
		Text:       s.text,
		Words:      Absent,
		Characters: s.characters(),
		Spaces:     s.spaces,
	}
	if s.length > 0 {
		t.Words = s.spaces + 1
	}
	if sink == nil {
		return t
	}
	if s.length < 3 {
		sink.Record(fmt.Sprintf("[Length: %d] Title: %s [Key: %s]", s.length, t.Text, key))
	}
	if s.extra > 0 {
		sink.Record(fmt.Sprintf("[Extra White Space: %d] Title: %s [Key: %s]", s.extra, t.Text, key))
	}
	return t
}

// Valid reports whether both measures are usable.
func (t Title) Valid() bool {
	return t.Words != Absent && t.Characters != Absent
}
