package entity

import (
	"fmt"
	"strings"

	"bibstats/internal/anomaly"
)

// Person is a normalized author or editor name: trimmed, with internal
// whitespace runs collapsed to one space. Two persons are the same person
// when their names are equal.
type Person struct {
	Name        string
	Length      int
	Spaces      int
	ExtraSpaces int
}

// NewPerson normalizes raw. The measures come from the trimmed text before
// collapsing. Names shorter than three characters or with runs of
// whitespace are recorded in sink, as written, but still returned.
func NewPerson(raw, key string, sink anomaly.Sink) Person {
	s := measure(raw)
	p := Person{
		Name:        strings.Join(strings.Fields(s.text), " "),
		Length:      s.characters(),
		Spaces:      s.spaces,
		ExtraSpaces: s.extra,
	}
	if sink != nil && (s.length < 3 || s.extra > 0) {
		sink.Record(fmt.Sprintf("[%d] Name: %s [Key: %s]", s.length, s.text, key))
	}
	return p
}
