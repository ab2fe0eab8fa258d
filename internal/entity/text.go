// Package entity turns raw field text into normalized values with a derived
// measure, recording values that look unreliable into an anomaly sink.
package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Absent is the measure of a value with no usable text.
const Absent = -1

// spacing is the whitespace accounting shared by names and titles.
type spacing struct {
	text   string
	length int
	spaces int
	extra  int
}

// measure trims raw and walks it once: the first whitespace rune of a run
// counts as a word gap, every further rune of the same run counts as extra.
func measure(raw string) spacing {
	text := strings.TrimSpace(norm.NFC.String(raw))
	s := spacing{text: text, length: utf8.RuneCountInString(text)}
	inSpace := false
	for _, r := range text {
		if !unicode.IsSpace(r) {
			inSpace = false
			continue
		}
		if inSpace {
			s.extra++
			continue
		}
		s.spaces++
		inSpace = true
	}
	return s
}

// characters is the rune count without any whitespace, or Absent.
func (s spacing) characters() int {
	if s.length == 0 {
		return Absent
	}
	return s.length - s.spaces - s.extra
}
