package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibstats/internal/anomaly"
)

const sevenWords = " 28 characters 7 words and 6              spaces        "

func TestNewPerson(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		length    int
		spaces    int
		flagged   bool
		canonical string
	}{
		{name: "blank", raw: "            ", length: Absent, spaces: 0, flagged: true, canonical: ""},
		{name: "single letter", raw: "     a      ", length: 1, spaces: 0, flagged: true, canonical: "a"},
		{name: "extra spaces", raw: sevenWords, length: 28, spaces: 6, flagged: true,
			canonical: "28 characters 7 words and 6 spaces"},
		{name: "regular", raw: "Serge Oliver", length: 11, spaces: 1, flagged: false, canonical: "Serge Oliver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := anomaly.NewLog("names", anomaly.Unbounded)
			p := NewPerson(tt.raw, "k1", log)
			assert.Equal(t, tt.length, p.Length)
			assert.Equal(t, tt.spaces, p.Spaces)
			assert.Equal(t, tt.canonical, p.Name)
			assert.Equal(t, tt.flagged, log.Len() == 1)
		})
	}
}

func TestNewPersonDiagnosticFormat(t *testing.T) {
	log := anomaly.NewLog("names", anomaly.Unbounded)
	p := NewPerson(sevenWords, "journals/x/Y99", log)

	assert.Equal(t, 13, p.ExtraSpaces)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, "[47] Name: "+strings.TrimSpace(sevenWords)+" [Key: journals/x/Y99]", log.Entries()[0])
}

func TestNewTitle(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		characters int
		words      int
		entries    int
	}{
		{name: "blank", raw: "            ", characters: Absent, words: Absent, entries: 1},
		{name: "single letter", raw: "     a      ", characters: 1, words: 1, entries: 1},
		{name: "extra spaces", raw: sevenWords, characters: 28, words: 7, entries: 1},
		{name: "short padded", raw: "ab  ", characters: 2, words: 1, entries: 1},
		{name: "regular", raw: "Streaming statistics.", characters: 20, words: 2, entries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := anomaly.NewLog("titles", anomaly.Unbounded)
			title := NewTitle(tt.raw, "k1", log)
			assert.Equal(t, tt.characters, title.Characters)
			assert.Equal(t, tt.words, title.Words)
			assert.Equal(t, tt.entries, log.Len())
			assert.Equal(t, tt.characters != Absent, title.Valid())
		})
	}
}

func TestNewTitleDiagnostics(t *testing.T) {
	log := anomaly.NewLog("titles", anomaly.Unbounded)
	NewTitle("a   b", "k2", log)

	assert.Equal(t, []string{
		"[Extra White Space: 2] Title: a   b [Key: k2]",
	}, log.Entries())

	log = anomaly.NewLog("titles", anomaly.Unbounded)
	NewTitle("a  ", "k3", log)
	assert.Equal(t, 1, log.Len())
}

func TestNewPageSpan(t *testing.T) {
	tests := []struct {
		raw   string
		pages int
	}{
		{raw: "", pages: Absent},
		{raw: "159", pages: 1},
		{raw: "195-58", pages: Absent},
		{raw: "i-iv 14-46", pages: Absent},
		{raw: "19-89", pages: 70},
		{raw: "14-14", pages: 1},
		{raw: "99999999999999999999-1", pages: Absent},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			log := anomaly.NewLog("pages", anomaly.Unbounded)
			p := NewPageSpan(tt.raw, "k", log)
			assert.Equal(t, tt.pages, p.Pages)
			assert.Equal(t, !p.Valid(), log.Len() == 1)
		})
	}
}

func TestNewPageSpanDiagnosticFormat(t *testing.T) {
	log := anomaly.NewLog("pages", anomaly.Unbounded)
	NewPageSpan("195-58", "conf/a/B1", log)
	assert.Equal(t, []string{"[Page: 195-58] [Key: conf/a/B1]"}, log.Entries())
}
