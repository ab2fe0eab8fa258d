package anomaly

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedLogKeepsFirstEntries(t *testing.T) {
	l := NewLog("bounded", 100)
	for i := 0; i < 250; i++ {
		l.Record(fmt.Sprintf("entry-%03d", i))
	}

	entries := l.Entries()
	require.Len(t, entries, 100)
	assert.Equal(t, "entry-000", entries[0])
	assert.Equal(t, "entry-099", entries[99])
	assert.True(t, l.Full())
	assert.False(t, l.Record("late"))
}

func TestLogDeduplicates(t *testing.T) {
	l := NewLog("dup", 2)
	assert.True(t, l.Record("a"))
	assert.False(t, l.Record("a"))
	assert.True(t, l.Record("b"))
	assert.Equal(t, []string{"a", "b"}, l.Entries())
}

func TestUnboundedLogSorted(t *testing.T) {
	l := NewLog("names", Unbounded)
	for _, e := range []string{"c", "a", "b"} {
		l.Record(e)
	}
	assert.False(t, l.Full())
	assert.False(t, l.Bounded())
	assert.Equal(t, []string{"c", "a", "b"}, l.Entries())
	assert.Equal(t, []string{"a", "b", "c"}, l.Sorted())
}

func TestNewSet(t *testing.T) {
	s := NewSet(100)
	assert.Len(t, s.All(), 6)
	assert.True(t, s.FieldCount.Bounded())
	assert.True(t, s.Crossref.Bounded())
	assert.False(t, s.Names.Bounded())
	assert.False(t, Discard.Record("x"))
}

func TestEmittedOrder(t *testing.T) {
	bounded := NewLog("crossref", 10)
	unbounded := NewLog("pages", Unbounded)
	for _, e := range []string{"z", "m", "a"} {
		bounded.Record(e)
		unbounded.Record(e)
	}
	assert.Equal(t, []string{"z", "m", "a"}, bounded.Emitted())
	assert.Equal(t, []string{"a", "m", "z"}, unbounded.Emitted())
}
