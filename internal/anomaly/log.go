// Package anomaly keeps the diagnostic logs of values that pass parsing but
// look unreliable. Logs never reject input; they only remember it.
package anomaly

import "slices"

// Unbounded is the capacity value for logs that keep every entry.
const Unbounded = 0

// Sink is the capability handed to validators and aggregators.
// Record reports whether the entry was kept.
type Sink interface {
	Record(entry string) bool
}

// Log is a set of diagnostic strings kept in first-seen order. A bounded log
// silently drops entries once it is full.
type Log struct {
	title    string
	capacity int
	seen     map[string]struct{}
	entries  []string
}

func NewLog(title string, capacity int) *Log {
	if capacity < 0 {
		capacity = Unbounded
	}
	return &Log{title: title, capacity: capacity, seen: map[string]struct{}{}}
}

func (l *Log) Record(entry string) bool {
	if l.Full() {
		return false
	}
	if _, ok := l.seen[entry]; ok {
		return false
	}
	l.seen[entry] = struct{}{}
	l.entries = append(l.entries, entry)
	return true
}

// Full reports whether a bounded log has reached its capacity.
func (l *Log) Full() bool {
	return l.capacity != Unbounded && len(l.entries) >= l.capacity
}

func (l *Log) Title() string { return l.title }

func (l *Log) Len() int { return len(l.entries) }

func (l *Log) Bounded() bool { return l.capacity != Unbounded }

// Entries returns the kept entries in first-seen order.
func (l *Log) Entries() []string {
	return slices.Clone(l.entries)
}

// Sorted returns the kept entries in lexical order.
func (l *Log) Sorted() []string {
	out := slices.Clone(l.entries)
	slices.Sort(out)
	return out
}

// Discard is a Sink that keeps nothing.
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(string) bool { return false }

// Emitted returns the entries in output order: bounded logs keep first-seen
// order, unbounded logs are sorted.
func (l *Log) Emitted() []string {
	if l.Bounded() {
		return l.Entries()
	}
	return l.Sorted()
}
