package anomaly

// Set holds every anomaly log of one run. The facet logs are bounded by the
// configured capacity; the validator and date logs are keyed by raw content
// and keep everything.
type Set struct {
	FieldCount *Log
	Crossref   *Log
	Names      *Log
	Titles     *Log
	Pages      *Log
	Dates      *Log
}

func NewSet(capacity int) *Set {
	return &Set{
		FieldCount: NewLog("Keys of publication which have a number of fields very large compared to other", capacity),
		Crossref:   NewLog("Keys of books which have a number of cross references very large compared to other", capacity),
		Names:      NewLog("List of person names which have an unreliable number of characters", Unbounded),
		Titles:     NewLog("List of title which have an unreliable number of characters", Unbounded),
		Pages:      NewLog("Keys of cross references which have a number of pages with an invalid format", Unbounded),
		Dates:      NewLog("Keys of publications which have an unreliable modification date", Unbounded),
	}
}

// All lists the logs in the order they are flushed.
func (s *Set) All() []*Log {
	return []*Log{s.FieldCount, s.Names, s.Titles, s.Crossref, s.Pages, s.Dates}
}
