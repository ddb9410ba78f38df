package pipeline

import (
	"hrdocs/internal"
	"hrdocs/internal/registry"
)

type Matcher struct {
	index *registry.Index
}

func NewMatcher(entries []internal.PersonnelEntry) *Matcher {
	return &Matcher{index: registry.BuildIndex(entries)}
}

// Match resolves a record against the registry. Discarded records never reach
// the lookup: their unmatched outputs are unconditional and must not be
// overridden by a coincidental name hit.
func (m *Matcher) Match(record NormalizedRecord) internal.MatchOutcome {
	if record.Discarded() {
		return internal.MatchOutcome{}
	}
	entry, ok := m.index.Lookup(record.FirstName, record.LastName)
	if !ok {
		return internal.MatchOutcome{}
	}
	return internal.MatchOutcome{Matched: true, PersonNumber: entry.PersonNumber}
}

func (m *Matcher) Dupes() int {
	return m.index.Dupes
}
