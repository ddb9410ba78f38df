package registry

import (
	"hrdocs/internal"
	"hrdocs/internal/util"
)

// Index is a single-pass lookup table over the registry keyed by normalized
// (first name, last name). Built once per run, read-only afterwards.
type Index struct {
	ByName map[string]internal.PersonnelEntry
	Dupes  int
}

func NameKey(firstName, lastName string) string {
	return util.NormalizeName(firstName) + "|" + util.NormalizeName(lastName)
}

// BuildIndex indexes entries by normalized identity. When two registry rows
// share a key the first occurrence in file order wins.
func BuildIndex(entries []internal.PersonnelEntry) *Index {
	idx := &Index{ByName: make(map[string]internal.PersonnelEntry, len(entries))}
	for _, entry := range entries {
		key := NameKey(entry.FirstName, entry.LastName)
		if _, ok := idx.ByName[key]; ok {
			idx.Dupes++
			continue
		}
		idx.ByName[key] = entry
	}
	return idx
}

func (i *Index) Lookup(firstName, lastName string) (internal.PersonnelEntry, bool) {
	entry, ok := i.ByName[NameKey(firstName, lastName)]
	return entry, ok
}
