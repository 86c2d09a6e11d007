package advice

import (
	"fmt"
	"sort"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// Table is an immutable condition → recommendation lookup.
type Table struct {
	name     string
	entries  map[assessment.Condition]string
	fallback string
}

// NewTable copies entries into a new Table. The fallback is returned for
// labels without an entry.
func NewTable(name string, entries map[assessment.Condition]string, fallback string) *Table {
	copied := make(map[assessment.Condition]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Table{name: name, entries: copied, fallback: fallback}
}

// Name returns the content set name.
func (t *Table) Name() string { return t.name }

// Recommend returns the advice for c, or the table fallback when c has no entry.
func (t *Table) Recommend(c assessment.Condition) string {
	if text, ok := t.entries[c]; ok {
		return text
	}
	return t.fallback
}

// Missing lists conditions from the closed set that have no non-empty entry.
func (t *Table) Missing() []assessment.Condition {
	var out []assessment.Condition
	for _, c := range assessment.AllConditions() {
		if t.entries[c] == "" {
			out = append(out, c)
		}
	}
	return out
}

// Content set names.
const (
	SetClinical = "clinical"
	SetSelfCare = "selfcare"
	SetPrompt   = "prompt"
)

var sets = map[string]*Table{
	SetClinical: NewTable(SetClinical, clinicalText, ""),
	SetSelfCare: NewTable(SetSelfCare, selfCareText, ""),
	SetPrompt:   NewTable(SetPrompt, clinicalText, promptFallback),
}

// Lookup returns the named content set.
func Lookup(name string) (*Table, error) {
	t, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("unknown content set %q (available: %v)", name, SetNames())
	}
	return t, nil
}

// SetNames lists the available content sets, sorted.
func SetNames() []string {
	names := make([]string, 0, len(sets))
	for n := range sets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
