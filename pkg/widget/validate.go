package widget

import (
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/goliatone/go-fieldlist/pkg/fieldpath"
)

// UniqueMessage is the user facing message for a repeated value.
const UniqueMessage = "All items must be unique"

// ErrNotUnique reports a list whose submitted values repeat.
var ErrNotUnique = errors.New("widget: all items must be unique")

// Entry is one submitted row value.
type Entry struct {
	Name  string
	Index int
	Value string
}

// Entries collects the submitted values belonging to list, ordered by row
// index. Names that do not parse in the list's control style are ignored.
func Entries(values url.Values, list List) []Entry {
	normalized, err := list.Normalize()
	if err != nil {
		return nil
	}
	style := fieldpath.Bracket
	if normalized.Control == ControlSelect {
		style = fieldpath.Hyphen
	}

	var entries []Entry
	for name, vals := range values {
		p := fieldpath.Parse(name, style)
		index, ok := p.Index()
		if !ok || p.WithIndex(0).String() != normalized.ControlName(0) {
			continue
		}
		for _, v := range vals {
			entries = append(entries, Entry{Name: name, Index: index, Value: v})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Index != entries[j].Index {
			return entries[i].Index < entries[j].Index
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// ValidateUnique fails when two submitted values of list are equal. Empty
// values count like any other.
func ValidateUnique(values url.Values, list List) error {
	seen := make(map[string]string)
	for _, entry := range Entries(values, list) {
		if prev, dup := seen[entry.Value]; dup {
			return fmt.Errorf("%w: %q repeated in %s and %s", ErrNotUnique, entry.Value, prev, entry.Name)
		}
		seen[entry.Value] = entry.Name
	}
	return nil
}
