package repeatable

import (
	"strconv"
	"strings"
)

// IndexAssigner derives row ids of the form <prefix>-<index>.
type IndexAssigner struct {
	prefix string
}

// NewIndexAssigner strips the trailing index segment from id and keeps the
// rest as the prefix. The id must contain a hyphen followed by a non-empty
// segment.
func NewIndexAssigner(id string) (IndexAssigner, error) {
	cut := strings.LastIndexByte(id, '-')
	if cut < 0 || cut == len(id)-1 {
		return IndexAssigner{}, &MissingIndexError{ID: id}
	}
	return IndexAssigner{prefix: id[:cut]}, nil
}

// Prefix returns the id prefix shared by every row.
func (a IndexAssigner) Prefix() string {
	return a.prefix
}

// ItemID returns the canonical id for the row at index.
func (a IndexAssigner) ItemID(index int) string {
	return a.prefix + "-" + strconv.Itoa(index)
}
