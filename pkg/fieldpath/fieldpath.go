// Package fieldpath models the positional index carried by form control names.
//
// Two serializations are in use by field-list markup. Inputs carry the index
// as the first bracketed integer (`tags[0]`, `items[2][title]`). Selects carry
// it as the last hyphen separated segment of both name and id (`tags-0`). A
// Path keeps the name split into segments and knows which one holds the index,
// so rewriting the position never depends on ad hoc string patching.
package fieldpath

import (
	"strconv"
	"strings"
)

// Style selects the serialization a Path uses.
type Style int

const (
	// Bracket names carry the index as the first `[<digits>]` token.
	Bracket Style = iota
	// Hyphen names carry the index as the last `-` separated segment.
	Hyphen
)

func (s Style) String() string {
	switch s {
	case Bracket:
		return "bracket"
	case Hyphen:
		return "hyphen"
	default:
		return "unknown"
	}
}

// Path is an immutable field path value.
type Path struct {
	style    Style
	segments []string
	index    int // position of the index segment, -1 when absent
}

// Parse splits name according to style.
func Parse(name string, style Style) Path {
	switch style {
	case Hyphen:
		return parseHyphen(name)
	default:
		return parseBracket(name)
	}
}

// Rename returns name rewritten to carry index.
func Rename(name string, style Style, index int) string {
	return Parse(name, style).WithIndex(index).String()
}

// Style reports the serialization of p.
func (p Path) Style() Style {
	return p.style
}

// Segments returns a copy of the raw segments. Bracket segments keep their
// brackets so joining them reproduces the name.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// HasIndex reports whether the path carries an index segment.
func (p Path) HasIndex() bool {
	return p.index >= 0
}

// Index returns the numeric index, if the index segment is an integer.
func (p Path) Index() (int, bool) {
	if p.index < 0 {
		return 0, false
	}
	raw := p.segments[p.index]
	if p.style == Bracket {
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// WithIndex returns a copy of p positioned at index.
//
// Bracket paths without an index are returned unchanged. Hyphen paths always
// treat their last segment as the index, so a name without a hyphen is
// replaced by the index itself.
func (p Path) WithIndex(index int) Path {
	out := Path{
		style:    p.style,
		segments: p.Segments(),
		index:    p.index,
	}
	switch p.style {
	case Hyphen:
		if len(out.segments) == 0 {
			out.segments = []string{""}
		}
		out.index = len(out.segments) - 1
		out.segments[out.index] = strconv.Itoa(index)
	default:
		if out.index >= 0 {
			out.segments[out.index] = "[" + strconv.Itoa(index) + "]"
		}
	}
	return out
}

// String serializes the path.
func (p Path) String() string {
	if p.style == Hyphen {
		return strings.Join(p.segments, "-")
	}
	return strings.Join(p.segments, "")
}

func parseHyphen(name string) Path {
	segments := strings.Split(name, "-")
	return Path{
		style:    Hyphen,
		segments: segments,
		index:    len(segments) - 1,
	}
}

// parseBracket tokenizes name into plain runs and bracketed groups. The first
// group holding only ASCII digits becomes the index segment.
func parseBracket(name string) Path {
	path := Path{style: Bracket, index: -1}

	rest := name
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			path.segments = append(path.segments, rest)
			break
		}
		closing := strings.IndexByte(rest[open:], ']')
		if closing < 0 {
			path.segments = append(path.segments, rest)
			break
		}
		closing += open
		// Innermost group wins: "a[b[0]]" indexes on "[0]".
		if inner := strings.LastIndexByte(rest[:closing], '['); inner > open {
			open = inner
		}
		if open > 0 {
			path.segments = append(path.segments, rest[:open])
		}
		group := rest[open : closing+1]
		if path.index < 0 && isDigits(group[1:len(group)-1]) {
			path.index = len(path.segments)
		}
		path.segments = append(path.segments, group)
		rest = rest[closing+1:]
	}
	return path
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
