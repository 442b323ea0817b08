package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

type listFile struct {
	Lists []List `json:"lists" yaml:"lists"`
}

// DecodeLists parses list definitions. JSON is tried first for .json sources
// and YAML otherwise; both accept either a bare array or a {"lists": [...]}
// document. Every list is normalized and ids must be unique.
func DecodeLists(data []byte, source string) ([]List, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("widget: decode %s: empty document", source)
	}

	var (
		lists []List
		err   error
	)
	if strings.EqualFold(path.Ext(source), ".json") || strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		lists, err = decodeJSON([]byte(trimmed))
		if err != nil {
			// YAML is a superset of JSON, fall through for flow-style YAML.
			lists, err = decodeYAML([]byte(trimmed))
		}
	} else {
		lists, err = decodeYAML([]byte(trimmed))
	}
	if err != nil {
		return nil, fmt.Errorf("widget: decode %s: %w", source, err)
	}
	if len(lists) == 0 {
		return nil, fmt.Errorf("widget: decode %s: no lists defined", source)
	}

	seen := make(map[string]struct{}, len(lists))
	out := make([]List, 0, len(lists))
	for i, list := range lists {
		normalized, err := list.Normalize()
		if err != nil {
			return nil, fmt.Errorf("widget: decode %s: list %d: %w", source, i, err)
		}
		if _, dup := seen[normalized.ID]; dup {
			return nil, fmt.Errorf("widget: decode %s: %w: duplicate id %q", source, ErrInvalidList, normalized.ID)
		}
		seen[normalized.ID] = struct{}{}
		out = append(out, normalized)
	}
	return out, nil
}

func decodeJSON(data []byte) ([]List, error) {
	if strings.HasPrefix(string(data), "[") {
		var lists []List
		if err := json.Unmarshal(data, &lists); err != nil {
			return nil, err
		}
		return lists, nil
	}
	var file listFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return file.Lists, nil
}

func decodeYAML(data []byte) ([]List, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, errors.New("empty yaml document")
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var lists []List
		if err := node.Content[0].Decode(&lists); err != nil {
			return nil, err
		}
		return lists, nil
	}
	var file listFile
	if err := node.Content[0].Decode(&file); err != nil {
		return nil, err
	}
	return file.Lists, nil
}

// DefaultListPatterns selects the files LoadLists reads when no pattern is
// given.
var DefaultListPatterns = []string{"**/*.{yaml,yml}", "**/*.json"}

// LoadLists reads every file in fsys matching one of patterns (doublestar
// syntax, DefaultListPatterns when empty), in lexical path order. List ids
// must be unique across files.
func LoadLists(fsys fs.FS, patterns ...string) ([]List, error) {
	if fsys == nil {
		return nil, errors.New("widget: load lists: nil filesystem")
	}
	if len(patterns) == 0 {
		patterns = DefaultListPatterns
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("widget: load lists: bad pattern %q", pattern)
		}
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range patterns {
			if matched, _ := doublestar.Match(pattern, p); matched {
				paths = append(paths, p)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("widget: load lists: %w", err)
	}
	sort.Strings(paths)

	seen := make(map[string]string)
	var out []List
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("widget: load lists: %w", err)
		}
		lists, err := DecodeLists(data, p)
		if err != nil {
			return nil, err
		}
		for _, list := range lists {
			if prev, dup := seen[list.ID]; dup {
				return nil, fmt.Errorf("widget: load lists: %w: id %q defined in %s and %s", ErrInvalidList, list.ID, prev, p)
			}
			seen[list.ID] = p
			out = append(out, list)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("widget: load lists: no list definitions found")
	}
	return out, nil
}

// Find returns the list with id.
func Find(lists []List, id string) (List, bool) {
	for _, list := range lists {
		if list.ID == id {
			return list, true
		}
	}
	return List{}, false
}
