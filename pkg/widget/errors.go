package widget

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldlist/pkg/fieldpath"
)

// ErrorMapping splits an error payload into messages per list id and
// form-level messages.
type ErrorMapping struct {
	Lists map[string][]string
	Form  []string
}

// MergeMessages concatenates message slices, trimming whitespace and dropping
// duplicates while preserving order.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors assigns server error messages to the lists they concern. Keys may
// be control names ("tags[1]", "color-0"), dotted paths ("data.tags.1") or
// JSON pointers ("/tags/1"). Keys matching no list become form-level messages
// so nothing is lost.
func MapErrors(lists []List, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Lists: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Lists = nil
		return mapping
	}

	byName := make(map[string]string, len(lists)*2)
	for _, list := range lists {
		normalized, err := list.Normalize()
		if err != nil {
			continue
		}
		byName[normalized.Name] = normalized.ID
		byName[normalized.ID] = normalized.ID
	}

	for _, key := range sortedKeys(payload) {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		id, ok := matchList(key, byName)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Lists[id] = MergeMessages(mapping.Lists[id], messages...)
	}

	if len(mapping.Lists) == 0 {
		mapping.Lists = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ValidateLists runs ValidateUnique for every unique list and returns the
// failures keyed by list id, ready for RenderOptions.Errors.
func ValidateLists(values url.Values, lists []List) map[string][]string {
	out := make(map[string][]string)
	for _, list := range lists {
		if !list.Unique {
			continue
		}
		if err := ValidateUnique(values, list); err != nil {
			out[strings.TrimSpace(list.ID)] = []string{UniqueMessage}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func matchList(key string, byName map[string]string) (string, bool) {
	if isFormLevelKey(key) {
		return "", false
	}
	trimmed := strings.TrimSpace(key)
	if id, ok := byName[trimmed]; ok {
		return id, true
	}

	// Select controls carry the index as the last hyphen segment.
	if p := fieldpath.Parse(trimmed, fieldpath.Hyphen); len(p.Segments()) > 1 {
		if _, ok := p.Index(); ok {
			segments := p.Segments()
			if id, ok := byName[strings.Join(segments[:len(segments)-1], "-")]; ok {
				return id, true
			}
		}
	}

	segments := stripNumericSegments(dropWrapperSegments(parsePathSegments(trimmed)))
	if len(segments) == 0 {
		return "", false
	}
	id, ok := byName[segments[0]]
	return id, ok
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
	}
	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
