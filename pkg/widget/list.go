package widget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldlist/pkg/fieldpath"
)

// ControlKind selects the form control rendered in each row.
type ControlKind string

const (
	// ControlInput renders an <input> named <name>[<index>].
	ControlInput ControlKind = "input"
	// ControlSelect renders a <select> whose name and id are <name>-<index>.
	ControlSelect ControlKind = "select"
)

// Choice is one option of a select control.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// List describes one repeatable field list.
type List struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Label       string      `json:"label" yaml:"label"`
	Control     ControlKind `json:"control" yaml:"control"`
	InputType   string      `json:"inputType" yaml:"inputType"`
	Placeholder string      `json:"placeholder" yaml:"placeholder"`
	Values      []string    `json:"values" yaml:"values"`
	Choices     []Choice    `json:"choices" yaml:"choices"`
	MinRows     int         `json:"minRows" yaml:"minRows"`
	AddLabel    string      `json:"addLabel" yaml:"addLabel"`
	RemoveLabel string      `json:"removeLabel" yaml:"removeLabel"`
	Unique      bool        `json:"unique" yaml:"unique"`
}

// ErrInvalidList is wrapped by every validation failure of a List.
var ErrInvalidList = errors.New("widget: invalid list")

// Normalize trims the list, applies defaults and validates it. At least one
// row is always rendered so the container carries a row to clone.
func (l List) Normalize() (List, error) {
	l.ID = strings.TrimSpace(l.ID)
	if l.ID == "" {
		return List{}, fmt.Errorf("%w: id is required", ErrInvalidList)
	}
	if strings.ContainsAny(l.ID, " \t\n") {
		return List{}, fmt.Errorf("%w: id %q contains whitespace", ErrInvalidList, l.ID)
	}

	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		l.Name = l.ID
	}
	l.Label = strings.TrimSpace(l.Label)

	switch ControlKind(strings.ToLower(strings.TrimSpace(string(l.Control)))) {
	case "", ControlInput:
		l.Control = ControlInput
	case ControlSelect:
		l.Control = ControlSelect
		if len(l.Choices) == 0 {
			return List{}, fmt.Errorf("%w: select list %q has no choices", ErrInvalidList, l.ID)
		}
	default:
		return List{}, fmt.Errorf("%w: unknown control %q", ErrInvalidList, l.Control)
	}

	// Row inputs are renamed through their first bracketed index, so the base
	// name must not carry one of its own.
	if l.Control == ControlInput && fieldpath.Parse(l.Name, fieldpath.Bracket).HasIndex() {
		return List{}, fmt.Errorf("%w: input list name %q already carries an index", ErrInvalidList, l.Name)
	}

	if l.InputType = strings.TrimSpace(l.InputType); l.InputType == "" {
		l.InputType = "text"
	}
	if l.MinRows < 1 {
		l.MinRows = 1
	}
	if l.AddLabel = strings.TrimSpace(l.AddLabel); l.AddLabel == "" {
		l.AddLabel = "Add"
	}
	if l.RemoveLabel = strings.TrimSpace(l.RemoveLabel); l.RemoveLabel == "" {
		l.RemoveLabel = "Remove"
	}
	return l, nil
}

// RowCount is the number of rows rendered for the list.
func (l List) RowCount() int {
	return max(len(l.Values), l.MinRows, 1)
}

// RowID is the id of the row at index.
func (l List) RowID(index int) string {
	return "row-" + l.ID + "-" + strconv.Itoa(index)
}

// ControlName is the control name of the row at index.
func (l List) ControlName(index int) string {
	if l.Control == ControlSelect {
		return l.Name + "-" + strconv.Itoa(index)
	}
	return l.Name + "[" + strconv.Itoa(index) + "]"
}

// ControlID is the id of the control row holding the add button.
func (l List) ControlID() string {
	return "control-" + l.ID
}

// AddButtonID is the id of the add button.
func (l List) AddButtonID() string {
	return "field-list-" + l.ID + "-add-btn"
}

// RemoveButtonID is the id of the remove button in the row at index.
func (l List) RemoveButtonID(index int) string {
	return "field-list-" + l.ID + "-" + strconv.Itoa(index) + "-remove-btn"
}

func (l List) valueAt(index int) string {
	if index < len(l.Values) {
		return l.Values[index]
	}
	return ""
}
