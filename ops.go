package fieldlist

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldlist/pkg/dom"
)

// OpKind names an edit replayed against a page.
type OpKind string

const (
	// OpAdd clicks the add affordance of a container: add:<container-id>.
	OpAdd OpKind = "add"
	// OpRemove clicks the remove affordance of a row: remove:<row-id>.
	OpRemove OpKind = "remove"
	// OpSet sets a control value: set:<control-name>=<value>.
	OpSet OpKind = "set"
)

var (
	// ErrInvalidOp reports an op string that does not parse.
	ErrInvalidOp = errors.New("fieldlist: invalid op")
	// ErrUnknownTarget reports an op whose container, row or control is absent.
	ErrUnknownTarget = errors.New("fieldlist: unknown target")
	// ErrNoAffordance reports a target without the element a click needs.
	ErrNoAffordance = errors.New("fieldlist: no affordance")
)

// Op is one edit.
type Op struct {
	Kind   OpKind
	Target string
	Value  string
}

// ParseOp parses "add:<id>", "remove:<row-id>" or "set:<name>=<value>".
func ParseOp(raw string) (Op, error) {
	kind, target, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || target == "" {
		return Op{}, fmt.Errorf("%w: %q", ErrInvalidOp, raw)
	}

	op := Op{Kind: OpKind(strings.ToLower(kind)), Target: target}
	switch op.Kind {
	case OpAdd, OpRemove:
	case OpSet:
		name, value, ok := strings.Cut(target, "=")
		if !ok || name == "" {
			return Op{}, fmt.Errorf("%w: %q needs <name>=<value>", ErrInvalidOp, raw)
		}
		op.Target, op.Value = name, value
	default:
		return Op{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidOp, kind)
	}
	return op, nil
}

// ParseOps parses every raw op, stopping at the first failure.
func ParseOps(raw []string) ([]Op, error) {
	ops := make([]Op, 0, len(raw))
	for _, r := range raw {
		op, err := ParseOp(r)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (o Op) String() string {
	if o.Kind == OpSet {
		return fmt.Sprintf("%s:%s=%s", o.Kind, o.Target, o.Value)
	}
	return fmt.Sprintf("%s:%s", o.Kind, o.Target)
}

// Apply replays ops in order. Adds and removes are dispatched as clicks on
// the page's affordances. The first failing op stops the replay; edits made
// by earlier ops stay applied.
func Apply(page *Page, ops ...Op) error {
	for i, op := range ops {
		if err := apply(page, op); err != nil {
			return fmt.Errorf("fieldlist: op %d (%s): %w", i, op, err)
		}
	}
	return nil
}

func apply(page *Page, op Op) error {
	doc := page.Document()
	switch op.Kind {
	case OpAdd:
		group, ok := page.Group(op.Target)
		if !ok {
			return fmt.Errorf("%w: container %q", ErrUnknownTarget, op.Target)
		}
		add := group.AddAffordance()
		if add == nil {
			return fmt.Errorf("%w: container %q has no add button", ErrNoAffordance, op.Target)
		}
		return doc.Click(add)
	case OpRemove:
		group, row, ok := page.Row(op.Target)
		if !ok {
			return fmt.Errorf("%w: row %q", ErrUnknownTarget, op.Target)
		}
		remove := group.RemoveAffordance(row)
		if remove == nil {
			return fmt.Errorf("%w: row %q has no remove button", ErrNoAffordance, op.Target)
		}
		return doc.Click(remove)
	case OpSet:
		control := findControl(doc.Root(), op.Target)
		if control == nil {
			return fmt.Errorf("%w: control %q", ErrUnknownTarget, op.Target)
		}
		return dom.SetValue(control, op.Value)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidOp, op.Kind)
	}
}

func findControl(root *html.Node, name string) *html.Node {
	for _, control := range dom.Controls(root) {
		if n, _ := dom.Attr(control, "name"); n == name {
			return control
		}
	}
	return nil
}
