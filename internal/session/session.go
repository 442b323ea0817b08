// Package session runs an interactive editing loop over an instrumented page.
// Rows are added and removed by clicking the page's own affordances, so the
// listeners bound by package repeatable do the work.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldlist/internal/prompt"
	"github.com/goliatone/go-fieldlist/pkg/dom"
	"github.com/goliatone/go-fieldlist/pkg/repeatable"
)

// Menu entries.
const (
	ActionAdd    = "Add row"
	ActionRemove = "Remove row"
	ActionSet    = "Set value"
	ActionShow   = "Show values"
	ActionDone   = "Done"
)

var actions = []string{ActionAdd, ActionRemove, ActionSet, ActionShow, ActionDone}

// ErrNoGroups is returned when the page has nothing to edit.
var ErrNoGroups = errors.New("session: page has no field lists")

// Option configures Run.
type Option func(*runner)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type runner struct {
	page   *repeatable.Page
	driver prompt.Driver
	logger *zap.Logger
}

// Run loops until the user picks Done or the driver fails. Failed edits are
// reported through driver.Info and the loop continues.
func Run(ctx context.Context, page *repeatable.Page, driver prompt.Driver, options ...Option) error {
	if page == nil || driver == nil {
		return errors.New("session: page and driver are required")
	}
	if len(page.Groups()) == 0 {
		return ErrNoGroups
	}

	r := &runner{page: page, driver: driver, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	for {
		idx, err := driver.Select(ctx, prompt.SelectConfig{
			Message: "Action",
			Options: actions,
		})
		if err != nil {
			return err
		}
		action := actions[idx]
		if action == ActionDone {
			return nil
		}

		r.logger.Debug("session action", zap.String("action", action))
		if err := r.do(ctx, action); err != nil {
			if isDriverErr(err) {
				return err
			}
			r.logger.Debug("session action failed", zap.String("action", action), zap.Error(err))
			if err := driver.Info(ctx, "error: "+err.Error()); err != nil {
				return err
			}
		}
	}
}

// driverError marks failures of the prompt driver itself, which end the
// session instead of being reported.
type driverError struct{ err error }

func (e driverError) Error() string { return e.err.Error() }
func (e driverError) Unwrap() error { return e.err }

func isDriverErr(err error) bool {
	var de driverError
	return errors.As(err, &de)
}

func (r *runner) do(ctx context.Context, action string) error {
	if action == ActionShow {
		return r.info(ctx, FormatValues(r.page))
	}

	group, err := r.pickGroup(ctx)
	if err != nil {
		return err
	}

	switch action {
	case ActionAdd:
		add := group.AddAffordance()
		if add == nil {
			return fmt.Errorf("session: %q has no add affordance", group.ContainerID())
		}
		if err := r.page.Document().Click(add); err != nil {
			return err
		}
		rows := group.Rows()
		return r.info(ctx, "added "+dom.ID(rows[len(rows)-1]))
	case ActionRemove:
		row, err := r.pickRow(ctx, group)
		if err != nil {
			return err
		}
		removed := dom.ID(row)
		remove := group.RemoveAffordance(row)
		if remove == nil {
			return fmt.Errorf("session: row %q has no remove affordance", removed)
		}
		if err := r.page.Document().Click(remove); err != nil {
			return err
		}
		return r.info(ctx, "removed "+removed)
	case ActionSet:
		row, err := r.pickRow(ctx, group)
		if err != nil {
			return err
		}
		return r.setValue(ctx, row)
	}
	return fmt.Errorf("session: unknown action %q", action)
}

func (r *runner) pickGroup(ctx context.Context) (*repeatable.Group, error) {
	groups := r.page.Groups()
	if len(groups) == 1 {
		return groups[0], nil
	}
	options := make([]string, len(groups))
	for i, g := range groups {
		options[i] = g.ContainerID()
	}
	idx, err := r.driver.Select(ctx, prompt.SelectConfig{Message: "Field list", Options: options})
	if err != nil {
		return nil, driverError{err}
	}
	return groups[idx], nil
}

func (r *runner) pickRow(ctx context.Context, group *repeatable.Group) (*html.Node, error) {
	rows := group.Rows()
	if len(rows) == 0 {
		return nil, &repeatable.MissingRowError{Container: group.ContainerID(), Op: "select"}
	}
	options := make([]string, len(rows))
	for i, row := range rows {
		options[i] = dom.ID(row)
	}
	idx, err := r.driver.Select(ctx, prompt.SelectConfig{Message: "Row", Options: options})
	if err != nil {
		return nil, driverError{err}
	}
	return rows[idx], nil
}

func (r *runner) setValue(ctx context.Context, row *html.Node) error {
	controls := dom.Controls(row)
	if len(controls) == 0 {
		return fmt.Errorf("session: row %q has no named control", dom.ID(row))
	}

	control := controls[0]
	if len(controls) > 1 {
		names := make([]string, len(controls))
		for i, c := range controls {
			names[i], _ = dom.Attr(c, "name")
		}
		idx, err := r.driver.Select(ctx, prompt.SelectConfig{Message: "Control", Options: names})
		if err != nil {
			return driverError{err}
		}
		control = controls[idx]
	}
	name, _ := dom.Attr(control, "name")

	var value string
	if dom.TagName(control) == "select" {
		var choices []string
		for _, option := range dom.QueryAll(control, dom.ByTag("option")) {
			v, ok := dom.Attr(option, "value")
			if !ok {
				v = strings.TrimSpace(dom.TextContent(option))
			}
			choices = append(choices, v)
		}
		if len(choices) == 0 {
			return fmt.Errorf("session: select %q has no options", name)
		}
		idx, err := r.driver.Select(ctx, prompt.SelectConfig{Message: name, Options: choices})
		if err != nil {
			return driverError{err}
		}
		value = choices[idx]
	} else {
		v, err := r.driver.Input(ctx, prompt.InputConfig{Message: name, Default: dom.Value(control)})
		if err != nil {
			return driverError{err}
		}
		value = v
	}

	if err := dom.SetValue(control, value); err != nil {
		return err
	}
	return r.info(ctx, fmt.Sprintf("%s=%s", name, value))
}

func (r *runner) info(ctx context.Context, msg string) error {
	if err := r.driver.Info(ctx, msg); err != nil {
		return driverError{err}
	}
	return nil
}

// FormatValues renders the page's form values one name=value pair per line,
// sorted by name.
func FormatValues(page *repeatable.Page) string {
	values := page.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		for _, v := range values[name] {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	if b.Len() == 0 {
		return "(no values)"
	}
	return b.String()
}
