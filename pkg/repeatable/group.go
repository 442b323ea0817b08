package repeatable

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldlist/pkg/dom"
	"github.com/goliatone/go-fieldlist/pkg/fieldpath"
)

// Group keeps the rows of one field-list container consistent with their
// position as rows are added and removed.
//
// Rows are tracked as an ordered slice of handles, updated on every add and
// remove. Call Refresh after editing the container markup by other means.
type Group struct {
	doc       *dom.Document
	container *html.Node
	cfg       config

	rowTag string
	ids    IndexAssigner
	rows   []*html.Node
	bound  map[*html.Node]struct{}
}

// New wires a Group to container. The first row found under the container
// fixes the row tag and the id prefix; every add and remove affordance under
// the container gets a click listener. Construction fails without touching
// the document when no row exists or the first row id carries no index.
func New(doc *dom.Document, container *html.Node, options ...Option) (*Group, error) {
	if doc == nil {
		return nil, errors.New("repeatable: document is nil")
	}
	if container == nil {
		return nil, errors.New("repeatable: container is nil")
	}

	cfg := newConfig(options)
	g := &Group{
		doc:       doc,
		container: container,
		cfg:       cfg,
		bound:     make(map[*html.Node]struct{}),
	}

	first := dom.Query(container, g.isRow)
	if first == nil {
		return nil, &MissingRowError{Container: dom.ID(container), Op: "new"}
	}
	ids, err := NewIndexAssigner(dom.ID(first))
	if err != nil {
		return nil, err
	}

	g.rowTag = dom.TagName(first)
	g.ids = ids
	g.rows = dom.QueryAll(container, g.isRow)

	if err := g.instrument(container, true); err != nil {
		return nil, err
	}

	g.cfg.logger.Debug("field-list instrumented",
		zap.String("container", g.ContainerID()),
		zap.String("prefix", g.ids.Prefix()),
		zap.String("row_tag", g.rowTag),
		zap.Int("rows", len(g.rows)),
	)
	return g, nil
}

// Container returns the managed container element.
func (g *Group) Container() *html.Node { return g.container }

// ContainerID returns the id of the container element.
func (g *Group) ContainerID() string { return dom.ID(g.container) }

// RowTag returns the lower-cased tag name of the first row seen at
// construction.
func (g *Group) RowTag() string { return g.rowTag }

// Prefix returns the row id prefix.
func (g *Group) Prefix() string { return g.ids.Prefix() }

// IDs returns the index assigner used for row ids.
func (g *Group) IDs() IndexAssigner { return g.ids }

// Len returns the number of rows.
func (g *Group) Len() int { return len(g.rows) }

// Rows returns the row elements in document order.
func (g *Group) Rows() []*html.Node { return slices.Clone(g.rows) }

// Markers returns the marker classes the group matches on.
func (g *Group) Markers() Markers { return g.cfg.markers }

// AddAffordance returns the first add affordance under the container, or nil.
func (g *Group) AddAffordance() *html.Node {
	return dom.Query(g.container, dom.ByClass(g.cfg.markers.Add))
}

// RemoveAffordance returns the remove affordance inside row, or nil.
func (g *Group) RemoveAffordance(row *html.Node) *html.Node {
	return dom.Query(row, dom.ByClass(g.cfg.markers.Remove))
}

// Values serializes the controls under the container the way a form
// submission would.
func (g *Group) Values() url.Values { return dom.FormValues(g.container) }

// Refresh re-reads the rows from the container and binds listeners to any
// affordance that does not have one yet.
func (g *Group) Refresh() error {
	g.rows = dom.QueryAll(g.container, g.isRow)
	return g.instrument(g.container, true)
}

// Add clones the first row, renumbers the clone for the next position, and
// inserts it after the last row. Every rewrite happens on the detached clone,
// so a failure leaves the document unchanged.
func (g *Group) Add() (*html.Node, error) {
	if len(g.rows) == 0 {
		return nil, &MissingRowError{Container: g.ContainerID(), Op: "add"}
	}

	index := len(g.rows)
	row := dom.Clone(g.rows[0])
	dom.SetID(row, g.ids.ItemID(index))

	if err := g.renameControls(row, index, true); err != nil {
		return nil, err
	}
	if err := g.instrument(row, false); err != nil {
		return nil, err
	}

	last := g.rows[len(g.rows)-1]
	if err := dom.InsertAfter(last, row); err != nil {
		g.unbind(row)
		g.doc.Remove(row)
		return nil, fmt.Errorf("repeatable: add: %w", err)
	}
	g.rows = append(g.rows, row)

	g.cfg.logger.Debug("field-list row added",
		zap.String("container", g.ContainerID()),
		zap.String("row", dom.ID(row)),
		zap.Int("index", index),
	)
	return row, nil
}

// RemoveTarget removes the row enclosing target, as a click on a remove
// affordance does.
func (g *Group) RemoveTarget(target *html.Node) error {
	row := dom.Closest(target, g.isRow)
	if row == nil {
		return &MissingRowError{Container: g.ContainerID(), Op: "remove"}
	}
	return g.Remove(row)
}

// Remove detaches row and renumbers the ids of the remaining rows from zero.
// Nodes that are not rows of this group are rejected and left in place.
func (g *Group) Remove(row *html.Node) error {
	if row == nil || !slices.Contains(g.rows, row) {
		return &MissingRowError{Container: g.ContainerID(), Op: "remove"}
	}

	removedID := dom.ID(row)
	g.unbind(row)
	g.doc.Remove(row)
	g.rows = slices.DeleteFunc(g.rows, func(n *html.Node) bool { return n == row })
	g.reindex()

	g.cfg.logger.Debug("field-list row removed",
		zap.String("container", g.ContainerID()),
		zap.String("row", removedID),
		zap.Int("rows", len(g.rows)),
	)
	return nil
}

func (g *Group) reindex() {
	for index, row := range g.rows {
		dom.SetID(row, g.ids.ItemID(index))
		if g.cfg.controlReindex {
			// Nameless controls are skipped so a reindex never stops halfway.
			_ = g.renameControls(row, index, false)
		}
	}
}

// renameControls rewrites the index carried by the names of the inputs and
// selects under row. Inputs use the bracket style, selects the hyphen style
// on both name and id.
func (g *Group) renameControls(row *html.Node, index int, strict bool) error {
	for _, input := range dom.QueryAll(row, dom.ByTag("input")) {
		name, ok := dom.Attr(input, "name")
		if !ok {
			if strict {
				return &MissingNameError{Tag: "input", Row: dom.ID(row)}
			}
			continue
		}
		if strict {
			dom.SetAttr(input, "value", "")
		}
		dom.SetAttr(input, "name", fieldpath.Rename(name, fieldpath.Bracket, index))
	}

	for _, sel := range dom.QueryAll(row, dom.ByTag("select")) {
		name, ok := dom.Attr(sel, "name")
		if !ok {
			if strict {
				return &MissingNameError{Tag: "select", Row: dom.ID(row)}
			}
			continue
		}
		renamed := fieldpath.Rename(name, fieldpath.Hyphen, index)
		dom.SetAttr(sel, "name", renamed)
		dom.SetID(sel, renamed)
	}
	return nil
}

// instrument binds click listeners to the affordances under root. Add
// affordances are only bound when withAdd is set; cloned rows get remove
// listeners only.
func (g *Group) instrument(root *html.Node, withAdd bool) error {
	for _, remove := range dom.QueryAll(root, dom.ByClass(g.cfg.markers.Remove)) {
		if err := g.bind(remove, g.onRemoveClick); err != nil {
			return err
		}
	}
	if !withAdd {
		return nil
	}
	for _, add := range dom.QueryAll(root, dom.ByClass(g.cfg.markers.Add)) {
		if err := g.bind(add, g.onAddClick); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) bind(n *html.Node, fn dom.Listener) error {
	if _, done := g.bound[n]; done {
		return nil
	}
	if err := g.doc.AddEventListener(n, dom.EventClick, fn); err != nil {
		return fmt.Errorf("repeatable: bind listener: %w", err)
	}
	g.bound[n] = struct{}{}
	return nil
}

func (g *Group) unbind(row *html.Node) {
	delete(g.bound, row)
	for _, n := range dom.QueryAll(row, func(*html.Node) bool { return true }) {
		delete(g.bound, n)
	}
}

func (g *Group) onAddClick(*dom.Event) error {
	_, err := g.Add()
	return err
}

func (g *Group) onRemoveClick(e *dom.Event) error {
	return g.RemoveTarget(e.Target)
}

func (g *Group) isRow(n *html.Node) bool {
	return dom.HasClass(n, g.cfg.markers.Row)
}
