package repeatable

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldlist/pkg/dom"
)

// Page holds the groups instrumented on one document.
type Page struct {
	doc    *dom.Document
	groups []*Group
}

// Instrument creates a Group for every container marker in doc. Malformed
// containers are skipped; their construction errors are joined into the
// returned error while the well formed groups stay usable through the Page.
func Instrument(doc *dom.Document, options ...Option) (*Page, error) {
	if doc == nil {
		return nil, errors.New("repeatable: document is nil")
	}

	cfg := newConfig(options)
	matchContainer := dom.ByClass(cfg.markers.Container)

	containers := dom.QueryAll(doc.Root(), matchContainer)
	if root := doc.Root(); matchContainer(root) {
		containers = append([]*html.Node{root}, containers...)
	}

	page := &Page{doc: doc}
	var errs []error
	for _, container := range containers {
		group, err := New(doc, container, options...)
		if err != nil {
			cfg.logger.Warn("field-list skipped",
				zap.String("container", dom.ID(container)),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("repeatable: container %q: %w", dom.ID(container), err))
			continue
		}
		page.groups = append(page.groups, group)
	}
	return page, errors.Join(errs...)
}

// Document returns the instrumented document.
func (p *Page) Document() *dom.Document { return p.doc }

// Groups returns the instrumented groups in document order.
func (p *Page) Groups() []*Group { return slices.Clone(p.groups) }

// Group looks up a group by container id.
func (p *Page) Group(containerID string) (*Group, bool) {
	for _, group := range p.groups {
		if group.ContainerID() == containerID {
			return group, true
		}
	}
	return nil, false
}

// Row finds the row carrying rowID and the group that owns it.
func (p *Page) Row(rowID string) (*Group, *html.Node, bool) {
	for _, group := range p.groups {
		for _, row := range group.rows {
			if dom.ID(row) == rowID {
				return group, row, true
			}
		}
	}
	return nil, nil, false
}

// Values serializes every control in the document.
func (p *Page) Values() url.Values {
	return dom.FormValues(p.doc.Root())
}
