// Package fieldlist keeps repeatable form field lists consistent with their
// position as rows are added and removed, and renders the markup they work on.
//
// The building blocks live under pkg/: dom (document, queries, events),
// fieldpath (index carrying control names), repeatable (row groups), widget
// (server-side markup) and sanitize. This package wires them for the common
// flows.
package fieldlist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fieldlist/pkg/dom"
	"github.com/goliatone/go-fieldlist/pkg/repeatable"
	"github.com/goliatone/go-fieldlist/pkg/widget"
)

// List aliases widget.List for callers defining field lists.
type List = widget.List

// Markers aliases repeatable.Markers.
type Markers = repeatable.Markers

// RenderOptions aliases widget.RenderOptions.
type RenderOptions = widget.RenderOptions

// Page aliases repeatable.Page.
type Page = repeatable.Page

// LoadPage parses markup and instruments every field list in it. Markup
// starting with a doctype or <html> is parsed as a full document, anything
// else as a body fragment so rendering it back adds no wrappers.
//
// Malformed containers are skipped; the returned error joins their failures
// while the Page stays usable.
func LoadPage(r io.Reader, options ...repeatable.Option) (*Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fieldlist: read page: %w", err)
	}

	var doc *dom.Document
	if IsFullDocument(data) {
		doc, err = dom.Parse(bytes.NewReader(data))
	} else {
		doc, err = dom.ParseFragment(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("fieldlist: parse page: %w", err)
	}
	return repeatable.Instrument(doc, options...)
}

// IsFullDocument reports whether data looks like a complete HTML document.
func IsFullDocument(data []byte) bool {
	trimmed := bytes.ToLower(bytes.TrimSpace(data))
	return bytes.HasPrefix(trimmed, []byte("<!doctype")) || bytes.HasPrefix(trimmed, []byte("<html"))
}

// RenderHTML renders lists with a renderer built from options.
func RenderHTML(ctx context.Context, lists []List, opts RenderOptions, options ...widget.Option) ([]byte, error) {
	r, err := widget.NewRenderer(options...)
	if err != nil {
		return nil, err
	}
	return r.RenderAll(ctx, lists, opts)
}

// WithThemeSelector passes a go-theme selector to the widget renderer so
// theme tokens and variants resolve per render.
func WithThemeSelector(selector theme.ThemeSelector) widget.Option {
	return widget.WithThemeSelector(selector)
}

// EmbeddedTemplates exposes the built-in widget templates so callers can copy
// and extend them.
func EmbeddedTemplates() fs.FS {
	return widget.TemplatesFS()
}
