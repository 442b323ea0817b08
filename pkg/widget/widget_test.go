package widget_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldlist/pkg/dom"
	"github.com/goliatone/go-fieldlist/pkg/repeatable"
	"github.com/goliatone/go-fieldlist/pkg/widget"
)

func render(t *testing.T, list widget.List, opts widget.RenderOptions, options ...widget.Option) *dom.Document {
	t.Helper()
	r, err := widget.NewRenderer(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), list, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := dom.ParseFragmentString(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

func container(t *testing.T, doc *dom.Document, id string) *html.Node {
	t.Helper()
	n := dom.Query(doc.Root(), dom.ByID(id))
	if n == nil {
		t.Fatalf("container %q not rendered:\n%s", id, doc.String())
	}
	return n
}

func TestRenderInputList(t *testing.T) {
	doc := render(t, widget.List{ID: "tags", Values: []string{"go", "html"}}, widget.RenderOptions{})
	ul := container(t, doc, "tags")

	if got := dom.TagName(ul); got != "ul" {
		t.Fatalf("container tag = %q", got)
	}
	if diff := cmp.Diff([]string{"field-list", "field-list-container", "form-group"}, dom.Classes(ul)); diff != "" {
		t.Fatalf("container classes mismatch (-want +got):\n%s", diff)
	}

	rows := dom.QueryAll(ul, dom.ByClass("field-list-row"))
	var ids []string
	for _, row := range rows {
		ids = append(ids, dom.ID(row))
	}
	if diff := cmp.Diff([]string{"row-tags-0", "row-tags-1"}, ids); diff != "" {
		t.Fatalf("row ids mismatch (-want +got):\n%s", diff)
	}

	want := url.Values{"tags[0]": {"go"}, "tags[1]": {"html"}}
	if diff := cmp.Diff(want, dom.FormValues(ul)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if dom.Query(ul, dom.ByID("field-list-tags-1-remove-btn")) == nil {
		t.Fatalf("remove button missing:\n%s", doc.String())
	}
	control := dom.Query(ul, dom.ByID("control-tags"))
	if control == nil || dom.HasClass(control, "field-list-row") {
		t.Fatalf("control row must exist and not be a row")
	}
	add := dom.Query(control, dom.ByClass("field-list-add"))
	if add == nil || dom.ID(add) != "field-list-tags-add-btn" || dom.TextContent(add) != "Add" {
		t.Fatalf("unexpected add button: %v", dom.OuterHTML(add))
	}
}

func TestRenderAlwaysEmitsTemplateRow(t *testing.T) {
	doc := render(t, widget.List{ID: "tags", MinRows: 0}, widget.RenderOptions{})
	rows := dom.QueryAll(container(t, doc, "tags"), dom.ByClass("field-list-row"))
	if len(rows) != 1 {
		t.Fatalf("expected a single empty row, got %d", len(rows))
	}

	doc = render(t, widget.List{ID: "tags", MinRows: 3, Values: []string{"a"}}, widget.RenderOptions{})
	rows = dom.QueryAll(container(t, doc, "tags"), dom.ByClass("field-list-row"))
	if len(rows) != 3 {
		t.Fatalf("expected MinRows rows, got %d", len(rows))
	}
}

func TestRenderSelectList(t *testing.T) {
	list := widget.List{
		ID:      "colors",
		Name:    "color",
		Control: widget.ControlSelect,
		Values:  []string{"b"},
		Choices: []widget.Choice{{Value: "a", Label: "Alpha"}, {Value: "b"}},
	}
	doc := render(t, list, widget.RenderOptions{})
	ul := container(t, doc, "colors")

	sel := dom.Query(ul, dom.ByTag("select"))
	if sel == nil {
		t.Fatalf("select missing:\n%s", doc.String())
	}
	if name, _ := dom.Attr(sel, "name"); name != "color-0" || dom.ID(sel) != "color-0" {
		t.Fatalf("select name/id = %q/%q", name, dom.ID(sel))
	}
	if diff := cmp.Diff(url.Values{"color-0": {"b"}}, dom.FormValues(ul)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderedMarkupIsInstrumentable(t *testing.T) {
	doc := render(t, widget.List{ID: "tags", Values: []string{"go"}}, widget.RenderOptions{})
	group, err := repeatable.New(doc, container(t, doc, "tags"))
	if err != nil {
		t.Fatalf("instrument rendered markup: %v", err)
	}
	if group.Prefix() != "row-tags" {
		t.Fatalf("prefix = %q", group.Prefix())
	}

	add := dom.Query(doc.Root(), dom.ByID("field-list-tags-add-btn"))
	if err := doc.Click(add); err != nil {
		t.Fatalf("click add: %v", err)
	}
	want := url.Values{"tags[0]": {"go"}, "tags[1]": {""}}
	if diff := cmp.Diff(want, group.Values()); diff != "" {
		t.Fatalf("values after add mismatch (-want +got):\n%s", diff)
	}

	remove := dom.Query(doc.Root(), dom.ByID("field-list-tags-0-remove-btn"))
	if err := doc.Click(remove); err != nil {
		t.Fatalf("click remove: %v", err)
	}
	if group.Len() != 1 || dom.ID(group.Rows()[0]) != "row-tags-0" {
		t.Fatalf("unexpected rows after remove: %d", group.Len())
	}
}

func TestRenderedNestedNameKeepsAddContract(t *testing.T) {
	r, err := widget.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), widget.List{ID: "tags", Name: "post[7]"}, widget.RenderOptions{}); !errors.Is(err, widget.ErrInvalidList) {
		t.Fatalf("expected ErrInvalidList for an indexed input name, got %v", err)
	}

	doc := render(t, widget.List{ID: "tags", Name: "post[tags]", Values: []string{"go"}}, widget.RenderOptions{})
	group, err := repeatable.New(doc, container(t, doc, "tags"))
	if err != nil {
		t.Fatalf("instrument: %v", err)
	}
	row, err := group.Add()
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	input := dom.Query(row, dom.ByTag("input"))
	if name, _ := dom.Attr(input, "name"); name != "post[tags][1]" {
		t.Fatalf("added row name = %q, want post[tags][1]", name)
	}
	want := url.Values{"post[tags][0]": {"go"}, "post[tags][1]": {""}}
	if diff := cmp.Diff(want, group.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCustomMarkers(t *testing.T) {
	markers := repeatable.Markers{Container: "repeat", Row: "repeat-row"}
	doc := render(t, widget.List{ID: "tags"}, widget.RenderOptions{}, widget.WithMarkers(markers))
	if _, err := repeatable.New(doc, container(t, doc, "tags"), repeatable.WithMarkers(markers)); err != nil {
		t.Fatalf("instrument with custom markers: %v", err)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name+"/"+variant)
	return s.selection, s.err
}

func TestRenderThemeTokensAndVariant(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				widget.TokenRow:    "acme-row",
				widget.TokenRemove: "acme-remove",
			},
		},
	}}

	doc := render(t, widget.List{ID: "tags"}, widget.RenderOptions{Theme: "acme", Variant: "light"}, widget.WithThemeSelector(selector))
	ul := container(t, doc, "tags")

	if diff := cmp.Diff([]string{"acme/light"}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	if v, _ := dom.Attr(ul, "data-bs-theme"); v != "dark" {
		t.Fatalf("data-bs-theme = %q", v)
	}
	row := dom.Query(ul, dom.ByClass("field-list-row"))
	if diff := cmp.Diff([]string{"field-list-row", "acme-row"}, dom.Classes(row)); diff != "" {
		t.Fatalf("row classes mismatch (-want +got):\n%s", diff)
	}
	remove := dom.Query(ul, dom.ByClass("field-list-remove"))
	if diff := cmp.Diff([]string{"field-list-remove", "acme-remove"}, dom.Classes(remove)); diff != "" {
		t.Fatalf("remove classes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderThemeSelectionError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("unknown theme")}
	r, err := widget.NewRenderer(widget.WithThemeSelector(selector))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), widget.List{ID: "tags"}, widget.RenderOptions{Theme: "missing"}); err == nil {
		t.Fatalf("expected theme error")
	}
}

func TestRenderEscapesAndSanitizes(t *testing.T) {
	list := widget.List{ID: "tags", Values: []string{`"><script>alert(1)</script>`}, AddLabel: "<b>More</b>"}
	r, err := widget.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), list, widget.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") || strings.Contains(string(out), "<b>") {
		t.Fatalf("markup leaked into output:\n%s", out)
	}
	doc, err := dom.ParseFragmentString(string(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := dom.FormValues(doc.Root()).Get("tags[0]"); got != list.Values[0] {
		t.Fatalf("value round trip = %q", got)
	}
}

func TestRenderCustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/field_list.tpl": {Data: []byte(`<ul id="{{ list.id }}" class="{{ classes.container }}">{% for row in rows %}<li id="{{ row.id }}" class="{{ classes.row }}"><input name="{{ row.name }}"></li>{% endfor %}</ul>`)},
	}
	doc := render(t, widget.List{ID: "tags"}, widget.RenderOptions{}, widget.WithTemplatesFS(files))
	if dom.Query(container(t, doc, "tags"), dom.ByClass("field-list-add")) != nil {
		t.Fatalf("custom template should not render an add button")
	}
}

func TestNormalizeRejectsInvalidLists(t *testing.T) {
	cases := map[string]widget.List{
		"missing id":         {},
		"whitespace id":      {ID: "my tags"},
		"unknown control":    {ID: "tags", Control: "textarea"},
		"select w/o choices": {ID: "tags", Control: widget.ControlSelect},
		"indexed input name": {ID: "tags", Name: "post[7]"},
	}
	for name, list := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := list.Normalize(); !errors.Is(err, widget.ErrInvalidList) {
				t.Fatalf("expected ErrInvalidList, got %v", err)
			}
		})
	}

	got, err := widget.List{ID: " tags "}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := widget.List{
		ID: "tags", Name: "tags", Control: widget.ControlInput, InputType: "text",
		MinRows: 1, AddLabel: "Add", RemoveLabel: "Remove",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized list mismatch (-want +got):\n%s", diff)
	}
}
