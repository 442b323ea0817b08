package widget_test

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/net/html"

	"github.com/goliatone/go-fieldlist/pkg/dom"
	"github.com/goliatone/go-fieldlist/pkg/testsupport"
	"github.com/goliatone/go-fieldlist/pkg/widget"
)

type controlSummary struct {
	Tag   string `json:"tag"`
	Type  string `json:"type,omitempty"`
	Name  string `json:"name"`
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
}

type rowSummary struct {
	ID         string         `json:"id"`
	Control    controlSummary `json:"control"`
	RemoveID   string         `json:"removeId"`
	RemoveText string         `json:"removeText"`
}

type listSummary struct {
	ID      string       `json:"id"`
	Classes []string     `json:"classes"`
	Rows    []rowSummary `json:"rows"`
	AddID   string       `json:"addId"`
	AddText string       `json:"addText"`
}

func summarize(container *html.Node) listSummary {
	s := listSummary{ID: dom.ID(container), Classes: dom.Classes(container)}
	for _, row := range dom.QueryAll(container, dom.ByClass("field-list-row")) {
		control := dom.Controls(row)[0]
		name, _ := dom.Attr(control, "name")
		inputType, _ := dom.Attr(control, "type")
		remove := dom.Query(row, dom.ByClass("field-list-remove"))
		s.Rows = append(s.Rows, rowSummary{
			ID: dom.ID(row),
			Control: controlSummary{
				Tag:   dom.TagName(control),
				Type:  inputType,
				Name:  name,
				ID:    dom.ID(control),
				Value: dom.FormValues(row).Get(name),
			},
			RemoveID:   dom.ID(remove),
			RemoveText: dom.TextContent(remove),
		})
	}
	if add := dom.Query(container, dom.ByClass("field-list-add")); add != nil {
		s.AddID = dom.ID(add)
		s.AddText = dom.TextContent(add)
	}
	return s
}

func TestRenderGolden(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "lists.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	lists, err := widget.DecodeLists(data, "lists.yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	r, err := widget.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.RenderAll(testsupport.Context(), lists, widget.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.MustParseFragment(t, string(out))

	var got []listSummary
	for _, container := range dom.QueryAll(doc.Root(), dom.ByClass("field-list")) {
		got = append(got, summarize(container))
	}

	golden := filepath.Join("testdata", "render.golden.json")
	testsupport.WriteGolden(t, golden, got)

	var want []listSummary
	testsupport.MustLoadGoldenJSON(t, golden, &want)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("rendered lists mismatch (-want +got):\n%s", diff)
	}
}
