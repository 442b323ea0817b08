package widget_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldlist/pkg/widget"
)

func TestEntriesOrdersByIndexAndFiltersForeignNames(t *testing.T) {
	values := url.Values{
		"tags[10]":      {"j"},
		"tags[2]":       {"b"},
		"tags[0]":       {"a"},
		"tags[0][note]": {"nested"},
		"other[1]":      {"x"},
		"tags":          {"plain"},
	}
	got := widget.Entries(values, widget.List{ID: "tags"})
	want := []widget.Entry{
		{Name: "tags[0]", Index: 0, Value: "a"},
		{Name: "tags[2]", Index: 2, Value: "b"},
		{Name: "tags[10]", Index: 10, Value: "j"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	selects := url.Values{"color-1": {"r"}, "color-0": {"g"}, "colorx-0": {"no"}}
	list := widget.List{ID: "colors", Name: "color", Control: widget.ControlSelect, Choices: []widget.Choice{{Value: "r"}}}
	got = widget.Entries(selects, list)
	want = []widget.Entry{
		{Name: "color-0", Index: 0, Value: "g"},
		{Name: "color-1", Index: 1, Value: "r"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("select entries mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateUnique(t *testing.T) {
	list := widget.List{ID: "tags", Unique: true}

	if err := widget.ValidateUnique(url.Values{"tags[0]": {"a"}, "tags[1]": {"b"}}, list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := widget.ValidateUnique(url.Values{"tags[0]": {"a"}, "tags[1]": {"b"}, "tags[2]": {"a"}}, list)
	if !errors.Is(err, widget.ErrNotUnique) {
		t.Fatalf("expected ErrNotUnique, got %v", err)
	}
	if err := widget.ValidateUnique(url.Values{"tags[0]": {""}, "tags[1]": {""}}, list); !errors.Is(err, widget.ErrNotUnique) {
		t.Fatalf("empty values repeat too, got %v", err)
	}
}
