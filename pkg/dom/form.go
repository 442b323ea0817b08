package dom

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// FormValues collects the name/value pairs a browser would submit for the
// controls under root, in document order. Disabled controls, controls without
// a name, unchecked checkboxes and radios, and button-like inputs are skipped.
func FormValues(root *html.Node) url.Values {
	values := url.Values{}
	if root == nil {
		return values
	}

	controls := QueryAll(root, func(n *html.Node) bool {
		switch TagName(n) {
		case "input", "select", "textarea":
			return true
		default:
			return false
		}
	})

	for _, control := range controls {
		name, ok := Attr(control, "name")
		if !ok || name == "" || HasAttr(control, "disabled") {
			continue
		}

		switch TagName(control) {
		case "input":
			value, include := inputValue(control)
			if include {
				values.Add(name, value)
			}
		case "textarea":
			values.Add(name, TextContent(control))
		case "select":
			for _, value := range selectValues(control) {
				values.Add(name, value)
			}
		}
	}
	return values
}

func inputValue(n *html.Node) (string, bool) {
	inputType, _ := Attr(n, "type")
	value, hasValue := Attr(n, "value")

	switch strings.ToLower(strings.TrimSpace(inputType)) {
	case "submit", "button", "reset", "image", "file":
		return "", false
	case "checkbox", "radio":
		if !HasAttr(n, "checked") {
			return "", false
		}
		if !hasValue {
			return "on", true
		}
		return value, true
	default:
		return value, true
	}
}

func selectValues(n *html.Node) []string {
	options := QueryAll(n, ByTag("option"))
	if len(options) == 0 {
		return nil
	}

	var selected []string
	for _, option := range options {
		if HasAttr(option, "selected") {
			selected = append(selected, optionValue(option))
		}
	}
	if len(selected) > 0 || HasAttr(n, "multiple") {
		if len(selected) > 1 && !HasAttr(n, "multiple") {
			return selected[len(selected)-1:]
		}
		return selected
	}
	return []string{optionValue(options[0])}
}

func optionValue(option *html.Node) string {
	if value, ok := Attr(option, "value"); ok {
		return value
	}
	return strings.TrimSpace(TextContent(option))
}

// Value reports the current value of a single control: the value attribute
// of an input, the text of a textarea, or the selected option of a select.
func Value(control *html.Node) string {
	switch TagName(control) {
	case "input":
		value, _ := Attr(control, "value")
		return value
	case "textarea":
		return TextContent(control)
	case "select":
		if values := selectValues(control); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// ErrNoSuchOption is returned by SetValue when a select has no option with
// the requested value.
var ErrNoSuchOption = errors.New("dom: no such option")

// SetValue sets the value a control submits. Inputs get a value attribute,
// textareas their text, and selects mark the matching option selected.
func SetValue(control *html.Node, value string) error {
	switch TagName(control) {
	case "input":
		SetAttr(control, "value", value)
	case "textarea":
		for c := control.FirstChild; c != nil; {
			next := c.NextSibling
			control.RemoveChild(c)
			c = next
		}
		control.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	case "select":
		options := QueryAll(control, ByTag("option"))
		match := -1
		for i, option := range options {
			if optionValue(option) == value {
				match = i
				break
			}
		}
		if match < 0 {
			return fmt.Errorf("%w: %q", ErrNoSuchOption, value)
		}
		for i, option := range options {
			if i == match {
				SetAttr(option, "selected", "")
			} else {
				RemoveAttr(option, "selected")
			}
		}
	default:
		return fmt.Errorf("dom: %q is not a form control", TagName(control))
	}
	return nil
}

// Controls returns the named input, select and textarea elements under root.
func Controls(root *html.Node) []*html.Node {
	return QueryAll(root, func(n *html.Node) bool {
		switch TagName(n) {
		case "input", "select", "textarea":
			return HasAttr(n, "name")
		default:
			return false
		}
	})
}
