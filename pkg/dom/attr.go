package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of the attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute key is present.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets key to value, appending the attribute when missing.
func SetAttr(n *html.Node, key, value string) {
	if n == nil {
		return
	}
	for idx, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[idx].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr drops the attribute key.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	n.Attr = slices.DeleteFunc(n.Attr, func(attr html.Attribute) bool {
		return attr.Namespace == "" && attr.Key == key
	})
}

// ID returns the element id, or an empty string.
func ID(n *html.Node) string {
	id, _ := Attr(n, "id")
	return id
}

// SetID sets the element id.
func SetID(n *html.Node, id string) {
	SetAttr(n, "id", id)
}

// TagName returns the lower-cased tag name of an element.
func TagName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Classes returns the whitespace separated class tokens.
func Classes(n *html.Node) []string {
	value, _ := Attr(n, "class")
	return strings.Fields(value)
}

// HasClass reports whether class is one of the class tokens of n.
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(Classes(n), class)
}
