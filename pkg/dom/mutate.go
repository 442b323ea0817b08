package dom

import (
	"errors"
	"slices"

	"golang.org/x/net/html"
)

// ErrDetached is returned when an operation needs a parent that the node does
// not have.
var ErrDetached = errors.New("dom: node has no parent")

// Clone returns a detached deep copy of n. Event listeners are not copied.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		clone.AppendChild(Clone(child))
	}
	return clone
}

// InsertAfter places n immediately after ref in document order. n must be
// detached.
func InsertAfter(ref, n *html.Node) error {
	if ref == nil || n == nil {
		return errors.New("dom: insert after: nil node")
	}
	if ref.Parent == nil {
		return ErrDetached
	}
	if n.Parent != nil || n.PrevSibling != nil || n.NextSibling != nil {
		return errors.New("dom: insert after: node is still attached")
	}
	ref.Parent.InsertBefore(n, ref.NextSibling)
	return nil
}
