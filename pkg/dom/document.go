package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree and the event listeners attached to its
// nodes. Listeners are keyed by node identity, so a cloned node starts without
// any listeners, the same way cloneNode behaves in a browser.
type Document struct {
	root      *html.Node
	fragment  bool
	listeners map[*html.Node][]registration
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return newDocument(root, false), nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// ParseFragment reads an HTML fragment as if it were the content of a <body>
// element. Rendering the document writes the fragment back without the
// implied html/head/body wrappers.
func ParseFragment(r io.Reader) (*Document, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, node := range nodes {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		root.AppendChild(node)
	}
	return newDocument(root, true), nil
}

// ParseFragmentString is a convenience wrapper around ParseFragment.
func ParseFragmentString(markup string) (*Document, error) {
	return ParseFragment(strings.NewReader(markup))
}

// NewDocument adopts an existing tree. The node is used as the dispatch root;
// events bubble up to it and stop there.
func NewDocument(root *html.Node) (*Document, error) {
	if root == nil {
		return nil, errors.New("dom: root node is nil")
	}
	return newDocument(root, root.Type != html.DocumentNode), nil
}

func newDocument(root *html.Node, fragment bool) *Document {
	return &Document{
		root:      root,
		fragment:  fragment,
		listeners: make(map[*html.Node][]registration),
	}
}

// Root returns the top node of the tree.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Fragment reports whether the document was parsed as a body fragment.
func (d *Document) Fragment() bool {
	return d != nil && d.fragment
}

// Render writes the tree as HTML. Fragments are written child by child.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return errors.New("dom: document is nil")
	}
	if !d.fragment || d.root.Type != html.DocumentNode {
		if err := html.Render(w, d.root); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(w, child); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// OuterHTML renders a single node and its subtree.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Contains reports whether n is the document root or one of its descendants.
func (d *Document) Contains(n *html.Node) bool {
	if d == nil || n == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// Remove detaches n from its parent and forgets every listener registered on
// n or its descendants.
func (d *Document) Remove(n *html.Node) {
	if n == nil {
		return
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	if d == nil {
		return
	}
	walk(n, func(node *html.Node) bool {
		delete(d.listeners, node)
		return true
	})
}
