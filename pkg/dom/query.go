package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Matcher selects element nodes.
type Matcher func(*html.Node) bool

// ByClass matches elements whose class list contains class.
func ByClass(class string) Matcher {
	class = strings.TrimSpace(class)
	return func(n *html.Node) bool {
		return class != "" && HasClass(n, class)
	}
}

// ByTag matches elements by lower-cased tag name.
func ByTag(tag string) Matcher {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return func(n *html.Node) bool {
		return n != nil && n.Type == html.ElementNode && n.Data == tag
	}
}

// ByID matches the element carrying id.
func ByID(id string) Matcher {
	return func(n *html.Node) bool {
		if n == nil || n.Type != html.ElementNode || id == "" {
			return false
		}
		value, ok := Attr(n, "id")
		return ok && value == id
	}
}

// And matches when every matcher matches.
func And(matchers ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, match := range matchers {
			if match == nil || !match(n) {
				return false
			}
		}
		return len(matchers) > 0
	}
}

// QueryAll returns the descendants of root matching m, in document order. The
// root itself is never included.
func QueryAll(root *html.Node, m Matcher) []*html.Node {
	if root == nil || m == nil {
		return nil
	}
	var out []*html.Node
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walk(child, func(n *html.Node) bool {
			if n.Type == html.ElementNode && m(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first descendant of root matching m, or nil.
func Query(root *html.Node, m Matcher) *html.Node {
	if root == nil || m == nil {
		return nil
	}
	var found *html.Node
	for child := root.FirstChild; child != nil && found == nil; child = child.NextSibling {
		walk(child, func(n *html.Node) bool {
			if found != nil {
				return false
			}
			if n.Type == html.ElementNode && m(n) {
				found = n
				return false
			}
			return true
		})
	}
	return found
}

// Closest returns n itself or the nearest ancestor matching m, or nil.
func Closest(n *html.Node, m Matcher) *html.Node {
	if m == nil {
		return nil
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && m(cur) {
			return cur
		}
	}
	return nil
}

// walk visits n and its subtree depth first. Returning false from visit skips
// the children of the visited node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		return true
	})
	return sb.String()
}
