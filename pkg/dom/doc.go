// Package dom wraps golang.org/x/net/html trees with the small slice of browser
// DOM behaviour the field-list components rely on: class/tag queries, deep
// cloning, sibling insertion, detaching nodes, click dispatch with bubbling,
// and form value serialization.
//
// A Document is not safe for concurrent use. Like the browser event loop, all
// mutations and dispatches are expected to run on a single goroutine.
package dom
