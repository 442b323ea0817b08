package dom

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// EventClick is the only event type the field-list components dispatch.
const EventClick = "click"

// Event is passed to listeners during dispatch.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node
	Document      *Document

	stopped bool
}

// StopPropagation prevents the event from reaching ancestors of the current
// target. Remaining listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles a dispatched event. A returned error is reported by
// Dispatch; it does not stop other listeners from running.
type Listener func(*Event) error

type registration struct {
	eventType string
	listener  Listener
}

// AddEventListener registers fn for eventType on n.
func (d *Document) AddEventListener(n *html.Node, eventType string, fn Listener) error {
	if d == nil {
		return errors.New("dom: document is nil")
	}
	if n == nil || fn == nil {
		return errors.New("dom: add listener: node and listener are required")
	}
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	if eventType == "" {
		return errors.New("dom: add listener: event type is required")
	}
	d.listeners[n] = append(d.listeners[n], registration{eventType: eventType, listener: fn})
	return nil
}

// ListenerCount reports how many listeners for eventType are attached to n.
func (d *Document) ListenerCount(n *html.Node, eventType string) int {
	if d == nil {
		return 0
	}
	count := 0
	for _, reg := range d.listeners[n] {
		if reg.eventType == eventType {
			count++
		}
	}
	return count
}

// Dispatch fires eventType at target and bubbles it through the ancestors up
// to the document root. Errors returned by listeners are joined.
func (d *Document) Dispatch(target *html.Node, eventType string) error {
	if d == nil {
		return errors.New("dom: document is nil")
	}
	if target == nil {
		return errors.New("dom: dispatch: target is nil")
	}

	event := &Event{
		Type:     strings.ToLower(strings.TrimSpace(eventType)),
		Target:   target,
		Document: d,
	}

	// The propagation path is fixed before any listener runs, so a listener
	// detaching the target does not cut the event short.
	var path []*html.Node
	for cur := target; cur != nil; cur = cur.Parent {
		path = append(path, cur)
		if cur == d.root {
			break
		}
	}

	var errs []error
	for _, cur := range path {
		regs := slices.Clone(d.listeners[cur])
		event.CurrentTarget = cur
		for _, reg := range regs {
			if reg.eventType != event.Type {
				continue
			}
			if err := reg.listener(event); err != nil {
				errs = append(errs, err)
			}
		}
		if event.stopped {
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("dom: %s listener: %w", event.Type, errors.Join(errs...))
}

// Click dispatches a click event at target.
func (d *Document) Click(target *html.Node) error {
	return d.Dispatch(target, EventClick)
}
