package dom

import (
	"fmt"
	"slices"
	"strings"
)

// EventHandler is called synchronously by Trigger with the node the event
// was triggered on and the caller's data.
type EventHandler func(target *Node, data any)

type eventListener struct {
	name    string
	handler EventHandler
}

// AddEventListener registers handler for the named event. Handlers run in
// registration order; the same event may have any number of handlers.
func (n *Node) AddEventListener(event string, handler EventHandler) error {
	return n.AddNamedEventListener(event, "", handler)
}

// AddNamedEventListener registers handler under a reference name. The name is
// what rendering lists in the synthesized on<event> attribute.
func (n *Node) AddNamedEventListener(event, name string, handler EventHandler) error {
	if n.nodeType == TextNode {
		return ErrHierarchyRequest("Text nodes cannot have event listeners.")
	}
	if event == "" {
		return ErrSyntax("The event name must not be empty.")
	}
	if handler == nil {
		return ErrSyntax("The event handler must not be nil.")
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]eventListener)
	}
	if name == "" {
		name = fmt.Sprintf("%sHandler%d", event, len(n.listeners[event])+1)
	}
	n.listeners[event] = append(n.listeners[event], eventListener{name: name, handler: handler})
	return nil
}

// RemoveEventListeners unregisters every handler of the event and returns
// how many were removed.
func (n *Node) RemoveEventListeners(event string) int {
	count := len(n.listeners[event])
	delete(n.listeners, event)
	return count
}

// HasEventListeners returns true if there are listeners for the event.
func (n *Node) HasEventListeners(event string) bool {
	return len(n.listeners[event]) > 0
}

// EventNames returns the events with listeners, sorted.
func (n *Node) EventNames() []string {
	names := make([]string, 0, len(n.listeners))
	for event, ls := range n.listeners {
		if len(ls) > 0 {
			names = append(names, event)
		}
	}
	slices.Sort(names)
	return names
}

// EventHandlerNames returns the reference names of the event's handlers in
// registration order.
func (n *Node) EventHandlerNames(event string) []string {
	ls := n.listeners[event]
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = l.name
	}
	return names
}

// Trigger synchronously invokes every handler registered for event with
// (n, data) and returns the number of handlers run. Events do not bubble.
func (n *Node) Trigger(event string, data any) int {
	// Handlers may register further listeners; only the ones present at
	// dispatch time run.
	listeners := slices.Clone(n.listeners[event])
	for _, l := range listeners {
		l.handler(n, data)
	}
	return len(listeners)
}

// eventAttributes returns the synthesized on<event> attributes.
func (n *Node) eventAttributes() []Attr {
	events := n.EventNames()
	attrs := make([]Attr, 0, len(events))
	for _, event := range events {
		attrs = append(attrs, Attr{
			Name:  "on" + event,
			Value: strings.Join(n.EventHandlerNames(event), "; "),
		})
	}
	return attrs
}
