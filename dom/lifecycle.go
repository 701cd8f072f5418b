package dom

import "go.uber.org/zap"

// LifecycleEvent identifies a point in a node's life.
type LifecycleEvent int

const (
	LifecycleCreated LifecycleEvent = iota
	LifecycleInserted
	LifecycleRemoved
	LifecycleStylesApplied
	LifecycleClassListApplied
	LifecycleTextRendered
)

func (e LifecycleEvent) String() string {
	switch e {
	case LifecycleCreated:
		return "CREATED"
	case LifecycleInserted:
		return "INSERTED"
	case LifecycleRemoved:
		return "REMOVED"
	case LifecycleStylesApplied:
		return "STYLES_APPLIED"
	case LifecycleClassListApplied:
		return "CLASSLIST_APPLIED"
	case LifecycleTextRendered:
		return "TEXT_RENDERED"
	default:
		return "UNKNOWN_EVENT"
	}
}

// LifecycleListener observes lifecycle events of a node.
type LifecycleListener func(n *Node, event LifecycleEvent)

// SetLifecycleListener installs fn as the node's lifecycle listener. A nil
// fn removes it.
func (n *Node) SetLifecycleListener(fn LifecycleListener) {
	n.lifecycle = fn
}

func (n *Node) notify(event LifecycleEvent) {
	if n.lifecycle != nil {
		n.lifecycle(n, event)
	}
}

// LogLifecycle returns a listener that reports every event to log at debug
// level.
func LogLifecycle(log *zap.Logger) LifecycleListener {
	return func(n *Node, event LifecycleEvent) {
		log.Debug("Lifecycle event",
			zap.Stringer("event", event),
			zap.String("node", n.NodeName()),
			zap.Int("children", len(n.children)))
	}
}
