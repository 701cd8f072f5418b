package dom

import (
	"reflect"
	"testing"
)

func TestTrigger_RegistrationOrder(t *testing.T) {
	btn := NewElement("button")
	var calls []string

	btn.AddEventListener("click", func(target *Node, data any) {
		calls = append(calls, "first:"+data.(string))
		if target != btn {
			t.Error("Expected target to be the button")
		}
	})
	btn.AddEventListener("click", func(_ *Node, data any) {
		calls = append(calls, "second:"+data.(string))
	})

	if n := btn.Trigger("click", "x"); n != 2 {
		t.Errorf("Expected 2 handlers, got %d", n)
	}
	want := []string{"first:x", "second:x"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("Expected %v, got %v", want, calls)
	}
}

func TestTrigger_NoHandlers(t *testing.T) {
	if n := NewElement("div").Trigger("click", nil); n != 0 {
		t.Errorf("Expected 0 handlers, got %d", n)
	}
}

func TestTrigger_DoesNotBubble(t *testing.T) {
	parent, child := NewElement("div"), NewElement("button")
	parent.AppendChild(child)
	fired := false
	parent.AddEventListener("click", func(*Node, any) { fired = true })

	child.Trigger("click", nil)
	if fired {
		t.Error("Expected events not to bubble to the parent")
	}
}

func TestTrigger_HandlerAddedDuringDispatch(t *testing.T) {
	el := NewElement("div")
	count := 0
	el.AddEventListener("ping", func(n *Node, _ any) {
		count++
		n.AddEventListener("ping", func(*Node, any) { count++ })
	})

	el.Trigger("ping", nil)
	if count != 1 {
		t.Errorf("Expected 1 call during first dispatch, got %d", count)
	}
}

func TestEventListeners_RejectText(t *testing.T) {
	if err := NewText("x").AddEventListener("click", func(*Node, any) {}); err == nil {
		t.Error("Expected error for listener on text node")
	}
}

func TestRender_EventAttributes(t *testing.T) {
	btn := NewElement("button")
	btn.AddNamedEventListener("click", "save", func(*Node, any) {})
	btn.AddEventListener("click", func(*Node, any) {})
	btn.AddNamedEventListener("blur", "validate", func(*Node, any) {})
	btn.SetAttribute("onclick", "stale")
	btn.AddText("Save")

	want := `<button onblur="validate" onclick="save; clickHandler2">Save</button>`
	if got := btn.OuterHTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if removed := btn.RemoveEventListeners("click"); removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	if !reflect.DeepEqual(btn.EventNames(), []string{"blur"}) {
		t.Errorf("Unexpected events: %v", btn.EventNames())
	}
}
