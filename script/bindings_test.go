package script

import (
	"testing"

	"github.com/chrisuehlinger/lightdom/dom"
	"github.com/chrisuehlinger/lightdom/html"
)

func TestBind_RunsHandler(t *testing.T) {
	r := NewRuntime(nil)
	btn := dom.NewElement("button")

	if err := r.Bind(btn, "click", `target.addClass("clicked"); target.setAttribute("data-last", data);`); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if n := btn.Trigger("click", "42"); n != 1 {
		t.Fatalf("Expected 1 handler, got %d", n)
	}

	if !btn.HasClass("clicked") {
		t.Error("Expected handler to add a class")
	}
	if got := btn.GetAttribute("data-last"); got != "42" {
		t.Errorf("Expected data-last=42, got %q", got)
	}
}

func TestBind_ListenerNamedBySource(t *testing.T) {
	r := NewRuntime(nil)
	btn := dom.NewElement("button")
	r.Bind(btn, "click", "target.addClass('a')")

	names := btn.EventHandlerNames("click")
	if len(names) != 1 || names[0] != "target.addClass('a')" {
		t.Errorf("Unexpected listener names: %v", names)
	}
}

func TestBind_SyntaxError(t *testing.T) {
	r := NewRuntime(nil)
	btn := dom.NewElement("button")

	if err := r.Bind(btn, "click", "function ("); err == nil {
		t.Fatal("Expected compile error")
	}
	if btn.HasEventListeners("click") {
		t.Error("Expected no listener after a failed bind")
	}
}

func TestBind_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	r := NewRuntime(nil)
	btn := dom.NewElement("button")
	r.Bind(btn, "click", "throw new Error('first')")
	r.Bind(btn, "click", "target.addClass('second')")
	r.Bind(btn, "click", "target.addClass('bad class')")

	if n := btn.Trigger("click", nil); n != 3 {
		t.Fatalf("Expected 3 handlers, got %d", n)
	}
	if !btn.HasClass("second") {
		t.Error("Expected second handler to run")
	}
	if len(r.Errors()) != 2 {
		t.Errorf("Expected 2 recorded errors, got %d", len(r.Errors()))
	}
}

func TestBind_TargetAccessors(t *testing.T) {
	r := NewRuntime(nil)
	doc := dom.NewDocument()
	list, err := html.ParseElement(doc, `<ul><li class="item">First</li></ul>`)
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	li := list.FirstChild()

	r.Bind(li, "check", `
		if (target.tagName !== "li") throw new Error("tag " + target.tagName);
		if (target.text() !== "First") throw new Error("text " + target.text());
		if (!target.hasClass("item")) throw new Error("class");
		if (target.getAttribute("missing") !== null) throw new Error("attr");
		if (target.parent().tagName !== "ul") throw new Error("parent");
		target.removeClass("item");
		target.setVisibility("hidden");
	`)
	li.Trigger("check", nil)

	if errs := r.Errors(); len(errs) != 0 {
		t.Fatalf("Unexpected handler errors: %v", errs)
	}
	if li.HasClass("item") {
		t.Error("Expected class to be removed")
	}
	if li.Visibility() != dom.Hidden {
		t.Errorf("Expected HIDDEN, got %v", li.Visibility())
	}
}

func TestBind_FromParsedMarkup(t *testing.T) {
	r := NewRuntime(nil)
	doc := dom.NewDocument()
	btn, err := html.ParseElement(doc, `<button onclick="target.addClass('on')">Go</button>`, html.WithHandlerBinder(r))
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}

	btn.Trigger("click", nil)
	if !btn.HasClass("on") {
		t.Error("Expected inline handler to run")
	}
	want := `<button class="on" onclick="target.addClass(&#39;on&#39;)">Go</button>`
	if got := btn.OuterHTML(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
