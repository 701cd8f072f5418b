package script

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/lightdom/dom"
)

// Bind compiles source as the body of function(target, data) and registers
// it on n as a listener for event. The listener's name is the source text,
// so rendering n reproduces the inline handler attribute.
//
// Errors thrown by the handler are recorded and logged; dispatch continues
// with the next listener.
func (r *Runtime) Bind(n *dom.Node, event, source string) error {
	fn, err := r.compileHandler(n, event, source)
	if err != nil {
		return err
	}
	return n.AddNamedEventListener(event, source, func(target *dom.Node, data any) {
		r.invoke(fn, target, event, data)
	})
}

func (r *Runtime) compileHandler(n *dom.Node, event, source string) (fn goja.Callable, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := fmt.Sprintf("<%s on%s>", n.TagName(), event)

	// Recover from panics in the goja parser/compiler
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler compilation panic in %s: %v", name, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(name, "(function(target, data) {\n"+source+"\n})", false)
	if err != nil {
		r.recordError(err)
		return nil, err
	}
	v, err := r.vm.RunProgram(program)
	if err != nil {
		r.recordError(err)
		return nil, err
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		err = fmt.Errorf("handler for %s is not callable", name)
		r.recordError(err)
		return nil, err
	}
	return fn, nil
}

func (r *Runtime) invoke(fn goja.Callable, target *dom.Node, event string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			r.recordError(fmt.Errorf("handler panic for %s: %v", event, p))
		}
	}()

	wrapped := r.wrapNode(target)
	if _, err := fn(wrapped, wrapped, r.vm.ToValue(data)); err != nil {
		r.recordError(err)
		return
	}
	r.log.Debug("Handler ran", zap.String("event", event), zap.String("target", target.TagName()))
}

// wrapNode exposes a node to handler code.
func (r *Runtime) wrapNode(n *dom.Node) *goja.Object {
	vm := r.vm
	obj := vm.NewObject()

	throw := func(err error) {
		if err != nil {
			panic(vm.NewGoError(err))
		}
	}
	arg := func(call goja.FunctionCall, i int) string {
		return call.Argument(i).String()
	}

	obj.Set("tagName", n.TagName())
	obj.Set("text", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(n.TextContent())
	})
	obj.Set("addClass", func(call goja.FunctionCall) goja.Value {
		classes := make([]string, 0, len(call.Arguments))
		for _, a := range call.Arguments {
			classes = append(classes, a.String())
		}
		throw(n.AddClass(classes...))
		return goja.Undefined()
	})
	obj.Set("removeClass", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(n.RemoveClass(arg(call, 0)))
	})
	obj.Set("hasClass", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(n.HasClass(arg(call, 0)))
	})
	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		throw(n.SetAttribute(arg(call, 0), arg(call, 1)))
		return goja.Undefined()
	})
	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := arg(call, 0)
		if !n.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(n.GetAttribute(name))
	})
	obj.Set("setVisibility", func(call goja.FunctionCall) goja.Value {
		switch strings.ToUpper(arg(call, 0)) {
		case "HIDDEN":
			n.SetVisibility(dom.Hidden)
		case "COLLAPSED":
			n.SetVisibility(dom.Collapsed)
		default:
			n.SetVisibility(dom.Visible)
		}
		return goja.Undefined()
	})
	obj.Set("parent", func(goja.FunctionCall) goja.Value {
		if p := n.Parent(); p != nil {
			return r.wrapNode(p)
		}
		return goja.Null()
	})
	return obj
}
