package jscheck

import (
	"github.com/dop251/goja"
)

const (
	innerHref = "https://app.example/"
	outerHref = "https://runner.example/__/"
)

// Sandbox runs code as if it were loaded in a frame nested in an outer
// window that hosts the resolver. window, self and the global object are
// the inner frame; top and parent are the outer one.
type Sandbox struct {
	Runtime *goja.Runtime

	// Resolved lists the property of every resolver call, in order.
	Resolved []string
	// Busted is set when code navigated the outer frame or called run().
	Busted bool

	global *goja.Object
	outer  *goja.Object
}

// NewSandbox creates a Sandbox with a fresh runtime.
func NewSandbox() *Sandbox {
	vm := goja.New()
	s := &Sandbox{Runtime: vm, global: vm.GlobalObject()}
	s.setupFrames()
	return s
}

func (s *Sandbox) setupFrames() {
	vm := s.Runtime

	vm.Set("window", s.global)
	vm.Set("self", s.global)
	vm.Set("frames", vm.NewArray())
	loc := vm.NewObject()
	loc.Set("href", innerHref)
	vm.Set("location", loc)

	outer := vm.NewObject()
	s.outer = outer
	outer.Set("self", outer)
	outer.Set("window", outer)
	outer.Set("top", outer)
	outer.Set("parent", outer)
	outer.Set("frames", vm.NewArray(s.global))

	bust := vm.ToValue(func(goja.FunctionCall) goja.Value {
		s.Busted = true
		return goja.Undefined()
	})
	outerLoc := vm.NewObject()
	outerLoc.DefineAccessorProperty("href",
		vm.ToValue(func(goja.FunctionCall) goja.Value { return vm.ToValue(outerHref) }),
		bust, goja.FLAG_TRUE, goja.FLAG_TRUE)
	outer.DefineAccessorProperty("location",
		vm.ToValue(func(goja.FunctionCall) goja.Value { return outerLoc }),
		bust, goja.FLAG_TRUE, goja.FLAG_TRUE)

	cy := vm.NewObject()
	cy.Set("resolveWindowReference", s.resolve)
	outer.Set("Cypress", cy)

	vm.Set("top", outer)
	vm.Set("parent", outer)
	vm.Set("run", bust)
}

// resolve stands in for the runner's resolver: frame references from the
// inner frame resolve to the inner frame itself.
func (s *Sandbox) resolve(call goja.FunctionCall) goja.Value {
	win := call.Argument(0)
	recv := call.Argument(1)
	prop := call.Argument(2).String()
	s.Resolved = append(s.Resolved, prop)

	isFrame := recv.SameAs(s.global) || recv.SameAs(s.outer)
	switch {
	case isFrame && (prop == "top" || prop == "parent"):
		return win
	case recv.SameAs(s.outer) && prop == "location":
		return win.ToObject(s.Runtime).Get("location")
	}
	return recv.ToObject(s.Runtime).Get(prop)
}

// Run executes code in the sandbox.
func (s *Sandbox) Run(code string) error {
	_, err := s.Runtime.RunString(code)
	return err
}

// Get returns a global variable.
func (s *Sandbox) Get(name string) goja.Value {
	return s.Runtime.Get(name)
}

// IsOuterFrame reports whether v is the outer window.
func (s *Sandbox) IsOuterFrame(v goja.Value) bool {
	return v != nil && v.SameAs(s.outer)
}

// IsWindow reports whether v is the sandboxed inner window.
func (s *Sandbox) IsWindow(v goja.Value) bool {
	return v != nil && v.SameAs(s.global)
}
