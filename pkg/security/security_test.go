package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func match(receiver, prop string) string {
	return "(window.top.Cypress.resolveWindowReference(window, " + receiver + ", '" + prop + "'))"
}

func bare(name string) string {
	return "(" + name + " === window['" + name + "'] ? " + match("window", name) + " : " + name + ")"
}

func TestStrip_ResolverInjection(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`window.top`, match("window", "top")},
		{`window.parent`, match("window", "parent")},
		{`window['top']`, match("window", "top")},
		{`window['parent']`, match("window", "parent")},
		{`window["top"]`, match("window", "top")},
		{`window["parent"]`, match("window", "parent")},
		{`foowindow.top`, match("foowindow", "top")},
		{`foowindow['top']`, match("foowindow", "top")},
		{`window.topfoo`, ""},
		{`window['topfoo']`, ""},
		{`window.top.foo`, match("window", "top") + ".foo"},
		{`window['top'].foo`, match("window", "top") + ".foo"},
		{`window.top["foo"]`, match("window", "top") + `["foo"]`},
		{`window['top']["foo"]`, match("window", "top") + `["foo"]`},
		{
			`if (window["top"] != window["parent"]) run()`,
			`if (` + match("window", "top") + ` != ` + match("window", "parent") + `) run()`,
		},
		{
			`if (top != self) run()`,
			`if (` + bare("top") + ` != self) run()`,
		},
		{
			`if (window != top) run()`,
			`if (window != ` + bare("top") + `) run()`,
		},
		{
			`if (top.location != self.location) run()`,
			`if (` + match("top", "location") + ` != ` + match("self", "location") + `) run()`,
		},
		{
			`n = (c = n).parent`,
			`n = ` + match("(c = n)", "parent"),
		},
	}

	for _, tt := range tests {
		expected := tt.expected
		if expected == "" {
			expected = tt.input
		}
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, expected, Strip(tt.input))
		})
	}
}

func TestStrip_JiraWindowGetter(t *testing.T) {
	jira := "for (; !function (n) {\n  return n === n.parent\n}(n);) {}"
	assert.Equal(t,
		"for (; !function (n) {\n  return n === "+match("n", "parent")+"\n}(n);) {}",
		Strip(jira))

	jira2 := `(function(n){for(;!function(l){return l===l.parent}(l)&&function(l){try{if(void 0==l.location.href)return!1}catch(l){return!1}return!0}(l.parent);)l=l.parent;return l})`
	assert.Equal(t,
		`(function(n){for(;!function(l){return l===`+match("l", "parent")+`}(l)&&function(l){try{if(void 0==`+match("l", "location")+`.href)return!1}catch(l){return!1}return!0}(`+match("l", "parent")+`);)l=`+match("l", "parent")+`;return l})`,
		Strip(jira2))
}

func TestStrip_FrameComparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`if (top!=self) run()`, `if (` + bare("top") + `!=self) run()`},
		{`if (self !== top) run()`, `if (self !== ` + bare("top") + `) run()`},
		{`if (self!==top) run()`, `if (self!==` + bare("top") + `) run()`},
		{`if (top===self) return`, `if (` + bare("top") + `===self) return`},
		{`if (window.top !== window.self) run()`, `if (` + match("window", "top") + ` !== window.self) run()`},
		{`if (window.self != window.top) run()`, `if (window.self != ` + match("window", "top") + `) run()`},
		{`if (window["top"] != self['parent']) run()`, `if (` + match("window", "top") + ` != ` + match("self", "parent") + `) run()`},
		{`if (parent.frames.length > 0) run()`, `if (` + bare("parent") + `.frames.length > 0) run()`},
		{`if (parent && parent != window) run()`, `if (` + bare("parent") + ` && ` + bare("parent") + ` != window) run()`},
		{
			`if ((self.parent && !(self.parent === self)) && (self.parent.frames.length != 0)) run()`,
			`if ((` + match("self", "parent") + ` && !(` + match("self", "parent") + ` === self)) && (` + match("self", "parent") + `.frames.length != 0)) run()`,
		},
		{
			`if (top.location!=self.location&&(top.location.href=self.location.href)) run()`,
			`if (` + match("top", "location") + `!=` + match("self", "location") + `&&(` + match("top", "location") + `.href=` + match("self", "location") + `.href)) run()`,
		},
		{`if (top.location != location) run()`, `if (` + match("top", "location") + ` != location) run()`},
		{`top.location = url`, bare("top") + `.location = url`},
		{`typeof top === 'undefined'`, `typeof ` + bare("top") + ` === 'undefined'`},
		{`x = a ? top : b`, `x = a ? ` + bare("top") + ` : b`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strip(tt.input))
		})
	}
}

func TestStrip_Receivers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`a.b(c).parent`, match("a.b(c)", "parent")},
		{`x[0].top`, match("x[0]", "top")},
		{`this.parent`, match("this", "parent")},
		{`window.top.parent`, match(match("window", "top"), "parent")},
		{`f((c = n).parent)`, `f(` + match("(c = n)", "parent") + `)`},
		{`'abc'.top`, match("'abc'", "top")},
		{`window.top.call(x)`, match("window", "top") + ".call(x)"},
		{`a . top`, `a . top`},
		{`a. top`, `a. top`},
		{`window?.top`, `window?.top`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Strip(tt.input))
		})
	}
}

func TestStrip_CallsAreNotReferences(t *testing.T) {
	for _, input := range []string{
		`top()`,
		`top ()`,
		`parent()`,
		`foo.top()`,
		`foo.parent()`,
		`foo("top")`,
		`foo("parent")`,
	} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, input, Strip(input))
		})
	}
}

func TestStrip_SubstringSafety(t *testing.T) {
	for _, input := range []string{
		"top1",
		"settop",
		"settopbox",
		"parent1",
		"grandparent",
		"grandparents",
		"topFoo",
		"topFoo.window",
		"topFoo.window != topFoo",
		"parentFoo",
		"parentFoo.window",
		"parentFoo.window != parentFoo",
		"$top",
		"_parent",
		"this.#top",
		"window.self",
		"self",
		"window",
		"location",
	} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, input, Strip(input))
		})
	}

	assert.Equal(t, "settop + "+match("window", "top")+" + topFoo", Strip("settop + window.top + topFoo"))
}

func TestStrip_OpaqueLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`var s = "window.top"`, ""},
		{`var s = 'if (top != self) run()'`, ""},
		{`var s = "it's \"top\""; window.top`, `var s = "it's \"top\""; ` + match("window", "top")},
		{"// window.top\nwindow.top", "// window.top\n" + match("window", "top")},
		{"/* if (top != self) */ x", ""},
		{"var r = /top/g.test(y)", ""},
		{"var r = /'/; window.top", "var r = /'/; " + match("window", "top")},
		{"var r = /[/']/; window.top", "var r = /[/']/; " + match("window", "top")},
		{"a = b / c; window.top", "a = b / " + "c; " + match("window", "top")},
		{"`window.top`", ""},
		{"`a ${window.top} b`", "`a ${" + match("window", "top") + "} b`"},
		{"`a ${ {x: 1}.x } ${top} b`", "`a ${ {x: 1}.x } ${" + bare("top") + "} b`"},
		{`<div style="left: 1500px; top: 0px;"></div>`, ""},
	}

	for _, tt := range tests {
		expected := tt.expected
		if expected == "" {
			expected = tt.input
		}
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, expected, Strip(tt.input))
		})
	}
}

func TestStrip_BindingsAreNotReferences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"null guard", `if (parent !== null && parent.tag !== 'HostComponent' && parent.tag !== 'HostRoot') { }`, ""},
		{"reversed null guard", `if (null !== parent && parent.tag !== 'HostComponent' && parent.tag !== 'HostRoot') { }`, ""},
		{"loose null guard", `while (parent != null) parent = parent.return`, ""},
		{"const declaration", "const parent = () => { bar: 'bar' }\n\nparent.bar", ""},
		{"var declaration", "var top = 1; top + 1", ""},
		{"assignment", "top = 1", ""},
		{"compound assignment", "parent += 1; top ??= x", ""},
		{"update", "parent++; top--", ""},
		{"member assignment", "window.top = 1; x.parent += 1", ""},
		{"arrow parameter", "parent => parent.x", ""},
		{"object keys", "var o = { top: 1, parent: 2 }", ""},
		{"object shorthand", "var o = { top, parent }", ""},
		{"css declaration", "div { top: 0px; }", ""},
		{"function name", "function top() {}", ""},
		{"parenthesized arrow parameter", "var f = (parent) => parent.x", ""},
		{"arrow parameter list", "list.map((parent, i) => parent.id)", ""},
		{"async arrow parameter", "list.filter(async (top) => await top)", ""},
		{"arrow array pattern", "var f = ([top, n]) => top + n", ""},
		{"catch parameter", "try { x() } catch (parent) { parent.y }", ""},
		{"method parameter", "var o = { f(top) { return top.x } }", ""},
		{"array declaration pattern", "var [top] = [1]; top + 1", ""},
		{"nested declaration pattern", "const [a, [parent]] = b; let {x: top, y} = c", ""},
		{
			"arrow default value is still a read",
			"var f = (a = top) => a",
			"var f = (a = " + bare("top") + ") => a",
		},
		{
			"grouping is still a read",
			"x = (top, parent)",
			"x = (" + bare("top") + ", " + bare("parent") + ")",
		},
		{
			"catch parameter is scoped to the handler",
			"try {} catch (top) { top.x } top.x",
			"try {} catch (top) { top.x } " + bare("top") + ".x",
		},
		{
			"function parameter is scoped to the body",
			"function f(parent) { return parent.foo }\nparent.foo",
			"function f(parent) { return parent.foo }\n" + bare("parent") + ".foo",
		},
		{
			"declaration is scoped to the block",
			"{ let top = 1; top } top",
			"{ let top = 1; top } " + bare("top"),
		},
	}

	for _, tt := range tests {
		expected := tt.expected
		if expected == "" {
			expected = tt.input
		}
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, expected, Strip(tt.input))
		})
	}
}

func TestStrip_Identity(t *testing.T) {
	src := `
		var a = 1, b = [1, 2, 3];
		function add(x, y) { return x + y / 2 }
		const re = /\/+$/g;
		let tpl = ` + "`${a} + ${b.length}`" + `;
		obj?.call?.(a);
		x = y ? z : w;
		/* comment with window.top */
		// another with parent
	`
	assert.Equal(t, src, Strip(src))
	assert.Equal(t, "", Strip(""))
}

func TestStrip_Idempotent(t *testing.T) {
	for _, input := range []string{
		`window.top`,
		`window['parent'].foo`,
		`if (top != self) run()`,
		`if (top.location != self.location) run()`,
		`n = (c = n).parent`,
		`window.top.parent`,
		`a.b(c).parent`,
		"for (; !function (n) {\n  return n === n.parent\n}(n);) {}",
		fixtureHTML,
	} {
		t.Run(input, func(t *testing.T) {
			once := Strip(input)
			assert.Equal(t, once, Strip(once))
		})
	}
}

func TestStrip_RoundTrip(t *testing.T) {
	inputs := map[string][]string{
		`if (window.top != top) x.parent.y()`: {
			match("window", "top"), "window.top",
			bare("top"), "top",
			match("x", "parent"), "x.parent",
		},
		`n = (c = n).parent`: {match("(c = n)", "parent"), "(c = n).parent"},
	}
	for input, pairs := range inputs {
		out := Strip(input)
		r := strings.NewReplacer(pairs...)
		assert.Equal(t, input, r.Replace(out))
	}
}

func TestStrip_MaxReceiverSize(t *testing.T) {
	long := "(" + strings.Repeat("x", 400) + ").parent"
	assert.Equal(t, long, string(StripBytes([]byte(long), WithMaxReceiverSize(256))))
	assert.Equal(t, match("("+strings.Repeat("x", 400)+")", "parent"), Strip(long))
}

func TestStrip_Stats(t *testing.T) {
	st := NewStripper()
	out := st.Feed([]byte(`if (top != self && top.location && window.parent) run()`))
	out = append(out, st.Finish()...)

	stats := st.Stats()
	assert.Equal(t, 2, stats.Replacements)
	assert.Equal(t, 1, stats.BareReferences)
	assert.Equal(t, 3, stats.Rewrites())
	assert.EqualValues(t, len(out), stats.BytesOut)
	assert.EqualValues(t, len(`if (top != self && top.location && window.parent) run()`), stats.BytesIn)
}

func TestReplacement(t *testing.T) {
	assert.Equal(t, "(window.top.Cypress.resolveWindowReference(window, (c = n), 'parent'))", Replacement("(c = n)", "parent"))
}
