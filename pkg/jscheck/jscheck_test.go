package jscheck

import (
	"testing"

	"github.com/lcalzada-xor/framestrip/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert.NoError(t, Parse("if (top != self) { top.location = self.location }"))
	assert.NoError(t, Parse(""))

	err := Parse("if (top != self { run() }")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		rewritten string
		wantErr   bool
	}{
		{"both parse", "window.top", security.Strip("window.top"), false},
		{"original broken", "window.top(", "window.top(", false},
		{"regression", "window.top", "(window.top", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.original, tt.rewritten)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrRewriteBroke)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestCompare_RewrittenCorpusParses(t *testing.T) {
	for _, src := range []string{
		"if (top != self) run()",
		"if (window.top !== window.self) run()",
		"if (window['top'] != window['parent']) run()",
		"if (parent.frames.length > 0) run()",
		"if (parent && parent != window) run()",
		"if (top.location != self.location) { top.location.href = self.location.href }",
		"var n = (c = window).parent",
		"var o = { top: 1, parent: 2 }, top2 = o.top",
		"const parent = () => { bar: 'bar' }\nparent.bar",
		"x = typeof top === 'undefined' ? 1 : `${window.top}`",
		"for (; !function (n) {\n  return n === n.parent\n}(window);) {}",
		"var f = (parent) => parent.x",
		"list.map((parent, i) => parent.id)",
		"list.filter(async (top) => await top)",
		"try { x() } catch (parent) { parent.y }",
		"var [top] = [1]",
		"const [a, [parent]] = b; let { c: top } = d",
		"var o = { f(parent) { return parent.x } }",
		"class A { constructor(top) { this.t = top } }",
	} {
		t.Run(src, func(t *testing.T) {
			assert.NoError(t, Compare(src, security.Strip(src)))
		})
	}
}
