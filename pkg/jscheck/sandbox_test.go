package jscheck

import (
	"testing"

	"github.com/lcalzada-xor/framestrip/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandbox_FrameBustingIsNeutralized(t *testing.T) {
	for _, src := range []string{
		"if (top != self) run()",
		"if (top!=self) run()",
		"if (self != top) run()",
		"if (window != top) run()",
		"if (window.top !== window.self) { window.top.location = window.self.location }",
		"if (window.self != window.top) run()",
		"if (window['top'] != window) run()",
		"if (top.location != self.location) { top.location.href = self.location.href }",
		"if (parent && parent != window) run()",
		"if ((self.parent && !(self.parent === self)) && (self.parent.frames.length != 0)) run()",
	} {
		t.Run(src, func(t *testing.T) {
			before := NewSandbox()
			require.NoError(t, before.Run(src))
			assert.True(t, before.Busted, "original code should bust out of the frame")

			after := NewSandbox()
			require.NoError(t, after.Run(security.Strip(src)))
			assert.False(t, after.Busted)
			assert.NotEmpty(t, after.Resolved)
		})
	}
}

func TestSandbox_TopmostWindowLookup(t *testing.T) {
	src := "var n = window; for (; !function (n) { return n === n.parent }(n);) { n = n.parent } var result = n"

	before := NewSandbox()
	require.NoError(t, before.Run(src))
	assert.True(t, before.IsOuterFrame(before.Get("result")))

	after := NewSandbox()
	require.NoError(t, after.Run(security.Strip(src)))
	assert.True(t, after.IsWindow(after.Get("result")))
	assert.Equal(t, []string{"parent"}, after.Resolved)
}

func TestSandbox_LocalsKeepTheirValues(t *testing.T) {
	src := `
		var o = { top: 1, parent: 2 };
		function f(parent) { return parent.value }
		var got = f({ value: 3 }) + o.top + o.parent;
		var node = { tag: 'x', parent: null };
		var parent = node.parent;
		if (parent !== null && parent.tag) run();
	`
	s := NewSandbox()
	require.NoError(t, s.Run(security.Strip(src)))
	assert.Equal(t, int64(6), s.Get("got").ToInteger())
	assert.False(t, s.Busted)
}
