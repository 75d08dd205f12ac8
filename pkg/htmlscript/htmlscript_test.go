package htmlscript

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/lcalzada-xor/framestrip/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsJavaScriptType(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{"", true},
		{"text/javascript", true},
		{" Text/JavaScript ", true},
		{"application/javascript; charset=utf-8", true},
		{"module", true},
		{"text/javascript1.5", true},
		{"application/json", false},
		{"text/template", false},
		{"importmap", false},
		{"text/x-handlebars-template", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJavaScriptType(tt.typ))
		})
	}
}

func TestRewrite_OnlyScripts(t *testing.T) {
	doc := `<!DOCTYPE html>
<HTML>
<head><title>window.top</title></head>
<body onload="x">
  <div style="left: 1500px; top: 0px;">if (top != self) run()</div>
  <SCRIPT>if (top != self) top.location = self.location</SCRIPT>
  <script type="application/json">{"top": window.top}</script>
  <script type="module">window.parent.postMessage(1, '*')</script>
  <!-- window.top -->
  <p>a &amp; b</p>
</body>
</HTML>
`
	want := strings.NewReplacer(
		`<SCRIPT>if (top != self) top.location = self.location</SCRIPT>`,
		`<SCRIPT>`+security.Strip(`if (top != self) top.location = self.location`)+`</SCRIPT>`,
		`<script type="module">window.parent.postMessage(1, '*')</script>`,
		`<script type="module">`+security.Strip(`window.parent.postMessage(1, '*')`)+`</script>`,
	).Replace(doc)

	got, stats, err := RewriteString(doc)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 4, stats.Rewrites())
}

func TestRewrite_Unchanged(t *testing.T) {
	for _, doc := range []string{
		"",
		"plain text with top and parent",
		`<a href="javascript:void(0)" title='window.top'>x</a>`,
		"<script></script>",
		"<script>var a = 1</script><style>div { top: 0 }</style>",
		"<div>unterminated",
	} {
		t.Run(doc, func(t *testing.T) {
			got, stats, err := RewriteString(doc)
			require.NoError(t, err)
			assert.Equal(t, doc, got)
			assert.Zero(t, stats.Rewrites())
		})
	}
}

func TestRewrite_StreamingSource(t *testing.T) {
	doc := "<p>x</p><script>if (window.top !== window.self) { window.top.location = location }</script><p>y</p>"
	var buf bytes.Buffer
	_, err := Rewrite(&buf, iotest.OneByteReader(strings.NewReader(doc)))
	require.NoError(t, err)

	expected, _, err := RewriteString(doc)
	require.NoError(t, err)
	assert.Equal(t, expected, buf.String())
	assert.Contains(t, buf.String(), "resolveWindowReference(window, window, 'top')")
}

func TestRewrite_ReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Rewrite(&bytes.Buffer{}, iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}
