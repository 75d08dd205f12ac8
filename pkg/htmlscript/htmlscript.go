// Package htmlscript rewrites the JavaScript embedded in an HTML document
// and copies everything else byte for byte.
package htmlscript

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/lcalzada-xor/framestrip/pkg/security"
	"golang.org/x/net/html"
)

// javaScriptTypes are the script type values browsers execute as classic
// scripts, plus "module".
var javaScriptTypes = map[string]bool{
	"":                         true,
	"module":                   true,
	"text/javascript":          true,
	"text/ecmascript":          true,
	"text/jscript":             true,
	"text/livescript":          true,
	"text/x-javascript":        true,
	"text/x-ecmascript":        true,
	"text/javascript1.0":       true,
	"text/javascript1.1":       true,
	"text/javascript1.2":       true,
	"text/javascript1.3":       true,
	"text/javascript1.4":       true,
	"text/javascript1.5":       true,
	"application/javascript":   true,
	"application/ecmascript":   true,
	"application/x-javascript": true,
	"application/x-ecmascript": true,
}

// IsJavaScriptType reports whether a <script> with the given type
// attribute is executed as JavaScript. An absent type counts as
// JavaScript.
func IsJavaScriptType(typ string) bool {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = strings.TrimSpace(typ[:i])
	}
	return javaScriptTypes[typ]
}

// Rewrite copies the HTML document from src to dst, stripping frame
// references from the body of every JavaScript <script> element.
func Rewrite(dst io.Writer, src io.Reader, opts ...security.Option) (security.Stats, error) {
	var stats security.Stats
	z := html.NewTokenizer(src)
	inScript := false

	for {
		tt := z.Next()
		// Raw must be written before TagName, which lower-cases the buffer.
		raw := z.Raw()

		switch tt {
		case html.ErrorToken:
			if len(raw) > 0 {
				if _, err := dst.Write(raw); err != nil {
					return stats, err
				}
			}
			if err := z.Err(); err != io.EOF {
				return stats, fmt.Errorf("htmlscript: %w", err)
			}
			return stats, nil

		case html.TextToken:
			if inScript {
				st := security.NewStripper(opts...)
				out := st.Feed(raw)
				out = append(out, st.Finish()...)
				stats.Add(st.Stats())
				raw = out
			}
			if _, err := dst.Write(raw); err != nil {
				return stats, err
			}

		default:
			if _, err := dst.Write(raw); err != nil {
				return stats, err
			}
			if tt == html.StartTagToken {
				inScript = isScriptStart(z)
			} else if tt == html.EndTagToken {
				inScript = false
			}
		}
	}
}

// RewriteString is Rewrite for in-memory documents.
func RewriteString(doc string, opts ...security.Option) (string, security.Stats, error) {
	var buf bytes.Buffer
	stats, err := Rewrite(&buf, strings.NewReader(doc), opts...)
	return buf.String(), stats, err
}

func isScriptStart(z *html.Tokenizer) bool {
	name, hasAttr := z.TagName()
	if string(name) != "script" {
		return false
	}
	typ := ""
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "type" {
			typ = string(val)
		}
	}
	return IsJavaScriptType(typ)
}
