// Package security neutralizes frame-busting code in JavaScript source.
//
// Every syntactic read of the browsing context's top or parent frame
// (window.top, window['parent'], a bare top, n.parent and so on) is
// replaced with a call to the test runner's resolver:
//
//	(window.top.Cypress.resolveWindowReference(window, RECEIVER, 'PROP'))
//
// All other bytes of the input are copied through unchanged. The rewriter
// is lexical: it tokenizes just enough JavaScript to skip strings,
// comments, template literals and regular expressions, and never builds
// a syntax tree.
package security

import "errors"

// ResolverCall is the function every rewritten reference is routed through.
const ResolverCall = "window.top.Cypress.resolveWindowReference"

// DefaultMaxReceiverSize bounds how many bytes of input a captured
// receiver may span. Accesses on longer receivers are left untouched.
const DefaultMaxReceiverSize = 64 << 10

// minReceiverSize keeps ordinary receivers such as window.self.parent
// rewritable whatever the option says.
const minReceiverSize = 256

// ErrClosed is returned when writing to a Writer after Close.
var ErrClosed = errors.New("security: write after close")

// Replacement returns the resolver call substituted for RECEIVER.PROP.
func Replacement(receiver, prop string) string {
	return "(" + ResolverCall + "(window, " + receiver + ", '" + prop + "'))"
}

// bareReference is what a bare top or parent becomes. A local variable
// that happens to share the name keeps its own value.
func bareReference(name string) string {
	return "(" + name + " === window['" + name + "'] ? " + Replacement("window", name) + " : " + name + ")"
}

var bareReferences = map[string]string{
	"top":    bareReference("top"),
	"parent": bareReference("parent"),
}

// Stats counts what a rewrite did.
type Stats struct {
	Replacements   int   `json:"replacements"`
	BareReferences int   `json:"bare_references"`
	BytesIn        int64 `json:"bytes_in"`
	BytesOut       int64 `json:"bytes_out"`
}

// Rewrites returns the number of references routed through the resolver.
func (s Stats) Rewrites() int {
	return s.Replacements + s.BareReferences
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Replacements += o.Replacements
	s.BareReferences += o.BareReferences
	s.BytesIn += o.BytesIn
	s.BytesOut += o.BytesOut
}

// Option configures a Stripper.
type Option func(*options)

type options struct {
	maxReceiver int
}

func defaultOptions() options {
	return options{maxReceiver: DefaultMaxReceiverSize}
}

// WithMaxReceiverSize sets how many bytes of source a receiver may span
// before the access on it is passed through. Values below 256 are raised
// to 256.
func WithMaxReceiverSize(n int) Option {
	return func(o *options) {
		if n < minReceiverSize {
			n = minReceiverSize
		}
		o.maxReceiver = n
	}
}

// Strip rewrites every frame reference in src. It is safe for concurrent
// use and never fails: malformed or truncated input is passed through on
// a best-effort basis.
func Strip(src string) string {
	return string(StripBytes([]byte(src)))
}

// StripBytes is Strip for byte slices.
func StripBytes(src []byte, opts ...Option) []byte {
	st := NewStripper(opts...)
	out := st.Feed(src)
	return append(out, st.Finish()...)
}
