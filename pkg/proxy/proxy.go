// Package proxy serves an application through a reverse proxy that strips
// frame references from the JavaScript it delivers.
package proxy

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"

	"github.com/lcalzada-xor/framestrip/pkg/htmlscript"
	"github.com/lcalzada-xor/framestrip/pkg/logger"
	"github.com/lcalzada-xor/framestrip/pkg/security"
)

// Kind is how a response body is rewritten.
type Kind int

const (
	KindNone Kind = iota
	KindJavaScript
	KindHTML
)

func (k Kind) String() string {
	switch k {
	case KindJavaScript:
		return "javascript"
	case KindHTML:
		return "html"
	default:
		return "none"
	}
}

// HTML rewriting modes.
const (
	HTMLScripts  = "scripts"  // only <script> bodies
	HTMLDocument = "document" // the whole document as script text
	HTMLOff      = "off"
)

var javaScriptMIME = map[string]bool{
	"application/javascript":   true,
	"application/x-javascript": true,
	"application/ecmascript":   true,
	"text/javascript":          true,
	"text/ecmascript":          true,
	"text/x-javascript":        true,
}

// ShouldRewrite decides from the response headers whether and how a body
// is rewritten. Encoded bodies are left alone.
func ShouldRewrite(contentType, encoding string) Kind {
	if enc := strings.ToLower(strings.TrimSpace(encoding)); enc != "" && enc != "identity" {
		return KindNone
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return KindNone
	}
	switch {
	case javaScriptMIME[mt]:
		return KindJavaScript
	case mt == "text/html", mt == "application/xhtml+xml":
		return KindHTML
	}
	return KindNone
}

// Options configures a Proxy.
type Options struct {
	HTMLMode    string
	Disabled    bool
	MaxReceiver int
	// Transport reaches the target; nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Proxy is an http.Handler forwarding to a single target.
type Proxy struct {
	rp   *httputil.ReverseProxy
	opts Options
	log  *logger.Logger

	mu        sync.Mutex
	stats     security.Stats
	responses int
}

// New returns a Proxy forwarding every request to target.
func New(target *url.URL, opts Options, log *logger.Logger) *Proxy {
	if opts.HTMLMode == "" {
		opts.HTMLMode = HTMLScripts
	}
	if log == nil {
		log = logger.Nop()
	}
	p := &Proxy{opts: opts, log: log}
	p.rp = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			// the transport negotiates and decodes compression itself
			pr.Out.Header.Del("Accept-Encoding")
		},
		Transport:      opts.Transport,
		ModifyResponse: p.modifyResponse,
		ErrorLog:       log.StdLog(),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("proxy %s %s: %v", r.Method, r.URL, err)
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return p
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.rp.ServeHTTP(w, r)
}

// Stats returns the totals over every rewritten response.
func (p *Proxy) Stats() (security.Stats, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats, p.responses
}

func (p *Proxy) record(u *url.URL, kind Kind, st security.Stats) {
	p.mu.Lock()
	p.stats.Add(st)
	p.responses++
	p.mu.Unlock()
	p.log.V("%s %s: %d references rewritten", kind, u, st.Rewrites())
}

type rewriteFunc func(dst io.Writer, src io.Reader) (security.Stats, error)

func (p *Proxy) modifyResponse(resp *http.Response) error {
	if p.opts.Disabled {
		return nil
	}
	kind := ShouldRewrite(resp.Header.Get("Content-Type"), resp.Header.Get("Content-Encoding"))

	var opts []security.Option
	if p.opts.MaxReceiver > 0 {
		opts = append(opts, security.WithMaxReceiverSize(p.opts.MaxReceiver))
	}

	var rewrite rewriteFunc
	switch {
	case kind == KindJavaScript, kind == KindHTML && p.opts.HTMLMode == HTMLDocument:
		rewrite = func(dst io.Writer, src io.Reader) (security.Stats, error) {
			return security.Copy(dst, src, opts...)
		}
	case kind == KindHTML && p.opts.HTMLMode == HTMLScripts:
		rewrite = func(dst io.Writer, src io.Reader) (security.Stats, error) {
			return htmlscript.Rewrite(dst, src, opts...)
		}
	default:
		return nil
	}

	resp.Body = p.pipe(resp, kind, rewrite)
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return nil
}

// pipe streams the body through rewrite on its own goroutine. Closing the
// returned body stops the rewrite.
func (p *Proxy) pipe(resp *http.Response, kind Kind, rewrite rewriteFunc) io.ReadCloser {
	body := resp.Body
	u := resp.Request.URL
	pr, pw := io.Pipe()
	go func() {
		defer body.Close()
		st, err := rewrite(pw, body)
		if err != nil {
			p.log.Error("rewrite %s: %v", u, err)
			pw.CloseWithError(fmt.Errorf("rewrite %s: %w", u, err))
			return
		}
		p.record(u, kind, st)
		pw.Close()
	}()
	return pr
}
