package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/config"
	"github.com/lcalzada-xor/framestrip/pkg/htmlscript"
	"github.com/lcalzada-xor/framestrip/pkg/jscheck"
	"github.com/lcalzada-xor/framestrip/pkg/logger"
	"github.com/lcalzada-xor/framestrip/pkg/models"
	"github.com/lcalzada-xor/framestrip/pkg/network"
	"github.com/lcalzada-xor/framestrip/pkg/security"
	"golang.org/x/sync/errgroup"
)

// ErrNoOutput is returned when several inputs would share standard output.
var ErrNoOutput = errors.New("several inputs need an output directory")

// Runner rewrites a batch of inputs
type Runner struct {
	options *Options
	log     *logger.Logger
	client  *network.Client
}

// New creates a new Runner instance
func New(options *Options, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		options: options,
		log:     log,
		client:  network.NewClient(options.Timeout, options.Proxy, options.Concurrency, options.RateLimit),
	}
}

// Banner prints the tool banner
func Banner(w io.Writer) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "   \x1b[38;5;93m┌─┐┬─┐┌─┐┌┬┐┌─┐┌─┐┌┬┐┬─┐┬┌─┐\x1b[0m")
	fmt.Fprintln(w, "   \x1b[38;5;129m├┤ ├┬┘├─┤│││├┤ └─┐ │ ├┬┘│├─┘\x1b[0m")
	fmt.Fprintln(w, "   \x1b[38;5;141m└  ┴└─┴ ┴┴ ┴└─┘└─┘ ┴ ┴└─┴┴  \x1b[0m")
	fmt.Fprintf(w, "   \x1b[38;5;141m%s\x1b[0m | \x1b[38;5;141m%s\x1b[0m\n", config.Version, config.Author)
	fmt.Fprintln(w, "")
}

// Run rewrites every input. Failures of single inputs are reported in
// their Result; the returned error is set only when the batch itself
// cannot run or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, args []string) ([]models.Result, error) {
	inputs := make([]*models.Input, 0, len(args))
	for _, arg := range args {
		in, err := models.ParseInput(arg)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", arg, err)
		}
		if r.options.HTML {
			in.Content = models.ContentHTML
		}
		inputs = append(inputs, in)
	}
	if len(inputs) > 1 && r.options.OutputDir == "" {
		return nil, ErrNoOutput
	}

	var outputs []string
	if r.options.OutputDir != "" {
		if err := os.MkdirAll(r.options.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		outputs = outputPaths(r.options.OutputDir, inputs)
	}

	r.log.V("Concurrency: %d workers", r.options.Concurrency)
	r.log.V("Inputs: %d", len(inputs))

	results := make([]models.Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.options.Concurrency, 1))

	for i, in := range inputs {
		i, in := i, in
		out := ""
		if outputs != nil {
			out = outputs[i]
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = r.process(ctx, in, out)
			if results[i].Error != "" {
				r.log.Error("%s: %s", in.Source, results[i].Error)
			} else {
				r.log.V("%s: %d references rewritten", in.Source, results[i].Rewrites())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) process(ctx context.Context, in *models.Input, out string) (res models.Result) {
	start := time.Now()
	res = models.Result{Input: in.Source, Output: out, Content: in.Content, Verify: models.VerifySkipped}
	defer func() { res.Duration = time.Since(start) }()

	src, err := r.open(ctx, in)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer src.Close()

	var dst io.Writer = r.options.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		defer f.Close()
		dst = f
	}

	var st security.Stats
	if r.options.Verify && in.Content == models.ContentJavaScript {
		st, res.Verify, err = r.rewriteVerified(dst, src)
	} else {
		st, err = r.rewrite(dst, src, in.Content)
	}
	res.Stats = models.Stats{
		Replacements:   st.Replacements,
		BareReferences: st.BareReferences,
		BytesIn:        st.BytesIn,
		BytesOut:       st.BytesOut,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func (r *Runner) securityOptions() []security.Option {
	if r.options.MaxReceiver > 0 {
		return []security.Option{security.WithMaxReceiverSize(r.options.MaxReceiver)}
	}
	return nil
}

func (r *Runner) rewrite(dst io.Writer, src io.Reader, content models.ContentKind) (security.Stats, error) {
	if content == models.ContentHTML {
		return htmlscript.Rewrite(dst, src, r.securityOptions()...)
	}
	return security.Copy(dst, src, r.securityOptions()...)
}

// rewriteVerified buffers the whole input so the rewrite can be parsed
// before anything is written.
func (r *Runner) rewriteVerified(dst io.Writer, src io.Reader) (security.Stats, models.VerifyStatus, error) {
	original, err := io.ReadAll(src)
	if err != nil {
		return security.Stats{}, models.VerifySkipped, err
	}

	var buf bytes.Buffer
	st, err := security.Copy(&buf, bytes.NewReader(original), r.securityOptions()...)
	if err != nil {
		return st, models.VerifySkipped, err
	}

	status := models.VerifyOK
	if jscheck.Parse(string(original)) != nil {
		status = models.VerifyUnparsed
	} else if err := jscheck.Compare(string(original), buf.String()); err != nil {
		r.log.VV("verify: %v", err)
		status = models.VerifyBroken
	}

	_, err = buf.WriteTo(dst)
	return st, status, err
}

func (r *Runner) open(ctx context.Context, in *models.Input) (io.ReadCloser, error) {
	switch in.Kind {
	case models.InputStdin:
		return io.NopCloser(r.options.Stdin), nil
	case models.InputURL:
		body, err := r.client.Fetch(ctx, in.Source)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(body)), nil
	default:
		return os.Open(in.Source)
	}
}

// outputPaths names one file per input inside dir, keeping base names
// and numbering duplicates.
func outputPaths(dir string, inputs []*models.Input) []string {
	taken := make(map[string]bool)
	paths := make([]string, len(inputs))
	var dups []int
	for i, in := range inputs {
		name := baseName(in)
		if taken[name] {
			dups = append(dups, i)
			continue
		}
		taken[name] = true
		paths[i] = filepath.Join(dir, name)
	}
	// numbered names must not collide with any input's own name
	for _, i := range dups {
		name := baseName(inputs[i])
		ext := filepath.Ext(name)
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s.%d%s", name[:len(name)-len(ext)], n, ext)
			if !taken[candidate] {
				taken[candidate] = true
				paths[i] = filepath.Join(dir, candidate)
				break
			}
		}
	}
	return paths
}

func baseName(in *models.Input) string {
	ext := ".js"
	if in.Content == models.ContentHTML {
		ext = ".html"
	}
	switch in.Kind {
	case models.InputStdin:
		return "stdin" + ext
	case models.InputURL:
		u, err := url.Parse(in.Source)
		if err == nil {
			if b := path.Base(u.Path); b != "/" && b != "." {
				return b
			}
			return u.Hostname() + ext
		}
		return "index" + ext
	default:
		return filepath.Base(in.Source)
	}
}
