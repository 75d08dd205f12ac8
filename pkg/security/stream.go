package security

import "io"

// Stripper applies Strip to input that arrives in pieces. Concatenating
// the output of every Feed call and of Finish gives exactly Strip of the
// concatenated input, whatever the chunk boundaries.
//
// A Stripper is not safe for concurrent use.
type Stripper struct {
	opts options
	sc   *scanner
	done bool
}

// NewStripper returns a Stripper ready for the first chunk.
func NewStripper(opts ...Option) *Stripper {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	st := &Stripper{opts: o}
	st.Reset()
	return st
}

// Feed consumes chunk and returns the output that is now settled. Text
// that may still belong to a reference is held back until a later Feed
// or Finish. Feed after Finish returns nil until Reset.
func (st *Stripper) Feed(chunk []byte) []byte {
	if st.done {
		return nil
	}
	st.sc.feed(chunk)
	return st.sc.flush()
}

// Finish resolves whatever input is still pending as end of input and
// returns the remaining output.
func (st *Stripper) Finish() []byte {
	if st.done {
		return nil
	}
	st.done = true
	st.sc.final = true
	st.sc.run()
	return st.sc.drain()
}

// Reset discards all state so the Stripper can start a new stream.
func (st *Stripper) Reset() {
	st.sc = newScanner(st.opts)
	st.done = false
}

// Stats reports what the Stripper did so far.
func (st *Stripper) Stats() Stats {
	return st.sc.stats
}

// Writer rewrites everything written to it and forwards the result to the
// underlying writer.
type Writer struct {
	w      io.Writer
	st     *Stripper
	closed bool
}

// NewWriter returns a Writer forwarding to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, st: NewStripper(opts...)}
}

// Write implements io.Writer. It reports len(p) on success even though
// part of the rewritten output may still be buffered.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if out := w.st.Feed(p); len(out) > 0 {
		if _, err := w.w.Write(out); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Close flushes the buffered output. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if out := w.st.Finish(); len(out) > 0 {
		if _, err := w.w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports what the Writer rewrote so far.
func (w *Writer) Stats() Stats {
	return w.st.Stats()
}

const readChunk = 32 << 10

type reader struct {
	src     io.Reader
	st      *Stripper
	buf     []byte
	pending []byte
	err     error
}

// NewReader returns a reader yielding the rewritten content of r.
func NewReader(r io.Reader, opts ...Option) io.Reader {
	return &reader{src: r, st: NewStripper(opts...), buf: make([]byte, readChunk)}
}

func (r *reader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		n, err := r.src.Read(r.buf)
		if n > 0 {
			r.pending = r.st.Feed(r.buf[:n])
		}
		switch {
		case err == io.EOF:
			r.pending = append(r.pending, r.st.Finish()...)
			r.err = io.EOF
		case err != nil:
			r.err = err
		}
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// Copy streams src through the rewriter into dst.
func Copy(dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	w := NewWriter(dst, opts...)
	if _, err := io.Copy(w, src); err != nil {
		return w.Stats(), err
	}
	err := w.Close()
	return w.Stats(), err
}
