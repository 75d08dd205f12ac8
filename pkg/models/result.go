package models

import "time"

type VerifyStatus string

const (
	VerifySkipped VerifyStatus = "skipped"
	// VerifyOK means the rewritten code parses.
	VerifyOK VerifyStatus = "ok"
	// VerifyUnparsed means the input did not parse either, so there was
	// nothing to compare against.
	VerifyUnparsed VerifyStatus = "unparsed"
	VerifyBroken   VerifyStatus = "broken"
)

// Stats mirrors the counters kept by the rewriter.
type Stats struct {
	Replacements   int   `json:"replacements"`
	BareReferences int   `json:"bare_references"`
	BytesIn        int64 `json:"bytes_in"`
	BytesOut       int64 `json:"bytes_out"`
}

// Result is the outcome of rewriting one input.
type Result struct {
	Input    string        `json:"input"`
	Output   string        `json:"output,omitempty"`
	Content  ContentKind   `json:"content"`
	Stats    Stats         `json:"stats"`
	Duration time.Duration `json:"duration_ns"`
	Verify   VerifyStatus  `json:"verify"`
	Error    string        `json:"error,omitempty"`
}

// Rewrites returns the number of references routed through the resolver.
func (r *Result) Rewrites() int {
	return r.Stats.Replacements + r.Stats.BareReferences
}

// Failed reports whether the input could not be rewritten or verified.
func (r *Result) Failed() bool {
	return r.Error != "" || r.Verify == VerifyBroken
}
