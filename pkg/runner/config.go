package runner

import (
	"io"
	"os"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/config"
	"github.com/lcalzada-xor/framestrip/pkg/security"
)

// Options holds all configuration options for the runner
type Options struct {
	// Fetching
	Concurrency int
	Timeout     time.Duration
	Proxy       string
	RateLimit   float64

	// Rewriting
	HTML        bool // treat every input as an HTML document
	MaxReceiver int
	Verify      bool

	// Output
	OutputDir    string
	OutputFormat string

	Stdin  io.Reader
	Stdout io.Writer
}

// DefaultOptions returns a new Options struct with default values
func DefaultOptions() *Options {
	return &Options{
		Concurrency:  config.DefaultConcurrency,
		Timeout:      config.DefaultTimeout,
		MaxReceiver:  security.DefaultMaxReceiverSize,
		OutputFormat: config.DefaultFormat,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
	}
}
