package models

import (
	"fmt"
	"net/url"
	"strings"
)

type InputKind string

const (
	InputFile  InputKind = "file"
	InputStdin InputKind = "stdin"
	InputURL   InputKind = "url"
)

type ContentKind string

const (
	ContentJavaScript ContentKind = "javascript"
	ContentHTML       ContentKind = "html"
)

// Input is one source to rewrite.
type Input struct {
	Kind    InputKind   `json:"kind"`
	Source  string      `json:"source"`
	Content ContentKind `json:"content"`
}

// Validate checks that the input is well formed.
func (in *Input) Validate() error {
	switch in.Kind {
	case InputStdin:
		return nil
	case InputFile:
		if in.Source == "" {
			return fmt.Errorf("file path is required")
		}
		return nil
	case InputURL:
		u, err := url.Parse(in.Source)
		if err != nil {
			return fmt.Errorf("invalid URL: %v", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("URL has no host: %s", in.Source)
		}
		return nil
	default:
		return fmt.Errorf("invalid input kind: %s", in.Kind)
	}
}

// ParseInput classifies a command line argument:
// - "-" reads standard input
// - "http://..." or "https://..." is fetched
// - anything else is a file path
//
// Sources ending in .html or .htm are treated as HTML documents.
func ParseInput(arg string) (*Input, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("empty input")
	}

	in := &Input{Source: arg, Content: ContentJavaScript}
	lower := strings.ToLower(arg)
	switch {
	case arg == "-":
		in.Kind = InputStdin
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		in.Kind = InputURL
		if u, err := url.Parse(arg); err == nil {
			lower = strings.ToLower(u.Path)
		}
	default:
		in.Kind = InputFile
	}
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		in.Content = ContentHTML
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}
