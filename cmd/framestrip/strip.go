package main

import (
	"fmt"
	"io"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/config"
	"github.com/lcalzada-xor/framestrip/pkg/models"
	"github.com/lcalzada-xor/framestrip/pkg/output"
	"github.com/lcalzada-xor/framestrip/pkg/runner"
	"github.com/spf13/cobra"
)

var (
	stripOutputDirFlag string
	stripFormatFlag    string
	stripHTMLFlag      bool
	stripVerifyFlag    bool
)

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [files|urls|-]...",
		Short: "Rewrite JavaScript files, URLs or stdin",
		Long: `Rewrite frame references in each input. Inputs are file paths, http(s)
URLs or "-" for standard input (the default). A single input is written to
standard output unless --output-dir is set; several inputs need
--output-dir. Inputs ending in .html or .htm only have their <script>
elements rewritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}

			opts := runner.DefaultOptions()
			opts.Concurrency = cfg.Concurrency
			opts.Timeout = cfg.Timeout
			opts.Proxy = cfg.Proxy
			opts.RateLimit = cfg.RateLimit
			opts.MaxReceiver = cfg.MaxReceiver
			opts.HTML = cfg.HTML
			opts.Verify = cfg.Verify
			opts.OutputDir = stripOutputDirFlag
			opts.OutputFormat = cfg.Format
			opts.Stdin = cmd.InOrStdin()
			opts.Stdout = cmd.OutOrStdout()

			// reports must not mix with rewritten code on stdout
			report := cmd.ErrOrStderr()
			if opts.OutputDir != "" {
				report = cmd.OutOrStdout()
			}
			if log.IsVerbose() {
				runner.Banner(cmd.ErrOrStderr())
			}

			results, err := runner.New(opts, log).Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			writeReport(report, results, opts.OutputFormat)
			return summarize(results)
		},
	}
	cmd.Flags().StringVarP(&stripOutputDirFlag, "output-dir", "o", "", "directory to write rewritten files to")
	cmd.Flags().StringVarP(&stripFormatFlag, "format", "f", config.DefaultFormat, "report format: url, human, json, table")
	cmd.Flags().BoolVar(&stripHTMLFlag, "html", false, "treat every input as an HTML document")
	cmd.Flags().BoolVar(&stripVerifyFlag, "verify", false, "check that rewritten JavaScript still parses")

	return cmd
}

func writeReport(w io.Writer, results []models.Result, format string) {
	if format == "table" {
		output.Table(w, results)
		return
	}
	if log.IsVerbose() || format == "json" || format == "url" {
		for _, res := range results {
			fmt.Fprintln(w, output.Format(res, format))
		}
		return
	}
	for _, res := range results {
		if res.Failed() {
			fmt.Fprintln(w, output.Format(res, format))
		}
	}
}

func summarize(results []models.Result) error {
	var total models.Stats
	var elapsed time.Duration
	failed := 0
	for _, res := range results {
		total.Replacements += res.Stats.Replacements
		total.BareReferences += res.Stats.BareReferences
		elapsed += res.Duration
		if res.Failed() {
			failed++
		}
	}
	log.Info("%d inputs, %d replacements, %d bare references (%s)",
		len(results), total.Replacements, total.BareReferences, elapsed.Round(time.Millisecond))
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newStripCmd())
}
