// Command framestrip neutralizes frame-busting JavaScript so applications
// can run inside a test runner's iframe.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/framestrip/pkg/config"
	"github.com/lcalzada-xor/framestrip/pkg/logger"
	"github.com/lcalzada-xor/framestrip/pkg/security"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFlag      string
	verboseFlag     int
	quietFlag       bool
	concurrencyFlag int
	timeoutFlag     string
	proxyFlag       string
	rateLimitFlag   float64
	maxReceiverFlag int
)

// cfg and log are set by the root command before any subcommand runs.
var (
	cfg *config.Config
	log *logger.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framestrip",
		Short: "Neutralize frame-busting JavaScript",
		Long: `framestrip rewrites JavaScript so that reads of the top and parent
frames go through window.top.Cypress.resolveWindowReference, which lets an
application under test run inside an iframe without busting out of it.

Configuration is read from --config, then FRAMESTRIP_* environment
variables, then flags, in increasing order of precedence.`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := bindFlags(cmd, v); err != nil {
				return err
			}
			loaded, err := config.Load(v, configFlag)
			if err != nil {
				return err
			}
			cfg = loaded

			level := cfg.Verbose
			if quietFlag {
				level = int(logger.VerboseQuiet)
			}
			log = logger.New(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "YAML configuration file")
	pf.CountVarP(&verboseFlag, "verbose", "v", "verbose output (-v, -vv)")
	pf.BoolVarP(&quietFlag, "quiet", "q", false, "only print errors")
	pf.IntVarP(&concurrencyFlag, "concurrency", "c", config.DefaultConcurrency, "number of concurrent workers")
	pf.StringVarP(&timeoutFlag, "timeout", "t", config.DefaultTimeout.String(), "request timeout")
	pf.StringVarP(&proxyFlag, "proxy", "x", "", "upstream proxy URL for fetches (e.g. http://127.0.0.1:8080)")
	pf.Float64Var(&rateLimitFlag, "rate-limit", 0, "maximum fetches per second (0 = unlimited)")
	pf.IntVar(&maxReceiverFlag, "max-receiver", security.DefaultMaxReceiverSize, "largest receiver expression, in bytes, that is rewritten")

	return cmd
}

// bindFlags lets flags the user set override file and environment values.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	keys := map[string]string{
		"verbose":      "verbose",
		"concurrency":  "concurrency",
		"timeout":      "timeout",
		"proxy":        "proxy",
		"rate-limit":   "rate_limit",
		"max-receiver": "max_receiver",
		"format":       "format",
		"html":         "html",
		"verify":       "verify",
		"listen":       "serve.listen",
		"target":       "serve.target",
		"html-mode":    "serve.html_mode",
		"disable":      "serve.disabled",
	}
	for name, key := range keys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log == nil {
			log = logger.NewLogger(int(logger.VerboseSilent))
		}
		log.Error("%v", err)
		log.Sync()
		stop()
		os.Exit(1)
	}
}
