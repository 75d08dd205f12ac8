package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/config"
	"github.com/lcalzada-xor/framestrip/pkg/network"
	"github.com/lcalzada-xor/framestrip/pkg/proxy"
	"github.com/spf13/cobra"
)

var (
	serveListenFlag   string
	serveTargetFlag   string
	serveHTMLModeFlag string
	serveDisableFlag  bool
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a reverse proxy that rewrites the JavaScript it serves",
		Long: `Serve --target through a reverse proxy. JavaScript responses are
rewritten as they stream through; HTML responses have their <script>
elements rewritten (--html-mode scripts), are rewritten as a whole
(document) or are left alone (off). Compressed bodies the proxy cannot
decode are passed through unchanged.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Serve.Target == "" {
				return errors.New("--target is required")
			}
			target, err := url.Parse(cfg.Serve.Target)
			if err != nil || target.Scheme == "" || target.Host == "" {
				return fmt.Errorf("invalid target %q", cfg.Serve.Target)
			}

			client := network.NewClient(cfg.Timeout, cfg.Proxy, cfg.Concurrency, 0)
			p := proxy.New(target, proxy.Options{
				HTMLMode:    cfg.Serve.HTMLMode,
				Disabled:    cfg.Serve.Disabled,
				MaxReceiver: cfg.MaxReceiver,
				Transport:   client.HTTPClient.Transport,
			}, log)

			ln, err := net.Listen("tcp", cfg.Serve.Listen)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), ln, p, target)
		},
	}
	cmd.Flags().StringVarP(&serveListenFlag, "listen", "l", config.DefaultListen, "address to listen on")
	cmd.Flags().StringVar(&serveTargetFlag, "target", "", "upstream URL to proxy (e.g. http://localhost:3000)")
	cmd.Flags().StringVar(&serveHTMLModeFlag, "html-mode", config.DefaultHTMLMode, "HTML rewriting: scripts, document or off")
	cmd.Flags().BoolVar(&serveDisableFlag, "disable", false, "proxy without rewriting")

	return cmd
}

// serve runs the proxy on ln until ctx is done, then drains connections.
func serve(ctx context.Context, ln net.Listener, p *proxy.Proxy, target *url.URL) error {
	srv := &http.Server{
		Handler:           p,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.StdLog(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	log.Info("Proxying %s on http://%s", target, ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	stats, n := p.Stats()
	log.Info("%d responses rewritten, %d references", n, stats.Rewrites())
	return nil
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
