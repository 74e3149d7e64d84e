package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Open  bool
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the AutoHub web front end",
		Long: `Start the web server that renders the vehicle catalog and detail pages.

Pages:
- Home with the latest arrivals and recently viewed vehicles
- Vehicle catalog, by brand and by model
- Vehicle detail with gallery, specs, phone reveal and enquiry form
- About and Contact`,
		Example: `  # Start on the default port
  autohub serve

  # Start on a custom port and open a browser
  autohub serve --port 3000 --open

  # Rebuild assets and reload the browser on change
  autohub serve --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open a browser once the server starts")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Rebuild assets and live reload on change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	// Get UI config with defaults
	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if cmd.Flags().Changed("open") {
		autoOpen = opts.Open
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	listings, err := cmdCtx.Listings()
	if err != nil {
		return err
	}

	store, cleanup, err := cmdCtx.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	server := ui.NewServer(ui.Config{
		Listings:      listings,
		Store:         store,
		Site:          cmdCtx.Site(),
		Port:          port,
		Watch:         watch,
		SessionSecret: uiCfg.SessionSecret,
		Logger:        logger,
	})

	url := fmt.Sprintf("http://localhost:%d", port)

	// Open browser if configured
	if autoOpen {
		go openBrowser(url)
	}

	r := cmdCtx.Renderer
	r.Success("Serving " + cfg.Site.Name + " on " + r.Link(url, url))
	r.Muted("API " + cfg.API.BaseURL)
	r.Muted("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
