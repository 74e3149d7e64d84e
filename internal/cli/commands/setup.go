package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/cli/config"
	"github.com/leapstack-labs/autohub/internal/cli/output"
	sharedcfg "github.com/leapstack-labs/autohub/internal/config"
	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration
// and the logger stored on the command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Listings creates a client for the configured listing API.
func (c *CommandContext) Listings() (*listing.Client, error) {
	client, err := listing.NewClient(listing.Config{
		BaseURL:   c.Cfg.API.BaseURL,
		Timeout:   c.Cfg.API.Timeout,
		UserAgent: c.Cfg.API.UserAgent,
		Logger:    c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create listing client: %w", err)
	}
	return client, nil
}

// OpenStore opens the enquiry store and applies pending migrations.
// Returns the store and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenStore(ctx context.Context) (*enquiry.SQLStore, func(), error) {
	store, err := enquiry.Open(ctx, enquiry.Config{
		Driver: c.Cfg.Store.Driver,
		DSN:    c.Cfg.Store.DSN,
	}, c.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open enquiry store: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// ImageConfig returns the gallery settings.
func (c *CommandContext) ImageConfig() listing.ImageConfig {
	return listing.ImageConfig{
		BaseURL:   c.Cfg.Images.BaseURL,
		Transform: c.Cfg.Images.Transform,
	}
}

// Site returns the branding and catalog settings the web UI renders with.
func (c *CommandContext) Site() common.Site {
	return common.Site{
		Name:     c.Cfg.Site.Name,
		Phone:    c.Cfg.Contact.Phone,
		Images:   c.ImageConfig(),
		PageSize: c.Cfg.Catalog.PageSize,
	}
}

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := &config.Config{
		Environment:  config.DefaultEnv,
		OutputFormat: config.DefaultOutput,
		LogLevel:     config.DefaultLogLevel,
		LogFormat:    config.DefaultLogFormat,
	}
	sharedcfg.ApplyDefaults(&cfg.SiteSettings)
	cfg.UI = cfg.GetUIConfig()
	return cfg
}
