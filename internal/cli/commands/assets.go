package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/autohub/internal/ui/resources"
)

// AssetsOptions holds options for the assets command.
type AssetsOptions struct {
	Source string
	Out    string
	Minify bool
}

// NewAssetsCommand creates the assets command.
func NewAssetsCommand() *cobra.Command {
	opts := &AssetsOptions{}

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Bundle the web UI script and stylesheet",
		Long: `Bundle internal/ui/resources/src with esbuild into the static directory
that production builds embed.`,
		Example: `  # Rebuild the embedded assets
  autohub assets

  # Readable output for debugging
  autohub assets --minify=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssets(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "src", resources.SourceDir(), "Source directory")
	cmd.Flags().StringVar(&opts.Out, "out", resources.StaticDir(), "Output directory")
	cmd.Flags().BoolVar(&opts.Minify, "minify", true, "Minify output")

	return cmd
}

func runAssets(cmd *cobra.Command, opts *AssetsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	result, err := resources.Build(opts.Source, opts.Out, opts.Minify)
	if err != nil {
		return fmt.Errorf("failed to build assets: %w", err)
	}

	r.Success(fmt.Sprintf("Built %d files", len(result.Files)))
	for _, f := range result.Files {
		if rel, err := filepath.Rel(opts.Out, f); err == nil {
			f = rel
		}
		r.Muted("  " + f)
	}
	return nil
}
