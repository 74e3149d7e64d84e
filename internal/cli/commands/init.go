package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/autohub/internal/cli/config"
	sharedcfg "github.com/leapstack-labs/autohub/internal/config"
)

// starterAPI mirrors APIConfig with the timeout spelled as a duration string.
type starterAPI struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// starterConfig is the document autohub init writes.
type starterConfig struct {
	API          starterAPI                  `yaml:"api"`
	Images       sharedcfg.ImagesConfig      `yaml:"images"`
	Site         sharedcfg.SiteConfig        `yaml:"site"`
	Contact      sharedcfg.ContactConfig     `yaml:"contact"`
	Catalog      sharedcfg.CatalogConfig     `yaml:"catalog"`
	Store        sharedcfg.StoreConfig       `yaml:"store"`
	UI           config.UIConfig             `yaml:"ui"`
	Environment  string                      `yaml:"environment"`
	LogLevel     string                      `yaml:"log_level"`
	LogFormat    string                      `yaml:"log_format"`
	Environments map[string]config.EnvConfig `yaml:"environments"`
}

const starterHeader = `# AutoHub configuration.
# Every key can be overridden with an AUTOHUB_ environment variable,
# e.g. AUTOHUB_API__BASE_URL or AUTOHUB_UI__PORT.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter autohub.yaml",
		Long: `Write an autohub.yaml with the default settings and a fresh session secret.

The file lists every configuration key with its default value, plus a
production environment block to fill in.`,
		Example: `  # Initialize in current directory
  autohub init

  # Initialize in a new directory
  autohub init my-site

  # Force overwrite existing config
  autohub init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	r := NewCommandContext(cmd).Renderer

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, sharedcfg.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", sharedcfg.ConfigFileName)
	}

	data, err := renderStarterConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.Success("Created " + configPath)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  autohub migrate   # create the enquiry database")
	r.Println("  autohub serve     # start the web front end")
	return nil
}

// renderStarterConfig encodes the default settings as YAML.
func renderStarterConfig() ([]byte, error) {
	var s sharedcfg.SiteSettings
	sharedcfg.ApplyDefaults(&s)

	doc := starterConfig{
		API: starterAPI{
			BaseURL:   s.API.BaseURL,
			Timeout:   s.API.Timeout.String(),
			UserAgent: s.API.UserAgent,
		},
		Images:  s.Images,
		Site:    s.Site,
		Contact: s.Contact,
		Catalog: s.Catalog,
		Store:   s.Store,
		UI: config.UIConfig{
			Port:          config.DefaultPort,
			SessionSecret: hex.EncodeToString(securecookie.GenerateRandomKey(32)),
		},
		Environment: config.DefaultEnv,
		LogLevel:    config.DefaultLogLevel,
		LogFormat:   config.DefaultLogFormat,
		Environments: map[string]config.EnvConfig{
			"prod": {APIBaseURL: s.API.BaseURL, SiteName: s.Site.Name},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(starterHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
