package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	sharedcfg "github.com/leapstack-labs/autohub/internal/config"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix marks AutoHub environment variables. A double underscore nests:
// AUTOHUB_API__BASE_URL -> api.base_url.
const envPrefix = "AUTOHUB_"

// flagKeys maps the flags that override configuration onto their config keys.
// Other flags belong to their command and never reach the config tree.
var flagKeys = map[string]string{
	"api-url":    "api.base_url",
	"port":       "ui.port",
	"open":       "ui.auto_open",
	"watch":      "ui.watch",
	"env":        "environment",
	"store-dsn":  "store.dsn",
	"verbose":    "verbose",
	"output":     "output",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// inferProjectRoot searches upward from CWD for autohub.yaml, falling back to CWD.
func inferProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := sharedcfg.FindProjectRoot(cwd, maxUpwardSearchLevels); root != "" {
		return root
	}
	return cwd
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"api.base_url":      sharedcfg.DefaultAPIBaseURL,
		"api.timeout":       sharedcfg.DefaultAPITimeout.String(),
		"api.user_agent":    sharedcfg.DefaultUserAgent,
		"images.base_url":   sharedcfg.DefaultImagesBaseURL,
		"images.transform":  sharedcfg.DefaultImageTransform,
		"site.name":         sharedcfg.DefaultSiteName,
		"contact.phone":     sharedcfg.DefaultContactPhone,
		"catalog.page_size": sharedcfg.DefaultPageSize,
		"store.driver":      sharedcfg.DefaultStoreDriver,
		"store.dsn":         sharedcfg.DefaultStoreDSN,
		"ui.port":           DefaultPort,
		"ui.auto_open":      false,
		"ui.watch":          false,
		"environment":       DefaultEnv,
		"verbose":           false,
		"output":            DefaultOutput,
		"log_level":         DefaultLogLevel,
		"log_format":        DefaultLogFormat,
	}
}

// envKey turns AUTOHUB_API__BASE_URL into api.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return LoadConfigWithEnv(cfgFile, "", flags)
}

// LoadConfigWithEnv loads configuration and applies the overrides of the named
// environment (or cfg.Environment when envOverride is empty).
func LoadConfigWithEnv(cfgFile, envOverride string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	projectRoot := inferProjectRoot()
	if cfgFile != "" {
		if absPath, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(absPath)
		}
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = sharedcfg.FindConfigFile(projectRoot)
	}
	configFileUsed = cfgFile
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only config flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !f.Changed || !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			Squash:           true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot

	// 6. Environment overrides
	envName := cfg.Environment
	if envOverride != "" {
		envName = envOverride
		cfg.Environment = envOverride
	}
	if envCfg, ok := cfg.Environments[envName]; ok {
		if envCfg.APIBaseURL != "" {
			cfg.API.BaseURL = envCfg.APIBaseURL
		}
		if envCfg.StoreDSN != "" {
			cfg.Store.DSN = envCfg.StoreDSN
		}
		if envCfg.SiteName != "" {
			cfg.Site.Name = envCfg.SiteName
		}
	}

	sharedcfg.ApplyDefaults(&cfg.SiteSettings)
	cfg.UI = cfg.GetUIConfig()
	cfg.Store.DSN = expandEnvVars(cfg.Store.DSN)
	cfg.UI.SessionSecret = expandEnvVars(cfg.UI.SessionSecret)

	// SQLite paths are relative to the project root.
	if cfg.Store.Driver == sharedcfg.DefaultStoreDriver && cfg.Store.DSN != ":memory:" {
		cfg.Store.DSN = resolvePathRelativeTo(cfg.Store.DSN, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the most recently loaded configuration.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}
