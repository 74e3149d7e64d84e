package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display AutoHub version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "AutoHub v%s\n", info.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n  built:  %s\n  go:     %s\n", info.GitCommit, info.BuildDate, info.GoVersion)
		},
	}
}
