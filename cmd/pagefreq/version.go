package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/pagefreq/internal/app"
)

const devVersion = "0.0.0-dev"

// getVersion prefers the ldflags value, then the module version recorded
// by the go tool.
func getVersion() string {
	if app.BuildVersion != "" && app.BuildVersion != devVersion {
		return app.BuildVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

func buildSetting(key, fallback string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == key && s.Value != "" {
				return s.Value
			}
		}
	}
	return fallback
}

func getCommit() string {
	if app.BuildCommit != "unknown" {
		return app.BuildCommit
	}
	c := buildSetting("vcs.revision", "unknown")
	if len(c) > 7 {
		c = c[:7]
	}
	return c
}

func getDate() string {
	if app.BuildDate != "unknown" {
		return app.BuildDate
	}
	return buildSetting("vcs.time", "unknown")
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pagefreq version %s\n", getVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", getCommit())
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", getDate())
		},
	}
}
