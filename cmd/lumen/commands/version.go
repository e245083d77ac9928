// ABOUTME: Version command reporting the build stamped in at link time
// ABOUTME: Prints human-readable text or JSON depending on --format
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo carries the build identifiers injected by goreleaser
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"build_date"`
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("Lumen %s\nCommit: %s\nBuilt:  %s", v.Version, v.Commit, v.Date)
}

var versionInfo = VersionInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersion records the build identifiers (called from main)
func SetVersion(version, commit, date string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date for the Lumen CLI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(versionInfo)
			}
			fmt.Fprintln(cmd.OutOrStdout(), versionInfo)
			return nil
		},
	}
}
