package config

import (
	"time"

	"github.com/spf13/cobra"
)

// AttachFlags defines the configuration flags on cmd. Flags left unset fall back to
// the environment, the config file and then the defaults.
func AttachFlags(cmd *cobra.Command) {
	var flags = cmd.PersistentFlags()

	flags.String("config", "", "config file (default is ./.ghsync.yaml)")

	flags.String("token", "", "GitHub API token")
	flags.String("base-url", "", "GitHub API base URL")
	flags.String("user-agent", "", "User-Agent header sent to GitHub")
	flags.Int("page-size", 0, "teams requested per page (1-100)")
	flags.Duration("page-delay", time.Duration(0), "pause between two page requests")
	flags.Bool("fail-on-http-error", false, "fail the fetch on a non-200 page instead of ending pagination")

	flags.String("org", "", "organization login to sync")
	flags.Int("retries", 0, "fetch retries after a failed attempt")
	flags.Duration("retry-delay", time.Duration(0), "pause between fetch attempts")

	flags.String("store", "", "JSON file holding the synced collections")

	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (text or json)")
	flags.String("log-file", "", "rotated log file written in addition to stderr")
}
