package cmd

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/quickclean/internal/logging"
)

var (
	// Global flags
	debug bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "quickclean",
	Short: "Free disk space by clearing transient Windows data",
	Long: `QuickClean - free disk space by clearing transient Windows data.

Empties the Recycle Bin and deletes temp files, recent-items lists,
thumbnail caches, and browser caches, reporting progress and bytes
reclaimed as it goes.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write detailed operation logs to a file")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// debugLogger returns the rotating file logger when --debug is set, or a
// discard logger otherwise.
func debugLogger() *log.Logger {
	if debug {
		if logger, err := logging.Open(); err == nil {
			return logger
		}
	}
	return log.New(io.Discard, "", 0)
}
