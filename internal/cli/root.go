package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "magnetdrop",
	Short: "convert .torrent files to magnet links",
	Long: `magnetdrop - convert .torrent files to magnet links
  - convert files or whole folders in one go
  - filter the results by name, path or link
  - copy every visible link to the clipboard`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline activity to stderr")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger returns the command logger; warnings only unless verbose
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
