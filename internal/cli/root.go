// Package cli provides the Cobra command structure for mdlex.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdlex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdlex",
		Short: "A lexical analyzer for Markdown documents",
		Long: `mdlex breaks Markdown documents into a flat stream of classified tokens.

It recognizes headings, lists, blockquotes, code fences, tables, emphasis,
links, and the rest of the common Markdown constructs, attaching a precise
line, column, and byte span to every token. Malformed syntax never aborts
a scan: mdlex emits diagnostic Error tokens inline and keeps going, so the
stream always covers the whole document.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flag parse failures are usage errors for exit-code purposes.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrInvalidUsage, err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
