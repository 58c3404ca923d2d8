package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlex/internal/configloader"
	"github.com/yaklabco/mdlex/internal/logging"
	"github.com/yaklabco/mdlex/pkg/config"
	"github.com/yaklabco/mdlex/pkg/fsutil"
	"github.com/yaklabco/mdlex/pkg/reporter"
	"github.com/yaklabco/mdlex/pkg/scan"
)

// ErrLexIssuesFound is returned when the scan produced Error tokens and
// strict mode is enabled. It signals the exit code without logging.
var ErrLexIssuesFound = errors.New("lexical issues found")

type scanFlags struct {
	format     string
	strict     bool
	detectLang bool
	maxTokens  int
	compact    bool
	noSummary  bool
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "Tokenize a Markdown file",
		Long:  scanLongDescription,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return errors.Join(ErrInvalidUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], flags)
		},
	}

	addScanFlags(cmd, flags)

	return cmd
}

const scanLongDescription = `Tokenize a Markdown file and print the token stream.

Every token carries its kind, value, and source position. Malformed
constructs produce Error tokens inline; the scan always runs to the end
of the file.

Examples:
  mdlex scan README.md                 # Print the token stream
  mdlex scan README.md --format json   # Output as JSON for tooling
  mdlex scan README.md --format table  # Aligned table output
  mdlex scan README.md --strict        # Exit non-zero on Error tokens
  mdlex scan README.md --detect-lang   # Suggest languages for bare fences`

func runScan(cmd *cobra.Command, path string, flags *scanFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger.Debug("configuration resolved",
		logging.FieldFormat, cfg.Format,
		logging.FieldStrict, cfg.Strict,
	)

	source, info, err := fsutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	logger.Debug("input read",
		logging.FieldPath, path,
		logging.FieldBytes, info.Size,
	)

	result := scan.Run(path, source, scan.Options{
		DetectLanguage: cfg.DetectLanguage,
		MaxTokens:      cfg.MaxTokens,
	})

	logger.Debug("scan complete",
		logging.FieldTokens, result.Stats.TokenCount,
		logging.FieldErrors, result.Stats.ErrorCount,
		logging.FieldLines, result.Stats.LineCount,
		logging.FieldTruncated, result.Truncated,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       cfg.Color,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	errorCount, err := rep.Report(result)
	if err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Strict && errorCount > 0 {
		return ErrLexIssuesFound
	}

	return nil
}

// loadConfig resolves the effective configuration: defaults, then a
// discovered or explicit config file, then CLI flags on top.
func loadConfig(cmd *cobra.Command, flags *scanFlags) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration from", logging.FieldPath, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config

	// CLI flags win over file settings, but only when explicitly set.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
	if cmd.Flags().Changed("detect-lang") {
		cfg.DetectLanguage = flags.detectLang
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.MaxTokens = flags.maxTokens
	}
	if colorMode, err := cmd.Flags().GetString("color"); err == nil && cmd.Flags().Changed("color") {
		cfg.Color = colorMode
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidUsage, err)
	}

	return cfg, nil
}

func addScanFlags(cmd *cobra.Command, flags *scanFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when Error tokens are present")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "suggest languages for unlabeled code fences")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "abort after this many tokens (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary footer")
}
