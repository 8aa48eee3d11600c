// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/tidecore/internal/logger"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, "; ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	TabWidth        *int
	HistoryDepth    *int
	FoldMode        *string
	AsyncFolds      *bool
	FoldDebounce    *time.Duration
	SearchTimeout   *time.Duration
	SystemClipboard *bool
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string

	// Session flags; these have no config file equivalent.
	Commands stringList
	Write    *bool
	View     *bool
	Diff     *bool
	Stats    *bool
}

// NewFlags defines the flags on a new FlagSet named after the program.
func NewFlags(name string) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.DefineFlags()
	return f
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	fs := f.fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = fs.Int("tabwidth", 0, "Number of spaces per tab - Overrides config file") // Use 0 to indicate unset
	f.HistoryDepth = fs.Int("history", 0, "Maximum undo steps - Overrides config file")
	f.FoldMode = fs.String("fold", "", "Fold mode (indent, bracket) - Overrides config file")
	f.AsyncFolds = fs.Bool("async-folds", false, "Derive folds in the background - Overrides config file")
	f.FoldDebounce = fs.Duration("fold-debounce", 0, "Delay before background fold derivation - Overrides config file")
	f.SearchTimeout = fs.Duration("search-timeout", 0, "Per-match regex timeout - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")

	fs.Var(&f.Commands, "e", "Command to run on the loaded file (repeatable)")
	f.Write = fs.Bool("w", false, "Write the result back to the file")
	f.View = fs.Bool("view", false, "Show the result in the terminal viewer")
	f.Diff = fs.Bool("diff", false, "Print a unified diff of the changes")
	f.Stats = fs.Bool("stats", false, "Print text statistics")
}

// ParseFlags parses args (without the program name) into the Flags struct.
// It returns the remaining non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// Usage prints the flag defaults.
func (f *Flags) Usage() {
	f.fs.PrintDefaults()
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid ("-")
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth // Only override if positive
			}
		case "history":
			if *f.HistoryDepth > 0 {
				cfg.Editor.HistoryDepth = *f.HistoryDepth
			}
		case "fold":
			if *f.FoldMode != "" {
				cfg.Fold.Mode = *f.FoldMode
			}
		case "async-folds":
			cfg.Fold.Async = *f.AsyncFolds
		case "fold-debounce":
			cfg.Fold.Debounce = *f.FoldDebounce
		case "search-timeout":
			cfg.Search.Timeout = *f.SearchTimeout
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

// Helper function to split comma-separated list
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
