// cmd/tidecore/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/tidecore/internal/app"
	"github.com/bethropolis/tidecore/internal/config"
	"github.com/bethropolis/tidecore/internal/logger"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName)
	rest, err := flags.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}
	var filePath string
	if len(rest) > 0 {
		filePath = rest[0]
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	// --- Logger Initialization ---
	if err := logger.Init(cfg.Logger); err != nil {
		stlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Cleanup()
	logger.Infof("Starting %s %s...", config.AppName, version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	// --- Create the session ---
	tideApp := app.NewApp(cfg)
	defer tideApp.Close()

	interactive := *flags.View || (len(flags.Commands) == 0 && !*flags.Diff && !*flags.Stats && !*flags.Write)
	if !interactive {
		tideApp.SetOutput(os.Stderr)
	}
	if err := tideApp.Open(filePath); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}

	for _, line := range flags.Commands {
		if err := tideApp.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
			return 1
		}
	}
	if *flags.Stats {
		fmt.Println(tideApp.Stats())
	}
	if *flags.Diff {
		fmt.Print(tideApp.Diff())
	}
	if *flags.Write && tideApp.Editor().IsModified() {
		if err := tideApp.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
			return 1
		}
	}

	if interactive {
		if err := tideApp.Run(); err != nil {
			logger.Errorf("Application exited with error: %v", err)
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
			return 1
		}
	}
	logger.Infof("%s finished.", config.AppName)
	return 0
}
