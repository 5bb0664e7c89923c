package main

import (
	"fmt"
	"os"

	"tradelight/internal/cli"
	"tradelight/internal/config"
	"tradelight/internal/logging"
)

func main() {
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	if cfg.Logging.File != "" {
		logCfg.FilePath = cfg.Logging.File
	}
	if cfg.Logging.MaxSizeMB > 0 {
		logCfg.MaxSize = cfg.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups > 0 {
		logCfg.MaxBackups = cfg.Logging.MaxBackups
	}
	if cfg.Logging.MaxAgeDays > 0 {
		logCfg.MaxAge = cfg.Logging.MaxAgeDays
	}
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs scans for --config before cobra parses flags, since the
// config has to be loaded before the command tree is built.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > 9 && arg[:9] == "--config=" {
			return arg[9:]
		}
	}
	return ""
}
