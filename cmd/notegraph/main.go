// Package main provides the notegraph binary entry point.
// Notegraph extracts a knowledge graph from markdown and HTML notes:
// structural extraction, entity recognition, and RDF export.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/notegraph/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "notegraph"
)

var (
	flagConfigPath string
	flagLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "notegraph",
	Short: "Knowledge-graph extraction for markdown notes",
	Long: `Notegraph turns a directory of markdown or HTML notes into a knowledge
graph. It extracts document structure (headings, sections, lists, tables,
code, quotes, todos, tags, links, wiki-links), optionally recognizes named
entities with a language model, and assembles everything into RDF.

Commands:
  process   extract entities from a document tree
  export    serialize the extracted graph as Turtle, N-Triples, or JSON-LD
  watch     reprocess documents as they change on disk`,
}

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "Config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// setupLogging configures the process-wide logger and returns it.
func setupLogging() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(flagLogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads configuration, honoring the --config flag.
func loadConfig(logger *slog.Logger) (*config.Config, error) {
	if flagConfigPath != "" {
		cfg := config.DefaultConfig()
		fileCfg, err := config.LoadFromFile(flagConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(logger).Load()
}
