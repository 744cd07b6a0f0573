package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/notegraph/config"
	"github.com/c360studio/notegraph/llm"
	"github.com/c360studio/notegraph/processor"
	"github.com/c360studio/notegraph/recognize"
	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/parser"
)

// resolveRoot picks the scan root: positional argument first, then config.
func resolveRoot(cfg *config.Config, args []string) (string, error) {
	root := cfg.Source.Root
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat root path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

// collectDocuments discovers and parses every matching document under root.
// Files that fail to read or parse are logged and skipped; discovery
// itself failing is fatal.
func collectDocuments(cfg *config.Config, root string, logger *slog.Logger) ([]*source.Document, error) {
	paths, err := source.Scan(root, cfg.Source.Include, cfg.Source.Exclude)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	docs := make([]*source.Document, 0, len(paths))
	for _, rel := range paths {
		p := parser.DefaultRegistry.GetByExtension(rel)
		if p == nil {
			logger.Debug("No parser for file", "path", rel)
			continue
		}
		data, err := source.ReadDocumentFile(root, rel)
		if err != nil {
			logger.Warn("Failed to read document", "path", rel, "error", err)
			continue
		}
		doc, err := p.Parse(rel, data)
		if err != nil {
			logger.Warn("Failed to parse document", "path", rel, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	logger.Info("Documents collected", "root", root, "count", len(docs))
	return docs, nil
}

// newRecognizer builds the model-backed entity recognizer from config.
func newRecognizer(cfg *config.Config, logger *slog.Logger) recognize.Recognizer {
	opts := []llm.ClientOption{
		llm.WithHTTPClient(&http.Client{Timeout: cfg.Model.Timeout}),
		llm.WithLogger(logger),
	}
	if cfg.Model.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(cfg.Model.APIKey))
	}
	client := llm.NewClient(cfg.Model.Endpoint, cfg.Model.Name, opts...)
	return recognize.NewLLMRecognizer(client, logger)
}

// runBatch processes the documents with the configured concurrency.
func runBatch(ctx context.Context, cfg *config.Config, docs []*source.Document, withNER bool, metrics *processor.Metrics, logger *slog.Logger) (*processor.BatchResult, error) {
	opts := []processor.BatchOption{
		processor.WithBatchLogger(logger),
		processor.WithConcurrency(cfg.Process.Concurrency),
	}
	if withNER {
		opts = append(opts, processor.WithBatchRecognizer(newRecognizer(cfg, logger)))
	}
	if metrics != nil {
		opts = append(opts, processor.WithMetrics(metrics))
	}

	batch := processor.NewBatch(cfg.Graph.BaseNamespace, opts...)
	return batch.Run(ctx, docs)
}

// connectNATS connects to the configured NATS server.
func connectNATS(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	logger.Info("Connecting to NATS", "url", cfg.NATS.URL)

	client, err := natsclient.NewClient(cfg.NATS.URL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", cfg.NATS.URL, err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", cfg.NATS.URL, err)
	}

	logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	return client, nil
}
