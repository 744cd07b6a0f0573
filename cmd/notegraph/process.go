package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/notegraph/config"
	"github.com/c360studio/notegraph/graph"
	"github.com/c360studio/notegraph/processor"
	"github.com/c360studio/notegraph/storage"
)

var (
	flagProcessNER     bool
	flagProcessJSON    bool
	flagProcessPublish bool
	flagProcessStore   bool
)

var processCmd = &cobra.Command{
	Use:   "process [path]",
	Short: "Extract entities from a document tree",
	Long: `Process scans a directory for markdown and HTML documents, extracts
structural entities from each, and prints a run summary. With --ner the
configured language model recognizes named entities in document text.
With --publish or --store the results are sent to NATS.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogging()
		cfg, err := loadConfig(logger)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		root, err := resolveRoot(cfg, args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		docs, err := collectDocuments(cfg, root, logger)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return fmt.Errorf("no documents found under %s", root)
		}

		result, err := runBatch(ctx, cfg, docs, flagProcessNER, nil, logger)
		if err != nil {
			return fmt.Errorf("process documents: %w", err)
		}

		if flagProcessPublish || flagProcessStore {
			if err := deliverResults(ctx, cfg, result, flagProcessPublish, flagProcessStore, logger); err != nil {
				return err
			}
		}

		if flagProcessJSON {
			return printJSONSummary(result)
		}
		printSummary(result)

		if result.Succeeded == 0 {
			return fmt.Errorf("all %d documents failed", result.Failed)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&flagProcessNER, "ner", false, "Recognize named entities with the configured model")
	processCmd.Flags().BoolVar(&flagProcessJSON, "json", false, "Print the run summary as JSON")
	processCmd.Flags().BoolVar(&flagProcessPublish, "publish", false, "Publish assembled statements to NATS")
	processCmd.Flags().BoolVar(&flagProcessStore, "store", false, "Store document records in NATS KV")
	rootCmd.AddCommand(processCmd)
}

// deliverResults publishes graph statements and stores document records
// for every processed document.
func deliverResults(ctx context.Context, cfg *config.Config, result *processor.BatchResult, publish, storeRecords bool, logger *slog.Logger) error {
	if cfg.NATS.URL == "" {
		return fmt.Errorf("--publish/--store require nats.url to be configured")
	}

	nc, err := connectNATS(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer nc.Close(ctx)

	var publisher *graph.Publisher
	if publish {
		publisher = graph.NewPublisher(nc, graph.NewAssembler(cfg.Graph.BaseNamespace))
	}

	var store *storage.Store
	if storeRecords {
		js, err := nc.JetStream()
		if err != nil {
			return fmt.Errorf("get JetStream context: %w", err)
		}
		store, err = storage.NewStore(ctx, js)
		if err != nil {
			return fmt.Errorf("create document store: %w", err)
		}
	}

	for _, res := range result.Results {
		if publisher != nil {
			if err := publisher.PublishDocument(ctx, res.Entities); err != nil {
				return fmt.Errorf("publish %s: %w", res.Document.Path, err)
			}
		}
		if store != nil {
			rec, err := storage.BuildDocumentRecord(res.Entities)
			if err != nil {
				return fmt.Errorf("record %s: %w", res.Document.Path, err)
			}
			if err := store.Put(ctx, rec); err != nil {
				return fmt.Errorf("store %s: %w", res.Document.Path, err)
			}
		}
	}

	logger.Info("Results delivered",
		"documents", len(result.Results),
		"published", publisher != nil,
		"stored", store != nil)
	return nil
}

// printSummary writes a human-readable run summary to stdout.
func printSummary(result *processor.BatchResult) {
	fmt.Printf("Run %s: %d succeeded, %d failed\n", result.RunID, result.Succeeded, result.Failed)
	for _, res := range result.Results {
		fmt.Printf("  %-40s %4d entities\n", res.Document.Path, len(res.Entities))
	}
	if len(result.Errors) > 0 {
		fmt.Println("Problems:")
		paths := make([]string, 0, len(result.Errors))
		for path := range result.Errors {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			for _, msg := range result.Errors[path] {
				fmt.Printf("  %s: %s\n", path, msg)
			}
		}
	}
}

// jsonSummary is the --json output shape.
type jsonSummary struct {
	RunID     string              `json:"run_id"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Documents []jsonDocument      `json:"documents"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

type jsonDocument struct {
	Path     string `json:"path"`
	URI      string `json:"uri"`
	Title    string `json:"title"`
	Entities int    `json:"entities"`
}

func printJSONSummary(result *processor.BatchResult) error {
	summary := jsonSummary{
		RunID:     result.RunID,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Errors:    result.Errors,
	}
	for _, res := range result.Results {
		summary.Documents = append(summary.Documents, jsonDocument{
			Path:     res.Document.Path,
			URI:      res.Document.URI,
			Title:    res.Document.Title,
			Entities: len(res.Entities),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
