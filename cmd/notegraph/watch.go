package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/notegraph/config"
	"github.com/c360studio/notegraph/processor"
)

var (
	flagWatchNER         bool
	flagWatchPublish     bool
	flagWatchStore       bool
	flagWatchDebounce    time.Duration
	flagWatchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Reprocess documents as they change on disk",
	Long: `Watch monitors a document tree and reprocesses it when files change.
Changes are debounced so a burst of writes triggers one run. Because
wiki-link resolution spans documents, every change reprocesses the full
tree. With --metrics-addr, processing metrics are served for Prometheus.`,
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

		var metrics *processor.Metrics
		if flagWatchMetricsAddr != "" {
			registry := prometheus.NewRegistry()
			metrics = processor.NewMetrics(registry)
			go serveMetrics(ctx, flagWatchMetricsAddr, registry, logger)
		}

		w := &treeWatcher{
			cfg:     cfg,
			root:    root,
			metrics: metrics,
			logger:  logger,
			pending: make(map[string]struct{}),
		}
		return w.run(ctx)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&flagWatchNER, "ner", false, "Recognize named entities with the configured model")
	watchCmd.Flags().BoolVar(&flagWatchPublish, "publish", false, "Publish assembled statements to NATS after each run")
	watchCmd.Flags().BoolVar(&flagWatchStore, "store", false, "Store document records in NATS KV after each run")
	watchCmd.Flags().DurationVar(&flagWatchDebounce, "debounce", 500*time.Millisecond, "Delay before reprocessing after a change")
	watchCmd.Flags().StringVar(&flagWatchMetricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on (e.g. :9402)")
	rootCmd.AddCommand(watchCmd)
}

// treeWatcher reprocesses the document tree when watched files change.
type treeWatcher struct {
	cfg     *config.Config
	root    string
	metrics *processor.Metrics
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}
}

func (w *treeWatcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := addWatchesRecursive(fsw, w.root, w.logger); err != nil {
		return err
	}

	// Initial run before waiting for changes.
	if err := w.reprocess(ctx, "startup"); err != nil {
		w.logger.Error("Initial processing failed", "error", err)
	}

	w.logger.Info("Watching for changes",
		"root", w.root,
		"debounce", flagWatchDebounce)

	ticker := time.NewTicker(flagWatchDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleEvent records a relevant change and tracks new directories.
func (w *treeWatcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	if !documentPathMatches(w.cfg, rel) {
		return
	}

	w.pendingMu.Lock()
	w.pending[rel] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected", "path", rel, "op", event.Op.String())
}

// flushPending triggers a reprocess if changes accumulated.
func (w *treeWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	n := len(w.pending)
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if n == 0 {
		return
	}
	if err := w.reprocess(ctx, fmt.Sprintf("%d changed files", n)); err != nil {
		w.logger.Error("Reprocessing failed", "error", err)
	}
}

// reprocess runs the full pipeline over the tree. Wiki-link targets can
// live in any document, so partial runs would leave stale resolutions.
func (w *treeWatcher) reprocess(ctx context.Context, reason string) error {
	started := time.Now()
	w.logger.Info("Processing document tree", "reason", reason)

	docs, err := collectDocuments(w.cfg, w.root, w.logger)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		w.logger.Warn("No documents found", "root", w.root)
		return nil
	}

	result, err := runBatch(ctx, w.cfg, docs, flagWatchNER, w.metrics, w.logger)
	if err != nil {
		return err
	}

	if flagWatchPublish || flagWatchStore {
		if err := deliverResults(ctx, w.cfg, result, flagWatchPublish, flagWatchStore, w.logger); err != nil {
			return err
		}
	}

	w.logger.Info("Run complete",
		"run_id", result.RunID,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"elapsed", time.Since(started))
	return nil
}

// addWatchesRecursive adds watches to root and every non-hidden directory
// under it.
func addWatchesRecursive(fsw *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != root && (strings.HasPrefix(base, ".") || base == "node_modules") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// documentPathMatches reports whether a relative path is a document the
// pipeline would pick up, per the configured glob patterns.
func documentPathMatches(cfg *config.Config, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range cfg.Source.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	for _, pattern := range cfg.Source.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// serveMetrics exposes the Prometheus registry until the context ends.
func serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Metrics server failed", "error", err)
	}
}
