package processor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/notegraph/identifier"
	"github.com/c360studio/notegraph/recognize"
	"github.com/c360studio/notegraph/registry"
	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/extract"
)

// defaultConcurrency bounds parallel document processing in a batch.
const defaultConcurrency = 4

// BatchResult summarizes one batch run.
type BatchResult struct {
	// RunID identifies this batch run.
	RunID string

	// Results holds the per-document outcomes for succeeded documents,
	// in input order with failed documents elided.
	Results []*Result

	// Succeeded and Failed count documents.
	Succeeded int
	Failed    int

	// Errors maps document path to its recorded messages, both fatal and
	// recovered ones.
	Errors map[string][]string
}

// Batch processes a set of documents: it registers every document before
// any cross-document link extraction runs, seals the registry, then
// processes documents in parallel. One malformed document never stops the
// others.
type Batch struct {
	baseNamespace string
	recognizer    recognize.Recognizer
	logger        *slog.Logger
	concurrency   int
	now           func() time.Time
	metrics       *Metrics
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchRecognizer injects the entity-recognition collaborator.
func WithBatchRecognizer(r recognize.Recognizer) BatchOption {
	return func(b *Batch) {
		b.recognizer = r
	}
}

// WithBatchLogger sets the logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// WithConcurrency bounds parallel document processing.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchClock overrides the timestamp source.
func WithBatchClock(now func() time.Time) BatchOption {
	return func(b *Batch) {
		b.now = now
	}
}

// WithMetrics wires batch instrumentation.
func WithMetrics(m *Metrics) BatchOption {
	return func(b *Batch) {
		b.metrics = m
	}
}

// NewBatch creates a batch runner.
func NewBatch(baseNamespace string, opts ...BatchOption) *Batch {
	b := &Batch{
		baseNamespace: baseNamespace,
		logger:        slog.Default(),
		concurrency:   defaultConcurrency,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run processes every document. The returned error covers batch-level
// setup only; per-document failures land in the result counts.
func (b *Batch) Run(ctx context.Context, docs []*source.Document) (*BatchResult, error) {
	runID := uuid.New().String()
	started := time.Now()

	// Registration phase: every document becomes a wikilink target before
	// extraction starts anywhere.
	reg := registry.New()
	for _, doc := range docs {
		if doc.URI == "" {
			doc.URI = identifier.DocumentURI(b.baseNamespace, doc.Path)
		}
		if err := reg.Register(doc.Path, doc.URI); err != nil {
			return nil, fmt.Errorf("register %s: %w", doc.Path, err)
		}
	}
	reg.Seal()

	proc := New(b.baseNamespace, extract.DefaultExtractors(reg),
		WithRecognizer(b.recognizer),
		WithLogger(b.logger),
		WithClock(b.now))

	out := &BatchResult{
		RunID:  runID,
		Errors: make(map[string][]string),
	}
	results := make([]*Result, len(docs))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, doc := range docs {
		g.Go(func() error {
			docStart := time.Now()
			result, err := proc.Process(gctx, doc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out.Failed++
				out.Errors[doc.Path] = append(out.Errors[doc.Path], err.Error())
				b.metrics.observeDocument("failed", time.Since(docStart), 0)
				b.logger.Error("document failed",
					"run_id", runID,
					"document", doc.Path,
					"error", err)
				return nil
			}

			results[i] = result
			out.Succeeded++
			if len(result.Errors) > 0 {
				out.Errors[doc.Path] = append(out.Errors[doc.Path], result.Errors...)
			}
			b.metrics.observeDocument("succeeded", time.Since(docStart), len(result.Entities))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r != nil {
			out.Results = append(out.Results, r)
		}
	}

	b.logger.Info("batch complete",
		"run_id", runID,
		"documents", len(docs),
		"succeeded", out.Succeeded,
		"failed", out.Failed,
		"duration", time.Since(started))

	return out, nil
}
