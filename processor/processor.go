// Package processor orchestrates the extraction pipeline: it runs the
// structural extractors over a document, resolves the display title,
// invokes the entity-recognition collaborator, merges and deduplicates the
// results, and converts everything into identity-layer entities. A failure
// in one extractor or in recognition never fails the document; it is
// recorded and the remaining stages continue.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360studio/notegraph/entity"
	"github.com/c360studio/notegraph/identifier"
	"github.com/c360studio/notegraph/recognize"
	"github.com/c360studio/notegraph/source"
	"github.com/c360studio/notegraph/source/extract"
)

// Result is the outcome of processing one document.
type Result struct {
	// Document is the processed document with resolved title.
	Document *source.Document

	// Entities holds every identity-layer entity produced for the
	// document, the document entity first.
	Entities []entity.Entity

	// Errors lists non-fatal per-document failures: extractors that were
	// skipped or a recognition call that came back empty-handed.
	Errors []string
}

// Processor runs the pipeline for single documents.
type Processor struct {
	extractors    []extract.Extractor
	recognizer    recognize.Recognizer
	baseNamespace string
	logger        *slog.Logger
	now           func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithRecognizer injects the entity-recognition collaborator. Without one,
// recognition is skipped.
func WithRecognizer(r recognize.Recognizer) Option {
	return func(p *Processor) {
		p.recognizer = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithClock overrides the timestamp source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// New creates a Processor running the given extractors. The base namespace
// scopes every generated identifier.
func New(baseNamespace string, extractors []extract.Extractor, opts ...Option) *Processor {
	p := &Processor{
		extractors:    extractors,
		baseNamespace: baseNamespace,
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full pipeline over one document.
func (p *Processor) Process(ctx context.Context, doc *source.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	if doc.URI == "" {
		doc.URI = identifier.DocumentURI(p.baseNamespace, doc.Path)
	}
	doc.Title = resolveTitle(doc)

	result := &Result{Document: doc}

	var elements []extract.Element
	failed := 0
	for _, x := range p.extractors {
		extracted, err := x.Extract(doc)
		if err != nil {
			failed++
			// One extractor failing never takes down the document.
			msg := fmt.Sprintf("extractor %s failed: %v", x.Name(), err)
			p.logger.Warn("skipping extractor output",
				"document", doc.Path,
				"extractor", x.Name(),
				"error", err)
			result.Errors = append(result.Errors, msg)
			continue
		}
		elements = append(elements, extracted...)
	}
	if len(p.extractors) > 0 && failed == len(p.extractors) {
		return nil, fmt.Errorf("extraction failed entirely: %s", strings.Join(result.Errors, "; "))
	}

	elements = dropTitleHeadingTags(elements)

	spans := p.recognizeText(ctx, doc, result, doc.Body)

	conv := newConverter(doc, p.now())
	entities := conv.convert(elements, spans)

	// Recognize over the display text of each cross-document link and
	// attach the spans to the originating link.
	for _, wl := range conv.wikiLinks {
		display := wl.Alias
		if display == "" {
			display = wl.Target
		}
		for _, span := range p.recognizeText(ctx, doc, result, display) {
			wl.Entities = append(wl.Entities, *conv.namedEntity(span))
		}
	}

	result.Entities = entities
	return result, nil
}

// recognizeText calls the collaborator, treating any failure as "no
// entities found" for this document.
func (p *Processor) recognizeText(ctx context.Context, doc *source.Document, result *Result, text string) []recognize.Span {
	if p.recognizer == nil || text == "" {
		return nil
	}
	spans, err := p.recognizer.Recognize(ctx, text)
	if err != nil {
		p.logger.Warn("entity recognition unavailable",
			"document", doc.Path,
			"error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("entity recognition failed: %v", err))
		return nil
	}
	return spans
}

// resolveTitle prefers the front-matter title, then a title the parser
// already set (HTML pages carry their <title>), falling back to a
// human-readable form of the filename.
func resolveTitle(doc *source.Document) string {
	if title := doc.FrontmatterTitle(); title != "" {
		return title
	}
	if doc.Title != "" {
		return doc.Title
	}
	return source.HumanizeFilename(doc.Path)
}

// dropTitleHeadingTags removes heading-derived tags that sit inside the
// document's first heading; a single-word heading in title position names
// the document, it does not tag it.
func dropTitleHeadingTags(elements []extract.Element) []extract.Element {
	firstStart, firstEnd := -1, -1
	for _, el := range elements {
		if el.Kind != extract.KindHeading {
			continue
		}
		if firstStart < 0 || el.Span.Start < firstStart {
			firstStart, firstEnd = el.Span.Start, el.Span.End
		}
	}
	if firstStart < 0 {
		return elements
	}

	out := elements[:0]
	for _, el := range elements {
		if el.Kind == extract.KindTag &&
			el.Meta(extract.MetaSource) == extract.TagSourceHeading &&
			el.Span.Start >= firstStart && el.Span.End <= firstEnd {
			continue
		}
		out = append(out, el)
	}
	return out
}
