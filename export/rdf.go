// Package export serializes assembled knowledge-graph statements to
// standard RDF formats. Internal dotted predicates are translated to
// ontology IRIs at this boundary; everything upstream stays dotted.
package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/notegraph/vocabulary/kb"
)

// Profile determines how much ontology typing the export carries.
type Profile string

const (
	// ProfileMinimal emits notegraph and PROV-O types only.
	ProfileMinimal Profile = "minimal"

	// ProfileBFO adds Basic Formal Ontology types.
	ProfileBFO Profile = "bfo"

	// ProfileCCO adds Common Core Ontologies types on top of BFO.
	ProfileCCO Profile = "cco"
)

// Format identifies an RDF serialization format.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatJSONLD   Format = "jsonld"
)

// VocabBaseEnv overrides the ontology namespace for emitted class and
// predicate IRIs when set.
const VocabBaseEnv = "NOTEGRAPH_VOCAB_BASE"

// Triple is one predicate/object pair on an entity. Predicates are the
// internal dotted names; they are resolved to IRIs during serialization.
type Triple struct {
	Predicate string
	Object    any
}

// Entity is one exportable subject with its kind and statements.
type Entity struct {
	ID         string
	EntityType kb.EntityType
	Triples    []Triple
}

// RDFExporter accumulates entities and serializes them in a chosen
// ontology profile.
type RDFExporter struct {
	profile   Profile
	vocabBase string
	entities  []Entity
	prefixes  map[string]string
}

// Option configures an RDFExporter.
type Option func(*RDFExporter)

// WithVocabularyBase overrides the ontology namespace used for class and
// predicate IRIs. The base must end in "/" or "#".
func WithVocabularyBase(base string) Option {
	return func(e *RDFExporter) {
		if base != "" {
			e.vocabBase = base
		}
	}
}

// NewRDFExporter creates an exporter for the given profile. The
// vocabulary base defaults to the built-in ontology namespace and honors
// the NOTEGRAPH_VOCAB_BASE environment variable.
func NewRDFExporter(profile Profile, opts ...Option) *RDFExporter {
	e := &RDFExporter{
		profile:   profile,
		vocabBase: kb.Namespace,
		entities:  make([]Entity, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	// Environment override wins over file-derived configuration.
	if env := os.Getenv(VocabBaseEnv); env != "" {
		e.vocabBase = env
	}
	e.prefixes = defaultPrefixes(e.vocabBase)
	return e
}

// defaultPrefixes returns the namespace prefixes declared in serialized
// output.
func defaultPrefixes(vocabBase string) map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"dc":     "http://purl.org/dc/terms/",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"prov":   "http://www.w3.org/ns/prov#",
		"bfo":    "http://purl.obolibrary.org/obo/",
		"cco":    "http://www.ontologyrepository.com/CommonCoreOntologies/",
		"kb":     vocabBase,
		"entity": kb.DefaultEntityNamespace + "/",
	}
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddEntityFromTriples creates and adds an entity from raw triples.
func (e *RDFExporter) AddEntityFromTriples(id string, entityType kb.EntityType, triples []Triple) {
	e.entities = append(e.entities, Entity{
		ID:         id,
		EntityType: entityType,
		Triples:    triples,
	})
}

// AddStatements groups assembled graph statements by subject and adds
// one exportable entity per subject, in first-seen order. The entity
// kind statement becomes the rdf:type assertion rather than a predicate.
func (e *RDFExporter) AddStatements(statements []message.Triple) {
	index := make(map[string]int)
	for _, st := range statements {
		i, ok := index[st.Subject]
		if !ok {
			i = len(e.entities)
			index[st.Subject] = i
			e.entities = append(e.entities, Entity{ID: st.Subject})
		}
		if st.Predicate == kb.EntityKind {
			if kind, ok := st.Object.(string); ok {
				e.entities[i].EntityType = kb.EntityType(kind)
			}
			continue
		}
		e.entities[i].Triples = append(e.entities[i].Triples, Triple{
			Predicate: st.Predicate,
			Object:    st.Object,
		})
	}
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Statements enumerates every statement the exporter would serialize, in
// the canonical term syntax ParseTurtle produces. Type assertions come
// first for each entity.
func (e *RDFExporter) Statements() []Statement {
	var out []Statement
	for _, entity := range e.entities {
		subject := e.entityIRI(entity.ID)
		for _, typeIRI := range e.typesFor(entity.EntityType) {
			out = append(out, Statement{
				Subject:   subject,
				Predicate: rdfTypeIRI,
				Object:    "<" + typeIRI + ">",
			})
		}
		for _, triple := range entity.Triples {
			out = append(out, Statement{
				Subject:   subject,
				Predicate: e.predicateIRI(triple.Predicate),
				Object:    canonicalObject(triple.Object),
			})
		}
	}
	return out
}

// entityIRI resolves an entity identifier to an absolute IRI. Assembled
// statements already carry absolute subjects; bare identifiers fall into
// the entity namespace.
func (e *RDFExporter) entityIRI(id string) string {
	if strings.Contains(id, "://") {
		return id
	}
	return kb.DefaultEntityNamespace + "/" + strings.TrimLeft(id, "/")
}

// predicateIRI resolves a dotted predicate to its ontology IRI, honoring
// the configured vocabulary base.
func (e *RDFExporter) predicateIRI(predicate string) string {
	return e.rebase(kb.GetPredicateIRI(predicate))
}

// typesFor returns the rdf:type IRIs for an entity under the configured
// profile.
func (e *RDFExporter) typesFor(entityType kb.EntityType) []string {
	types := kb.GetTypesForEntity(entityType, string(e.profile))
	for i, t := range types {
		types[i] = e.rebase(t)
	}
	return types
}

// rebase rewrites IRIs from the built-in ontology namespace onto the
// configured vocabulary base.
func (e *RDFExporter) rebase(iri string) string {
	if e.vocabBase == kb.Namespace {
		return iri
	}
	if rest, ok := strings.CutPrefix(iri, kb.Namespace); ok {
		return e.vocabBase + rest
	}
	return iri
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	var sb strings.Builder

	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		fmt.Fprintf(&sb, "@prefix %s: <%s> .\n", prefix, e.prefixes[prefix])
	}
	sb.WriteString("\n")

	for _, entity := range e.entities {
		e.writeEntityTurtle(&sb, entity)
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeEntityTurtle writes a single entity in Turtle format.
func (e *RDFExporter) writeEntityTurtle(sb *strings.Builder, entity Entity) {
	fmt.Fprintf(sb, "<%s>\n", e.entityIRI(entity.ID))

	types := e.typesFor(entity.EntityType)
	for i, typeIRI := range types {
		fmt.Fprintf(sb, "    a <%s>", typeIRI)
		if i < len(types)-1 || len(entity.Triples) > 0 {
			sb.WriteString(" ;\n")
		} else {
			sb.WriteString(" .\n")
		}
	}

	for i, triple := range entity.Triples {
		fmt.Fprintf(sb, "    <%s> %s", e.predicateIRI(triple.Predicate), formatObject(triple.Object))
		if i < len(entity.Triples)-1 {
			sb.WriteString(" ;\n")
		} else {
			sb.WriteString(" .\n")
		}
	}
}

const rdfTypeIRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// toNTriples serializes to N-Triples format.
func (e *RDFExporter) toNTriples() string {
	var sb strings.Builder

	for _, entity := range e.entities {
		iri := e.entityIRI(entity.ID)

		for _, typeIRI := range e.typesFor(entity.EntityType) {
			fmt.Fprintf(&sb, "<%s> <%s> <%s> .\n", iri, rdfTypeIRI, typeIRI)
		}

		for _, triple := range entity.Triples {
			fmt.Fprintf(&sb, "<%s> <%s> %s .\n", iri, e.predicateIRI(triple.Predicate), formatObjectNTriples(triple.Object))
		}
	}

	return sb.String()
}

// toJSONLD serializes to JSON-LD format.
func (e *RDFExporter) toJSONLD() string {
	var sb strings.Builder

	sb.WriteString("{\n")
	sb.WriteString("  \"@context\": {\n")

	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, prefix := range keys {
		fmt.Fprintf(&sb, "    %q: %q", prefix, e.prefixes[prefix])
		if i < len(keys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  },\n")
	sb.WriteString("  \"@graph\": [\n")

	for i, entity := range e.entities {
		e.writeEntityJSONLD(&sb, entity)
		if i < len(e.entities)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ]\n")
	sb.WriteString("}\n")

	return sb.String()
}

// writeEntityJSONLD writes a single entity in JSON-LD format.
func (e *RDFExporter) writeEntityJSONLD(sb *strings.Builder, entity Entity) {
	sb.WriteString("    {\n")
	fmt.Fprintf(sb, "      \"@id\": %q,\n", e.entityIRI(entity.ID))

	sb.WriteString("      \"@type\": [")
	types := e.typesFor(entity.EntityType)
	for i, t := range types {
		fmt.Fprintf(sb, "%q", t)
		if i < len(types)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString("]")

	for _, triple := range entity.Triples {
		sb.WriteString(",\n")
		fmt.Fprintf(sb, "      %q: %s", e.predicateIRI(triple.Predicate), formatObjectJSONLD(triple.Object))
	}

	sb.WriteString("\n    }")
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectJSONLD formats an object value for JSON-LD output.
func formatObjectJSONLD(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("{\"@id\": %q}", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("{\"@value\": %q, \"@type\": \"xsd:dateTime\"}", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", v))
	}
}

// canonicalObject renders an object in the term syntax ParseTurtle
// produces, so serialized output can be compared against the source
// graph.
func canonicalObject(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return "<" + v + ">"
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// escapeString escapes special characters in strings for RDF
// serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
