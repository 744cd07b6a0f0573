// Package kb defines the knowledge-base vocabulary for notegraph.
//
// Predicates use dotted notation internally (kb.heading.level,
// kb.todo.checked) and are translated to standard IRIs only at RDF export
// boundaries, following the semstreams vocabulary philosophy: clean dotted
// predicates everywhere inside the system, standards compliance at the edge.
//
// The vocabulary has three layers:
//
//   - Class IRIs (iris.go): one ontology class per entity kind, under the
//     notegraph ontology namespace.
//   - Predicates (predicates.go): dotted predicate constants grouped by
//     entity kind, used as message.Triple predicates by the graph assembler.
//   - Mappings (mappings.go): entity kind → class IRIs per export profile
//     (minimal, bfo, cco) and dotted predicate → standard IRI translation
//     for export.
//
// Example triple construction:
//
//	triple := message.Triple{
//	    Subject:   todoURI,
//	    Predicate: kb.TodoChecked,
//	    Object:    true,
//	}
//
// At export time the predicate resolves through kb.GetPredicateIRI, and the
// entity's class set resolves through kb.GetTypesForEntity.
package kb
