package kb

import (
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"
)

// EntityType represents the kind of a notegraph entity for mapping purposes.
type EntityType string

// Entity type constants map entity kinds to their string identifiers.
// These double as the <kind> segment of generated entity URIs.
const (
	// EntityTypeDocument is the entity type for source documents.
	EntityTypeDocument EntityType = "document"
	// EntityTypeHeading is the entity type for headings.
	EntityTypeHeading EntityType = "heading"
	// EntityTypeSection is the entity type for heading-bounded sections.
	EntityTypeSection EntityType = "section"
	// EntityTypeList is the entity type for lists.
	EntityTypeList EntityType = "list"
	// EntityTypeListItem is the entity type for list items.
	EntityTypeListItem EntityType = "item"
	// EntityTypeTable is the entity type for tables.
	EntityTypeTable EntityType = "table"
	// EntityTypeCodeBlock is the entity type for fenced code blocks.
	EntityTypeCodeBlock EntityType = "code"
	// EntityTypeQuote is the entity type for blockquotes.
	EntityTypeQuote EntityType = "quote"
	// EntityTypeTodo is the entity type for checkbox tasks.
	EntityTypeTodo EntityType = "todo"
	// EntityTypeTag is the entity type for tags.
	EntityTypeTag EntityType = "tag"
	// EntityTypeLink is the entity type for links, references, and citations.
	EntityTypeLink EntityType = "link"
	// EntityTypeWikiLink is the entity type for cross-document references.
	EntityTypeWikiLink EntityType = "wikilink"
	// EntityTypeNamedEntity is the entity type for recognized spans.
	EntityTypeNamedEntity EntityType = "named-entity"
	// EntityTypePerson is the entity type for person-like recognized entities.
	EntityTypePerson EntityType = "person"
)

// BFOClassMap maps entity types to BFO class IRIs.
// Use this for BFO profile RDF export.
var BFOClassMap = map[EntityType]string{
	// Information artifacts → GenericallyDependentContinuant
	EntityTypeDocument:    bfo.GenericallyDependentContinuant,
	EntityTypeHeading:     bfo.GenericallyDependentContinuant,
	EntityTypeSection:     bfo.GenericallyDependentContinuant,
	EntityTypeList:        bfo.GenericallyDependentContinuant,
	EntityTypeListItem:    bfo.GenericallyDependentContinuant,
	EntityTypeTable:       bfo.GenericallyDependentContinuant,
	EntityTypeCodeBlock:   bfo.GenericallyDependentContinuant,
	EntityTypeQuote:       bfo.GenericallyDependentContinuant,
	EntityTypeTodo:        bfo.GenericallyDependentContinuant,
	EntityTypeTag:         bfo.GenericallyDependentContinuant,
	EntityTypeLink:        bfo.GenericallyDependentContinuant,
	EntityTypeWikiLink:    bfo.GenericallyDependentContinuant,
	EntityTypeNamedEntity: bfo.GenericallyDependentContinuant,

	// People exist independently of any document
	EntityTypePerson: bfo.IndependentContinuant,
}

// CCOClassMap maps entity types to CCO class IRIs.
// Use this for CCO profile RDF export.
var CCOClassMap = map[EntityType]string{
	EntityTypeDocument:    cco.InformationContentEntity,
	EntityTypeHeading:     cco.InformationContentEntity,
	EntityTypeSection:     cco.InformationContentEntity,
	EntityTypeList:        cco.InformationContentEntity,
	EntityTypeListItem:    cco.InformationContentEntity,
	EntityTypeTable:       cco.InformationContentEntity,
	EntityTypeCodeBlock:   cco.SoftwareCode,
	EntityTypeQuote:       cco.InformationContentEntity,
	EntityTypeTodo:        cco.PlanSpecification,
	EntityTypeTag:         cco.InformationContentEntity,
	EntityTypeLink:        cco.InformationContentEntity,
	EntityTypeWikiLink:    cco.InformationContentEntity,
	EntityTypeNamedEntity: cco.InformationContentEntity,
	EntityTypePerson:      cco.Person,
}

// PROVClassMap maps entity types to PROV-O class IRIs.
// Use this for all export profiles.
var PROVClassMap = map[EntityType]string{
	EntityTypeDocument:    vocabulary.ProvEntity,
	EntityTypeHeading:     vocabulary.ProvEntity,
	EntityTypeSection:     vocabulary.ProvEntity,
	EntityTypeList:        vocabulary.ProvEntity,
	EntityTypeListItem:    vocabulary.ProvEntity,
	EntityTypeTable:       vocabulary.ProvEntity,
	EntityTypeCodeBlock:   vocabulary.ProvEntity,
	EntityTypeQuote:       vocabulary.ProvEntity,
	EntityTypeTodo:        vocabulary.ProvEntity,
	EntityTypeTag:         vocabulary.ProvEntity,
	EntityTypeLink:        vocabulary.ProvEntity,
	EntityTypeWikiLink:    vocabulary.ProvEntity,
	EntityTypeNamedEntity: vocabulary.ProvEntity,
	EntityTypePerson:      vocabulary.ProvPerson,
}

// KBClassMap maps entity types to notegraph class IRIs.
// Always included in exports.
var KBClassMap = map[EntityType]string{
	EntityTypeDocument:    ClassDocument,
	EntityTypeHeading:     ClassHeading,
	EntityTypeSection:     ClassSection,
	EntityTypeList:        ClassList,
	EntityTypeListItem:    ClassListItem,
	EntityTypeTable:       ClassTable,
	EntityTypeCodeBlock:   ClassCodeBlock,
	EntityTypeQuote:       ClassQuote,
	EntityTypeTodo:        ClassTodo,
	EntityTypeTag:         ClassTag,
	EntityTypeLink:        ClassLink,
	EntityTypeWikiLink:    ClassWikiLink,
	EntityTypeNamedEntity: ClassNamedEntity,
	EntityTypePerson:      ClassPerson,
}

// PredicateIRIMap maps internal dotted predicates to standard IRIs.
// Used at RDF export to translate predicates; unmapped predicates fall back
// to the notegraph namespace.
var PredicateIRIMap = map[string]string{
	// Common entity predicates
	EntityLabel:     vocabulary.SkosPrefLabel,
	EntityDocument:  vocabulary.DcSource,
	EntityCreatedAt: vocabulary.ProvGeneratedAtTime,
	EntityUpdatedAt: "http://purl.org/dc/terms/modified",
	ElementParent:   bfo.PartOf,

	// Document predicates
	DocumentTitle: vocabulary.DcTitle,
	DocumentPath:  vocabulary.DcIdentifier,

	// Structure predicates
	SectionHeading: PropHasHeading,

	// Todo predicates
	TodoAssignee: PropAssignedTo,

	// Tag predicates
	TagName: vocabulary.SkosAltLabel,

	// Wikilink predicates
	WikiLinkResolved: PropResolvesTo,

	// Named-entity predicates
	PersonAlias: vocabulary.SkosAltLabel,
}

// GetTypesForEntity returns all type IRIs for a given entity type and profile.
// Profile determines which ontology types are included:
//   - "minimal": PROV-O + notegraph types
//   - "bfo": BFO + PROV-O + notegraph types
//   - "cco": CCO + BFO + PROV-O + notegraph types
func GetTypesForEntity(entityType EntityType, profile string) []string {
	types := make([]string, 0, 4)

	if kbClass, ok := KBClassMap[entityType]; ok {
		types = append(types, kbClass)
	}

	if provClass, ok := PROVClassMap[entityType]; ok {
		types = append(types, provClass)
	}

	if profile == "bfo" || profile == "cco" {
		if bfoClass, ok := BFOClassMap[entityType]; ok {
			types = append(types, bfoClass)
		}
	}

	if profile == "cco" {
		if ccoClass, ok := CCOClassMap[entityType]; ok {
			types = append(types, ccoClass)
		}
	}

	return types
}

// GetPredicateIRI returns the standard IRI for a predicate, if mapped.
// Unmapped predicates resolve into the notegraph namespace.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	return Namespace + predicate
}
