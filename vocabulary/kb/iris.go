package kb

// Namespace is the base IRI prefix for all notegraph ontology terms.
const Namespace = "https://notegraph.dev/ontology/"

// DefaultEntityNamespace is the default base IRI for generated entity
// identifiers. Deployments override it through configuration; the
// NOTEGRAPH_VOCAB_BASE environment variable overrides the ontology
// namespace used in exports (see config.Load).
const DefaultEntityNamespace = "https://notegraph.dev/kb"

// Class IRIs define the types of entities in the notegraph ontology.
// These classes extend standard ontology classes from BFO, CCO, and PROV-O.
const (
	// ClassDocument represents a source document in the knowledge base.
	// Extends: bfo:GenericallyDependentContinuant, cco:InformationContentEntity, prov:Entity
	ClassDocument = Namespace + "Document"

	// ClassHeading represents a document heading (level 1-6).
	ClassHeading = Namespace + "Heading"

	// ClassSection represents the span of content governed by a heading.
	ClassSection = Namespace + "Section"

	// ClassList represents an ordered or unordered list.
	ClassList = Namespace + "List"

	// ClassListItem represents a single list item.
	ClassListItem = Namespace + "ListItem"

	// ClassTable represents a pipe table with a header row.
	ClassTable = Namespace + "Table"

	// ClassCodeBlock represents a fenced code block.
	// Extends: cco:SoftwareCode
	ClassCodeBlock = Namespace + "CodeBlock"

	// ClassQuote represents a blockquote at a given nesting depth.
	ClassQuote = Namespace + "Quote"

	// ClassTodo represents a checkbox task item.
	// Extends: cco:PlanSpecification
	ClassTodo = Namespace + "Todo"

	// ClassTag represents a tag from hashtag, category, or frontmatter sources.
	ClassTag = Namespace + "Tag"

	// ClassLink represents an inline, reference-style, or citation link.
	ClassLink = Namespace + "Link"

	// ClassWikiLink represents a cross-document [[target]] reference.
	ClassWikiLink = Namespace + "WikiLink"

	// ClassNamedEntity represents a span recognized by the entity-recognition
	// collaborator (person, organization, place, date, ...).
	ClassNamedEntity = Namespace + "NamedEntity"

	// ClassPerson represents a person-like recognized entity.
	// Extends: bfo:IndependentContinuant, cco:Person, prov:Person
	ClassPerson = Namespace + "Person"
)

// Object property IRIs define relationships between entities.
const (
	// PropHasElement links a document to its extracted elements.
	// Domain: ClassDocument, Range: any element class
	PropHasElement = Namespace + "hasElement"

	// PropHasHeading links a section to its governing heading.
	// Domain: ClassSection, Range: ClassHeading
	PropHasHeading = Namespace + "hasHeading"

	// PropResolvesTo links a wikilink to the document it references.
	// Domain: ClassWikiLink, Range: ClassDocument
	PropResolvesTo = Namespace + "resolvesTo"

	// PropAssignedTo links a todo to an assignee.
	// Domain: ClassTodo, Range: ClassPerson
	PropAssignedTo = Namespace + "assignedTo"
)
