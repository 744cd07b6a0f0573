package kb

// Common entity predicates apply to every exported entity regardless of kind.
const (
	// EntityKind is the entity kind discriminator (see EntityType values).
	EntityKind = "kb.entity.kind"

	// EntityLabel is the human-readable label.
	EntityLabel = "kb.entity.label"

	// EntityDocument links an entity to its owning document URI.
	EntityDocument = "kb.entity.document"

	// EntitySpanStart is the start byte offset of the originating text span.
	EntitySpanStart = "kb.entity.span_start"

	// EntitySpanEnd is the end byte offset of the originating text span.
	EntitySpanEnd = "kb.entity.span_end"

	// EntityCreatedAt is the RFC3339 creation timestamp.
	EntityCreatedAt = "kb.entity.created_at"

	// EntityUpdatedAt is the RFC3339 last modification timestamp.
	EntityUpdatedAt = "kb.entity.updated_at"

	// ElementParent links an element entity to its parent element entity.
	ElementParent = "kb.element.parent"
)

// Document predicates describe the document entity itself.
const (
	// DocumentTitle is the resolved display title.
	DocumentTitle = "kb.document.title"

	// DocumentPath is the source file path, relative to the scan root.
	DocumentPath = "kb.document.path"
)

// Heading and section predicates.
const (
	// HeadingLevel is the heading level (1-6).
	HeadingLevel = "kb.heading.level"

	// SectionHeading links a section to its governing heading.
	SectionHeading = "kb.section.heading"

	// SectionOrder is the document-order index of the section.
	SectionOrder = "kb.section.order"
)

// List, item, and table predicates.
const (
	// ListOrdered is true for numbered lists.
	ListOrdered = "kb.list.ordered"

	// ListItemCount is the number of items in the list.
	ListItemCount = "kb.list.item_count"

	// ItemNesting is the indentation-derived nesting level (0-based).
	ItemNesting = "kb.item.nesting"

	// TableRows is the row count, header row included.
	TableRows = "kb.table.rows"

	// TableColumns is the column count, from the header row.
	TableColumns = "kb.table.columns"

	// TableHeaders is the comma-joined header cell text.
	TableHeaders = "kb.table.headers"
)

// Code block and quote predicates.
const (
	// CodeLanguage is the fence info token, empty when absent.
	CodeLanguage = "kb.code.language"

	// QuoteDepth is the count of leading '>' markers.
	QuoteDepth = "kb.quote.depth"
)

// Todo predicates.
const (
	// TodoDescription is the task text after the checkbox token.
	TodoDescription = "kb.todo.description"

	// TodoChecked is true for [x] items.
	TodoChecked = "kb.todo.checked"

	// TodoDue is the due date when one is carried in task metadata.
	TodoDue = "kb.todo.due"

	// TodoPriority is the priority token when one is carried in metadata.
	TodoPriority = "kb.todo.priority"

	// TodoAssignee links a todo to an assignee entity.
	TodoAssignee = "kb.todo.assignee"
)

// Tag predicates.
const (
	// TagName is the normalized tag name.
	TagName = "kb.tag.name"

	// TagCategory is the category segment of @category/tag tokens.
	TagCategory = "kb.tag.category"

	// TagSource records where the tag came from.
	// Values: body, frontmatter, heading
	TagSource = "kb.tag.source"
)

// Link and wikilink predicates.
const (
	// LinkURL is the link target URL.
	LinkURL = "kb.link.url"

	// LinkTitle is the optional quoted link title.
	LinkTitle = "kb.link.title"

	// LinkInternal is true when the URL carries no scheme.
	LinkInternal = "kb.link.internal"

	// LinkKind discriminates inline, reference, and citation links.
	LinkKind = "kb.link.kind"

	// WikiLinkTarget is the literal [[target]] path text.
	WikiLinkTarget = "kb.wikilink.target"

	// WikiLinkAlias is the display alias after '|', empty when absent.
	WikiLinkAlias = "kb.wikilink.alias"

	// WikiLinkResolved links a wikilink to the resolved document URI.
	// Absent when the target was not registered at extraction time.
	WikiLinkResolved = "kb.wikilink.resolved"
)

// Named-entity and person predicates.
const (
	// NerLabel is the open-ended recognition label (person, org, place, date).
	NerLabel = "kb.ner.label"

	// NerConfidence is the collaborator-reported confidence, when available.
	NerConfidence = "kb.ner.confidence"

	// PersonName is the person's display name.
	PersonName = "kb.person.name"

	// PersonAlias is an alternate name for the person.
	PersonAlias = "kb.person.alias"
)
