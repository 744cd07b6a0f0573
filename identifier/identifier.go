// Package identifier generates stable, deterministic URIs for documents and
// document-scoped entities. All functions are pure: equal input always yields
// byte-identical output, which is what makes re-processing idempotent and
// cross-references stable across runs.
package identifier

import (
	"strings"
	"unicode"
)

// DocumentURI generates the canonical URI for a document from its path.
// Format: <base-namespace>/documents/<path>. The path participates verbatim;
// document identity depends on location, never on content.
func DocumentURI(baseNamespace, path string) string {
	return strings.TrimSuffix(baseNamespace, "/") + "/documents/" + path
}

// EntityURI generates the canonical URI for a document-scoped entity.
// Format: <document-URI>/<kind>/<slug>. The owning document URI is part of
// the key, so equal discriminator text under different documents yields
// different identifiers.
func EntityURI(documentURI, kind, text string) string {
	return documentURI + "/" + kind + "/" + Slug(text, kind)
}

// Slug normalizes arbitrary text into a URL-safe lowercase token.
//
// Rules:
//   - case-fold to lowercase
//   - letters (any script), digits, and existing hyphens are kept
//   - whitespace runs become a single hyphen
//   - punctuation and symbol characters are separators: removed in place,
//     so "C++" -> "c", "#123" -> "123", "config.yaml" -> "configyaml"
//   - non-printable and emoji-class characters are dropped without
//     introducing a hyphen
//   - repeated hyphens collapse to one; leading/trailing hyphens are stripped
//
// Text that normalizes to the empty string yields "unnamed-<kind>".
func Slug(text, kind string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-':
			b.WriteRune('-')
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			// Punctuation, symbols, control characters, emoji: dropped.
		}
	}

	slug := collapseHyphens(b.String())
	if slug == "" {
		return "unnamed-" + kind
	}
	return slug
}

// collapseHyphens reduces hyphen runs to a single hyphen and strips
// leading/trailing hyphens.
func collapseHyphens(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		if r == '-' {
			prevHyphen = true
			continue
		}
		if prevHyphen && b.Len() > 0 {
			b.WriteRune('-')
		}
		prevHyphen = false
		b.WriteRune(r)
	}
	return b.String()
}
