package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/c360studio/notegraph/source"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// excessiveLinesRe collapses runs of four or more newlines after conversion.
var excessiveLinesRe = regexp.MustCompile(`\n{4,}`)

// HTMLParser converts HTML input to markdown and parses the result, so HTML
// pages flow through the same extraction pipeline as native markdown.
type HTMLParser struct {
	converter *md.Converter
	markdown  *MarkdownParser
}

// NewHTMLParser creates a new HTML parser.
func NewHTMLParser() *HTMLParser {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &HTMLParser{
		converter: converter,
		markdown:  NewMarkdownParser(),
	}
}

// Parse extracts the readable content of an HTML document, converts it to
// markdown, and returns the resulting document. The page title, when found,
// becomes the document title.
func (p *HTMLParser) Parse(path string, content []byte) (*source.Document, error) {
	title := extractHTMLTitle(content)
	readable := extractReadableContent(path, content)

	markdown, err := p.converter.ConvertString(readable)
	if err != nil {
		return nil, fmt.Errorf("convert HTML to markdown: %w", err)
	}
	markdown = cleanMarkdown(markdown)

	doc, err := p.markdown.Parse(path, []byte(markdown))
	if err != nil {
		return nil, err
	}
	doc.Title = title
	return doc, nil
}

// CanParse returns true if this parser can handle the given file extension.
func (p *HTMLParser) CanParse(ext string) bool {
	switch strings.ToLower(ext) {
	case ".html", ".htm", ".xhtml":
		return true
	default:
		return false
	}
}

// Extension returns the primary file extension for this parser.
func (p *HTMLParser) Extension() string {
	return ".html"
}

// extractReadableContent isolates the article content of an HTML page using
// readability extraction, falling back to the raw content when extraction
// fails or produces nothing.
func extractReadableContent(path string, content []byte) string {
	// Readability needs a page URL for resolving relative references; local
	// files get a synthetic one.
	pageURL, err := url.Parse("file:///" + path)
	if err != nil {
		return string(content)
	}

	article, err := readability.FromReader(strings.NewReader(string(content)), pageURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		return article.Content
	}
	return string(content)
}

// extractHTMLTitle extracts the <title> text from HTML.
func extractHTMLTitle(content []byte) string {
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return ""
	}

	var title string
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if title != "" {
				return
			}
			extract(c)
		}
	}
	extract(doc)

	return title
}

// cleanMarkdown tidies converted markdown: trims trailing whitespace per
// line and collapses excessive blank runs.
func cleanMarkdown(content string) string {
	content = excessiveLinesRe.ReplaceAllString(content, "\n\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
