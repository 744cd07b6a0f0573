package export

import (
	"fmt"
	"strings"
)

// Statement is one parsed RDF statement. Subject and Predicate are
// absolute IRIs; Object is either an IRI in angle brackets or a quoted
// literal with an optional ^^<datatype> suffix. Two graphs without blank
// nodes are isomorphic exactly when their statement sets are equal.
type Statement struct {
	Subject   string
	Predicate string
	Object    string
}

// ParseTurtle parses the Turtle subset this package emits: @prefix
// directives, IRI and prefixed-name terms, quoted literals with optional
// datatypes, and predicate lists joined with ";" and ",". It exists so
// serialized output can be verified against the source graph; it is not
// a general Turtle reader.
func ParseTurtle(src string) ([]Statement, error) {
	p := &turtleParser{
		src:      src,
		prefixes: make(map[string]string),
	}
	return p.parse()
}

type turtleParser struct {
	src      string
	pos      int
	prefixes map[string]string
}

func (p *turtleParser) parse() ([]Statement, error) {
	var statements []Statement
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return statements, nil
		}
		if strings.HasPrefix(p.src[p.pos:], "@prefix") {
			if err := p.parsePrefix(); err != nil {
				return nil, err
			}
			continue
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmts...)
	}
}

// parsePrefix consumes "@prefix name: <iri> .".
func (p *turtleParser) parsePrefix() error {
	p.pos += len("@prefix")
	p.skipSpace()
	colon := strings.IndexByte(p.src[p.pos:], ':')
	if colon < 0 {
		return p.errorf("malformed @prefix directive")
	}
	name := strings.TrimSpace(p.src[p.pos : p.pos+colon])
	p.pos += colon + 1
	p.skipSpace()
	iri, err := p.parseIRI()
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '.' {
		return p.errorf("@prefix directive missing terminator")
	}
	p.pos++
	p.prefixes[name] = iri
	return nil
}

// parseStatement consumes one subject with its predicate-object list.
func (p *turtleParser) parseStatement() ([]Statement, error) {
	subject, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	var statements []Statement
	for {
		p.skipSpace()
		predicate, err := p.parsePredicate()
		if err != nil {
			return nil, err
		}
		for {
			p.skipSpace()
			object, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			statements = append(statements, Statement{
				Subject:   subject,
				Predicate: predicate,
				Object:    object,
			})
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			break
		}
		if p.pos >= len(p.src) {
			return nil, p.errorf("statement missing terminator")
		}
		switch p.src[p.pos] {
		case ';':
			p.pos++
		case '.':
			p.pos++
			return statements, nil
		default:
			return nil, p.errorf("expected ';' or '.', found %q", p.src[p.pos])
		}
	}
}

// parsePredicate handles the "a" shorthand for rdf:type.
func (p *turtleParser) parsePredicate() (string, error) {
	if p.pos < len(p.src) && p.src[p.pos] == 'a' {
		next := p.pos + 1
		if next >= len(p.src) || p.src[next] == ' ' || p.src[next] == '\t' || p.src[next] == '\n' {
			p.pos = next
			return rdfTypeIRI, nil
		}
	}
	return p.parseTerm()
}

// parseTerm reads an IRI or prefixed name and returns the absolute IRI.
func (p *turtleParser) parseTerm() (string, error) {
	if p.pos < len(p.src) && p.src[p.pos] == '<' {
		return p.parseIRI()
	}
	return p.parsePrefixedName()
}

// parseObject reads an IRI, prefixed name, or literal in canonical form.
func (p *turtleParser) parseObject() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("unexpected end of input in object position")
	}
	switch p.src[p.pos] {
	case '<':
		iri, err := p.parseIRI()
		if err != nil {
			return "", err
		}
		return "<" + iri + ">", nil
	case '"':
		return p.parseLiteral()
	default:
		iri, err := p.parsePrefixedName()
		if err != nil {
			return "", err
		}
		return "<" + iri + ">", nil
	}
}

// parseIRI consumes "<...>" and returns the IRI.
func (p *turtleParser) parseIRI() (string, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		return "", p.errorf("expected IRI")
	}
	end := strings.IndexByte(p.src[p.pos:], '>')
	if end < 0 {
		return "", p.errorf("unterminated IRI")
	}
	iri := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	return iri, nil
}

// parsePrefixedName consumes "prefix:local" and expands it.
func (p *turtleParser) parsePrefixedName() (string, error) {
	start := p.pos
	for p.pos < len(p.src) && !isTermBreak(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return "", p.errorf("expected prefixed name, found %q", name)
	}
	base, ok := p.prefixes[prefix]
	if !ok {
		return "", p.errorf("undeclared prefix %q", prefix)
	}
	return base + local, nil
}

// parseLiteral consumes a quoted string with an optional ^^datatype and
// returns the canonical term.
func (p *turtleParser) parseLiteral() (string, error) {
	var sb strings.Builder
	sb.WriteByte('"')
	p.pos++ // opening quote
	for {
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated string literal")
		}
		c := p.src[p.pos]
		if c == '"' {
			p.pos++
			break
		}
		if c == '\\' {
			if p.pos+1 >= len(p.src) {
				return "", p.errorf("unterminated escape sequence")
			}
			sb.WriteByte(c)
			sb.WriteByte(p.src[p.pos+1])
			p.pos += 2
			continue
		}
		sb.WriteByte(c)
		p.pos++
	}
	sb.WriteByte('"')

	if strings.HasPrefix(p.src[p.pos:], "^^") {
		p.pos += 2
		datatype, err := p.parseTerm()
		if err != nil {
			return "", err
		}
		sb.WriteString("^^<")
		sb.WriteString(datatype)
		sb.WriteByte('>')
	}
	return sb.String(), nil
}

func (p *turtleParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		if c == '#' {
			nl := strings.IndexByte(p.src[p.pos:], '\n')
			if nl < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += nl + 1
			continue
		}
		return
	}
}

func (p *turtleParser) errorf(format string, args ...any) error {
	line := 1 + strings.Count(p.src[:min(p.pos, len(p.src))], "\n")
	return fmt.Errorf("turtle: line %d: %s", line, fmt.Sprintf(format, args...))
}

func isTermBreak(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ';', ',', '<', '"':
		return true
	}
	return false
}
