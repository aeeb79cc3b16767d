// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"fmt"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
)

// Value is a term that can be substituted into a query's VALUES clause.
// Use the typed constructors when the caller knows whether a value is a URI or
// a literal; Auto keeps the shape-sniffing behaviour for untyped strings.
type Value interface {
	// SPARQL renders the value as it appears in the query text.
	SPARQL() (string, error)
}

// IRI is a URI value rendered as "<...>".
type IRI string

// SPARQL implements Value.
func (v IRI) SPARQL() (string, error) { return ParseURI(string(v)) }

// Literal is a plain string literal rendered with SPARQL escaping.
type Literal string

// SPARQL implements Value.
func (v Literal) SPARQL() (string, error) { return quoteLiteral(string(v)), nil }

// LangLiteral is a language-tagged literal, e.g. "chat"@fr.
type LangLiteral struct {
	Text string
	Lang string
}

// SPARQL implements Value.
func (v LangLiteral) SPARQL() (string, error) {
	if v.Lang == "" || strings.ContainsAny(v.Lang, " \t\"@") {
		return "", newError(KindArgument, "invalid language tag [%s]", v.Lang)
	}
	return quoteLiteral(v.Text) + "@" + v.Lang, nil
}

// TypedLiteral is a literal with a datatype URI, e.g. "1"^^<http://www.w3.org/2001/XMLSchema#integer>.
type TypedLiteral struct {
	Text     string
	Datatype string
}

// SPARQL implements Value.
func (v TypedLiteral) SPARQL() (string, error) {
	dt, err := ParseURI(v.Datatype)
	if err != nil {
		return "", err
	}
	return quoteLiteral(v.Text) + "^^" + dt, nil
}

// Raw is emitted verbatim: numbers, prefixed names, UNDEF, pre-quoted literals.
type Raw string

// SPARQL implements Value.
func (v Raw) SPARQL() (string, error) { return string(v), nil }

// Auto classifies an untyped string: URI-looking values become IRIs, anything
// else is emitted as-is.
func Auto(s string) Value {
	if IsURI(s) {
		return IRI(UnwrapURI(strings.TrimSpace(s)))
	}
	return Raw(s)
}

// FromTerm converts an rdf-go term into a Value.
func FromTerm(t rdf.Term) (Value, error) {
	switch term := t.(type) {
	case rdf.IRI:
		return IRI(term.Value), nil
	case rdf.Literal:
		switch {
		case term.Lang != "":
			return LangLiteral{Text: term.Lexical, Lang: term.Lang}, nil
		case term.Datatype.Value != "":
			return TypedLiteral{Text: term.Lexical, Datatype: term.Datatype.Value}, nil
		default:
			return Literal(term.Lexical), nil
		}
	case rdf.BlankNode:
		return Raw("_:" + term.ID), nil
	default:
		return nil, newError(KindArgument, "unsupported term %s", describe(t))
	}
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
	"\f", `\f`,
)

func quoteLiteral(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}

func describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%#v", v)
}
