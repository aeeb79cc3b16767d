// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"github.com/geoknoesis/rdf-go/rdf"
)

// Term is one cell of a SPARQL JSON result row.
type Term struct {
	// Type is "uri", "literal", "typed-literal" or "bnode".
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// RDF converts the cell into an rdf-go term.
func (t Term) RDF() rdf.Term {
	switch t.Type {
	case "uri":
		return rdf.IRI{Value: t.Value}
	case "bnode":
		return rdf.BlankNode{ID: t.Value}
	default:
		lit := rdf.Literal{Lexical: t.Value, Lang: t.Lang}
		if t.Datatype != "" {
			lit.Datatype = rdf.IRI{Value: t.Datatype}
		}
		return lit
	}
}

// Row is one solution of a SELECT query, keyed by variable name.
type Row map[string]Term

// Value returns the value bound to name, or "" when unbound.
func (r Row) Value(name string) string {
	return r[name].Value
}

// resultSet is the SPARQL 1.1 JSON results envelope.
type resultSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []Row `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean"`
}

// Triple is a subject/predicate/object record projected from a result row.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// TriplePattern selects triples. Nil positions are left unbound.
type TriplePattern struct {
	Subject   Value
	Predicate Value
	Object    Value
}

func (p TriplePattern) bound() int {
	n := 0
	for _, v := range []Value{p.Subject, p.Predicate, p.Object} {
		if v != nil {
			n++
		}
	}
	return n
}
