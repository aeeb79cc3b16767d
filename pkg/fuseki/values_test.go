// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"testing"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRendering(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "iri", value: IRI("http://example.org/x"), expected: "<http://example.org/x>"},
		{name: "wrapped iri", value: IRI("<http://example.org/x>"), expected: "<http://example.org/x>"},
		{name: "literal", value: Literal(`say "hi"` + "\n"), expected: `"say \"hi\"\n"`},
		{name: "lang literal", value: LangLiteral{Text: "chat", Lang: "fr"}, expected: `"chat"@fr`},
		{
			name:     "typed literal",
			value:    TypedLiteral{Text: "1", Datatype: "http://www.w3.org/2001/XMLSchema#integer"},
			expected: `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		},
		{name: "raw", value: Raw("rdf:type"), expected: "rdf:type"},
		{name: "auto uri", value: Auto("http://example.org/x"), expected: "<http://example.org/x>"},
		{name: "auto file uri", value: Auto("file:///tmp/x"), expected: "<file:///tmp/x>"},
		{name: "auto prefixed name", value: Auto("ex:book1"), expected: "ex:book1"},
		{name: "auto other", value: Auto(`"already quoted"`), expected: `"already quoted"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.SPARQL()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValueRenderingErrors(t *testing.T) {
	_, err := IRI("rdf:type").SPARQL()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = LangLiteral{Text: "x"}.SPARQL()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = TypedLiteral{Text: "x", Datatype: "xsd:string"}.SPARQL()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromTerm(t *testing.T) {
	v, err := FromTerm(rdf.IRI{Value: "http://example.org/x"})
	require.NoError(t, err)
	assert.Equal(t, IRI("http://example.org/x"), v)

	v, err = FromTerm(rdf.Literal{Lexical: "chat", Lang: "fr"})
	require.NoError(t, err)
	assert.Equal(t, LangLiteral{Text: "chat", Lang: "fr"}, v)

	v, err = FromTerm(rdf.Literal{Lexical: "1", Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}})
	require.NoError(t, err)
	assert.Equal(t, TypedLiteral{Text: "1", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}, v)

	v, err = FromTerm(rdf.BlankNode{ID: "b0"})
	require.NoError(t, err)
	assert.Equal(t, Raw("_:b0"), v)

	_, err = FromTerm(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTermRDF(t *testing.T) {
	assert.Equal(t, rdf.IRI{Value: "http://a.org/"}, Term{Type: "uri", Value: "http://a.org/"}.RDF())
	assert.Equal(t, rdf.BlankNode{ID: "b1"}, Term{Type: "bnode", Value: "b1"}.RDF())
	assert.Equal(t,
		rdf.Literal{Lexical: "1", Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"}},
		Term{Type: "typed-literal", Value: "1", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}.RDF())
}
