// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"strings"
)

// Namespace binds a prefix to a URI root.
type Namespace struct {
	Prefix string
	URI    string
}

// Namespaces is an ordered prefix mapping. Order is preserved in the
// rendered PREFIX clauses.
type Namespaces []Namespace

// Lookup returns the URI bound to prefix.
func (ns Namespaces) Lookup(prefix string) (string, bool) {
	for _, n := range ns {
		if n.Prefix == prefix {
			return n.URI, true
		}
	}
	return "", false
}

// With returns a copy of ns with prefix bound to uri. An existing prefix keeps
// its position; a new one is appended.
func (ns Namespaces) With(prefix, uri string) Namespaces {
	out := make(Namespaces, len(ns), len(ns)+1)
	copy(out, ns)
	for i := range out {
		if out[i].Prefix == prefix {
			out[i].URI = uri
			return out
		}
	}
	return append(out, Namespace{Prefix: prefix, URI: uri})
}

// Merge returns a copy of ns overridden by overrides.
func (ns Namespaces) Merge(overrides Namespaces) Namespaces {
	out := make(Namespaces, len(ns))
	copy(out, ns)
	for _, o := range overrides {
		out = out.With(o.Prefix, o.URI)
	}
	return out
}

// Binding assigns a value to a query variable (without the leading "?").
type Binding struct {
	Var   string
	Value Value
}

// Bindings is an ordered list of variable assignments rendered as a VALUES clause.
type Bindings []Binding

// Bind returns a copy of b with name bound to v. An existing variable keeps its position.
func (b Bindings) Bind(name string, v Value) Bindings {
	name = strings.TrimPrefix(name, "?")
	out := make(Bindings, len(b), len(b)+1)
	copy(out, b)
	for i := range out {
		if out[i].Var == name {
			out[i].Value = v
			return out
		}
	}
	return append(out, Binding{Var: name, Value: v})
}

// BindAuto binds name to Auto(value).
func (b Bindings) BindAuto(name, value string) Bindings {
	return b.Bind(name, Auto(value))
}

// PrepareQuery renders namespaces as PREFIX clauses, appends the raw query and,
// when bindings are present, a trailing VALUES clause.
func PrepareQuery(query string, namespaces Namespaces, bindings Bindings) (string, error) {
	var sb strings.Builder
	for _, ns := range namespaces {
		uri, err := ParseURI(ns.URI)
		if err != nil {
			return "", err
		}
		sb.WriteString("PREFIX ")
		sb.WriteString(ns.Prefix)
		sb.WriteString(": ")
		sb.WriteString(uri)
		sb.WriteString(" ")
	}
	sb.WriteString(query)

	if len(bindings) == 0 {
		return sb.String(), nil
	}
	vars := make([]string, 0, len(bindings))
	values := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.Var == "" {
			return "", newError(KindArgument, "binding without variable name")
		}
		if b.Value == nil {
			return "", newError(KindArgument, "binding ?%s has no value", b.Var)
		}
		rendered, err := b.Value.SPARQL()
		if err != nil {
			return "", err
		}
		vars = append(vars, "?"+b.Var)
		values = append(values, rendered)
	}
	sb.WriteString(" VALUES (")
	sb.WriteString(strings.Join(vars, " "))
	sb.WriteString(") {(")
	sb.WriteString(strings.Join(values, " "))
	sb.WriteString(")}")
	return sb.String(), nil
}
