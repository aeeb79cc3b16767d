// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"net/url"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
)

// opaqueSchemes are the schemes accepted without a hierarchical part.
var opaqueSchemes = map[string]bool{
	"urn":    true,
	"mailto": true,
	"tag":    true,
	"did":    true,
}

// IsURI reports whether s is an absolute URI, optionally wrapped in angle brackets.
// A URI is hierarchical ("http://host/...", "file:///tmp/x") or uses one of the
// opaque schemes urn, mailto, tag or did. Anything else of the form "name:local",
// such as "rdf:type", is treated as a prefixed name.
func IsURI(s string) bool {
	s = UnwrapURI(strings.TrimSpace(s))
	if s == "" || strings.ContainsAny(s, " \t\r\n<>\"{}|\\^`") {
		return false
	}
	if err := rdf.ValidateIRI(s); err != nil {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Opaque == "" {
		return u.Host != "" || strings.HasPrefix(u.Path, "/")
	}
	return opaqueSchemes[strings.ToLower(u.Scheme)]
}

// WrapURI returns s enclosed in angle brackets. Already wrapped values are returned unchanged.
func WrapURI(s string) string {
	if isWrapped(s, '<', '>') {
		return s
	}
	return "<" + s + ">"
}

// UnwrapURI strips enclosing angle brackets, if any.
func UnwrapURI(s string) string {
	if isWrapped(s, '<', '>') {
		return s[1 : len(s)-1]
	}
	return s
}

// IsQuoted reports whether s is enclosed in matching single or double quotes.
func IsQuoted(s string) bool {
	return isWrapped(s, '"', '"') || isWrapped(s, '\'', '\'')
}

// Unquote strips matching enclosing single or double quotes, if any.
func Unquote(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseURI validates value as a URI and returns it in "<...>" form.
func ParseURI(value string) (string, error) {
	if !IsURI(value) {
		return "", newError(KindArgument, "invalid URI [%s]", value)
	}
	return WrapURI(strings.TrimSpace(value)), nil
}

func isWrapped(s string, open, end byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == end
}
