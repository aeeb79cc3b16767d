// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/geoknoesis/rdf-go/rdf"
)

// MIME types used by uploads.
const (
	MIMETypeRDFXML = "application/rdf+xml"
	MIMETypeTurtle = "text/turtle"
	// MIMETypeAuto infers each file's type from its name, falling back to RDF/XML.
	MIMETypeAuto = "auto"
)

// unknownName is sent as the filename of in-memory and stream sources.
const unknownName = "unknown"

// FileSource is one upload input: a PathSource, BytesSource or ReaderSource.
type FileSource interface {
	fileSource()
}

// PathSource names a regular file on disk.
type PathSource struct {
	Path string
}

// BytesSource is an in-memory payload.
type BytesSource struct {
	Name string
	Data []byte
}

// ReaderSource is an already open stream owned by the caller.
type ReaderSource struct {
	Name   string
	Reader io.Reader
}

func (PathSource) fileSource()   {}
func (BytesSource) fileSource()  {}
func (ReaderSource) fileSource() {}

// Paths converts file paths into sources.
func Paths(paths ...string) []FileSource {
	out := make([]FileSource, 0, len(paths))
	for _, p := range paths {
		out = append(out, PathSource{Path: p})
	}
	return out
}

// File is a normalized upload part.
type File struct {
	Name     string
	Reader   io.Reader
	MIMEType string

	closer io.Closer
}

// Close releases the stream if it was opened by Normalize.
func (f File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Normalize turns src into a named stream with a MIME type. Only streams
// opened here (the PathSource case) are closed by File.Close.
func Normalize(src FileSource, mimeType string) (File, error) {
	switch s := src.(type) {
	case PathSource:
		info, err := os.Stat(s.Path)
		if err != nil || !info.Mode().IsRegular() {
			return File{}, newError(KindInvalidFile, "%s", s.Path)
		}
		f, err := os.Open(s.Path)
		if err != nil {
			return File{}, &Error{Kind: KindInvalidFile, Message: s.Path, Err: err}
		}
		return File{
			Name:     filepath.Base(s.Path),
			Reader:   f,
			MIMEType: resolveMIMEType(mimeType, s.Path),
			closer:   f,
		}, nil
	case BytesSource:
		return File{
			Name:     nameOrUnknown(s.Name),
			Reader:   bytes.NewReader(s.Data),
			MIMEType: resolveMIMEType(mimeType, s.Name),
		}, nil
	case ReaderSource:
		if s.Reader == nil {
			return File{}, newError(KindInvalidFile, "%s", describe(src))
		}
		return File{
			Name:     nameOrUnknown(s.Name),
			Reader:   s.Reader,
			MIMEType: resolveMIMEType(mimeType, s.Name),
		}, nil
	default:
		return File{}, newError(KindInvalidFile, "%s", describe(src))
	}
}

func nameOrUnknown(name string) string {
	if name == "" {
		return unknownName
	}
	return name
}

func resolveMIMEType(mimeType, name string) string {
	switch mimeType {
	case "":
		return MIMETypeRDFXML
	case MIMETypeAuto:
		if inferred := MIMETypeForPath(name); inferred != "" {
			return inferred
		}
		return MIMETypeRDFXML
	default:
		return mimeType
	}
}

var formatMIMETypes = map[string]string{
	"turtle":   "text/turtle",
	"ntriples": "application/n-triples",
	"rdfxml":   "application/rdf+xml",
	"jsonld":   "application/ld+json",
	"trig":     "application/trig",
	"nquads":   "application/n-quads",
}

// MIMETypeForPath infers an RDF media type from a file extension, or "" if unknown.
func MIMETypeForPath(path string) string {
	if path == "" {
		return ""
	}
	format, err := rdf.ResolveAnyFormatFromPath(path)
	if err != nil {
		return ""
	}
	return formatMIMETypes[format.Name]
}
