// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	// Reason is the status line's reason phrase, e.g. "Conflict".
	Reason string
	Header http.Header
	Body   []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &Error{Kind: KindResponse, Message: "decode JSON body: " + err.Error(), StatusCode: r.StatusCode, Err: err}
	}
	return nil
}

// Text returns the body as trimmed text.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Body))
}

// Document decodes a JSON object body.
func (r *Response) Document() (Document, error) {
	var doc Document
	if err := r.JSON(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}
