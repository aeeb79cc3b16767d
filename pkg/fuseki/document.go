// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document is a JSON object returned by the server. Its schema is owned by the
// server; the helpers only locate well-known top-level keys.
type Document map[string]any

// String returns the string at key, or "" if absent or not a string.
func (d Document) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// Strings returns the string elements of the array at key.
func (d Document) Strings(key string) []string {
	items, _ := d[key].([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// TaskID returns the "taskId" of a task or of an operation that started one.
// Servers send it either as a string or as a number.
func (d Document) TaskID() string {
	switch v := d["taskId"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// DatasetName returns the dataset name from "ds.name" without its leading slash.
func (d Document) DatasetName() string {
	return strings.TrimPrefix(d.String("ds.name"), "/")
}

// Datasets returns the dataset descriptions of a "datasets" listing.
func (d Document) Datasets() []Document {
	items, _ := d["datasets"].([]any)
	out := make([]Document, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, Document(m))
		}
	}
	return out
}

// Finished reports whether a task description carries a "finishPoint".
func (d Document) Finished() bool {
	_, ok := d["finishPoint"]
	return ok
}

// Succeeded reports the "success" flag of a finished task.
func (d Document) Succeeded() bool {
	ok, _ := d["success"].(bool)
	return ok
}
