// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"net/http"
	"net/url"
)

// DropMode selects how DropAll reaches the server. Fuseki releases differ on
// where a dataset accepts update requests.
type DropMode string

const (
	// DropViaUpdateService posts the update form to "{dataset}/update".
	DropViaUpdateService DropMode = "update-service"
	// DropViaDatasetRoot posts "?update=DROP ALL" to the dataset root.
	DropViaDatasetRoot DropMode = "dataset-root"
)

// ParseDropMode validates a drop mode name. An empty name selects the default.
func ParseDropMode(s string) (DropMode, error) {
	switch DropMode(s) {
	case "", DropViaUpdateService:
		return DropViaUpdateService, nil
	case DropViaDatasetRoot:
		return DropViaDatasetRoot, nil
	default:
		return "", newError(KindArgument, "invalid drop mode: %s", s)
	}
}

const dropAllUpdate = "DROP ALL"

// DataClient talks to a dataset's data endpoints.
type DataClient struct {
	t        *Transport
	dropMode DropMode
}

// DataOption configures a DataClient.
type DataOption func(*DataClient)

// WithDropMode selects the endpoint used by DropAll.
func WithDropMode(m DropMode) DataOption {
	return func(c *DataClient) {
		if m != "" {
			c.dropMode = m
		}
	}
}

// NewDataClient builds a data client on t.
func NewDataClient(t *Transport, opts ...DataOption) *DataClient {
	c := &DataClient{t: t, dropMode: DropViaUpdateService}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *DataClient) uri(dataset, service string) string {
	uri := c.t.BaseURI() + url.PathEscape(dataset)
	if service != "" {
		uri += "/" + service
	}
	return uri
}

// DropAll removes every graph of dataset with a "DROP ALL" update.
func (c *DataClient) DropAll(ctx context.Context, dataset string) error {
	expect := []int{http.StatusOK, http.StatusNoContent}
	var err error
	switch c.dropMode {
	case DropViaDatasetRoot:
		_, err = c.t.Post(ctx, c.uri(dataset, ""), Request{
			Query:  url.Values{"update": {dropAllUpdate}},
			Expect: expect,
		})
	default:
		_, err = c.t.Post(ctx, c.uri(dataset, "update"), Request{
			Form:   url.Values{"update": {dropAllUpdate}},
			Expect: expect,
		})
	}
	return err
}

// UploadFiles sends sources to the dataset's "data" endpoint, one multipart
// "file" field per source, and returns the insertion counts reported by the server.
// An empty mimeType selects RDF/XML; MIMETypeAuto infers it per file.
func (c *DataClient) UploadFiles(ctx context.Context, dataset string, sources []FileSource, mimeType string) (doc Document, err error) {
	if len(sources) == 0 {
		return nil, newError(KindArgument, "no files to upload")
	}

	files := make([]File, 0, len(sources))
	defer func() {
		for _, f := range files {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = &Error{Kind: KindInvalidFile, Message: f.Name, Err: cerr}
			}
		}
	}()
	for _, src := range sources {
		f, nerr := Normalize(src, mimeType)
		if nerr != nil {
			return nil, nerr
		}
		files = append(files, f)
	}

	resp, err := c.t.Post(ctx, c.uri(dataset, "data"), Request{Files: files})
	if err != nil {
		return nil, err
	}
	if len(resp.Body) == 0 {
		return Document{}, nil
	}
	return resp.Document()
}
