// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DatasetType is the storage backend of a new dataset.
type DatasetType string

const (
	DatasetMem DatasetType = "mem"
	DatasetTDB DatasetType = "tdb"
)

// DatasetState is the availability of a dataset.
type DatasetState string

const (
	StateActive  DatasetState = "active"
	StateOffline DatasetState = "offline"
)

// AdminClient talks to the "$/" administration endpoints.
type AdminClient struct {
	t    *Transport
	data *DataClient
}

// NewAdminClient builds an admin client on t. When data is nil a data client
// sharing t is created for drop and restore operations.
func NewAdminClient(t *Transport, data *DataClient) *AdminClient {
	if data == nil {
		data = NewDataClient(t)
	}
	return &AdminClient{t: t, data: data}
}

func (c *AdminClient) uri(service string) string {
	return c.t.BaseURI() + "$/" + service
}

func (c *AdminClient) getDocument(ctx context.Context, service string) (Document, error) {
	resp, err := c.t.Get(ctx, c.uri(service), Request{})
	if err != nil {
		return nil, err
	}
	return resp.Document()
}

var pingLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	time.RFC1123Z,
	time.RFC1123,
}

// Ping checks that the server is running and returns the time it reported.
// It never sends credentials.
func (c *AdminClient) Ping(ctx context.Context) (time.Time, error) {
	resp, err := c.t.Get(ctx, c.uri("ping"), Request{NoAuth: true})
	if err != nil {
		return time.Time{}, err
	}
	text := resp.Text()
	for _, layout := range pingLayouts {
		if ts, perr := time.Parse(layout, text); perr == nil {
			return ts, nil
		}
	}
	return time.Time{}, &Error{Kind: KindResponse, Message: "unparseable ping timestamp: " + text, StatusCode: resp.StatusCode}
}

// ServerInfo describes the server version, uptime and datasets.
func (c *AdminClient) ServerInfo(ctx context.Context) (Document, error) {
	return c.getDocument(ctx, "server")
}

// ListDatasets describes every dataset of the server.
func (c *AdminClient) ListDatasets(ctx context.Context) (Document, error) {
	return c.getDocument(ctx, "datasets")
}

// CreateDataset adds a dataset and returns its description as served by GetDataset.
func (c *AdminClient) CreateDataset(ctx context.Context, name string, dbType DatasetType) (Document, error) {
	if dbType != DatasetMem && dbType != DatasetTDB {
		return nil, newError(KindArgument, "invalid dbType: %s", dbType)
	}
	resp, err := c.t.Post(ctx, c.uri("datasets"), Request{
		Query:  url.Values{"dbType": {string(dbType)}, "dbName": {name}},
		Expect: []int{http.StatusOK, http.StatusConflict},
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusConflict {
		return nil, &Error{Kind: KindDatasetExists, Message: resp.Reason, StatusCode: resp.StatusCode}
	}
	return c.GetDataset(ctx, name)
}

// CreateDatasetFromConfig sets up a dataset from a Turtle assembler file.
func (c *AdminClient) CreateDatasetFromConfig(ctx context.Context, configPath string) error {
	f, err := Normalize(PathSource{Path: configPath}, MIMETypeTurtle)
	if err != nil {
		return err
	}
	defer f.Close()

	resp, err := c.t.Post(ctx, c.uri("datasets"), Request{
		Files:  []File{f},
		Expect: []int{http.StatusOK, http.StatusConflict},
	})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return &Error{Kind: KindDatasetExists, Message: resp.Reason, StatusCode: resp.StatusCode}
	}
	return nil
}

// GetDataset describes one dataset.
func (c *AdminClient) GetDataset(ctx context.Context, name string) (Document, error) {
	return c.getDocument(ctx, "datasets/"+url.PathEscape(name))
}

// DeleteDataset removes a dataset and its configuration. The administration
// service keeps the data of TDB datasets, so forceDropData runs DropAll first;
// a failed drop aborts the deletion.
func (c *AdminClient) DeleteDataset(ctx context.Context, name string, forceDropData bool) error {
	if forceDropData {
		if err := c.data.DropAll(ctx, name); err != nil {
			return err
		}
	}
	_, err := c.t.Delete(ctx, c.uri("datasets/"+url.PathEscape(name)), Request{})
	return err
}

// SetDatasetState switches a dataset on or off line. The result is true when
// the new state is active and false when it is offline.
func (c *AdminClient) SetDatasetState(ctx context.Context, name string, state DatasetState) (bool, error) {
	if state != StateActive && state != StateOffline {
		return false, newError(KindArgument, "invalid state value: %s", state)
	}
	_, err := c.t.Post(ctx, c.uri("datasets/"+url.PathEscape(name)), Request{
		Query: url.Values{"state": {string(state)}},
	})
	if err != nil {
		return false, err
	}
	return state == StateActive, nil
}

// AllStats returns the statistics of every dataset.
func (c *AdminClient) AllStats(ctx context.Context) (Document, error) {
	return c.getDocument(ctx, "stats")
}

// Stats returns the statistics of one dataset.
func (c *AdminClient) Stats(ctx context.Context, name string) (Document, error) {
	return c.getDocument(ctx, "stats/"+url.PathEscape(name))
}

// ListBackups lists the files in the server's backup area as a document with a
// "backups" array. A server that answers with a bare JSON array gets it wrapped
// under the same key.
func (c *AdminClient) ListBackups(ctx context.Context) (Document, error) {
	resp, err := c.t.Get(ctx, c.uri("backups-list"), Request{})
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(resp.Text(), "[") {
		var files []any
		if err := resp.JSON(&files); err != nil {
			return nil, err
		}
		return Document{"backups": files}, nil
	}
	return resp.Document()
}

// CreateBackup starts a backup of the dataset. The backup runs server side;
// poll the returned TaskID with GetTask or WaitTask.
func (c *AdminClient) CreateBackup(ctx context.Context, name string) (Document, error) {
	resp, err := c.t.Post(ctx, c.uri("backup/"+url.PathEscape(name)), Request{})
	if err != nil {
		return nil, err
	}
	return resp.Document()
}

// ListTasks describes running and recently finished tasks.
func (c *AdminClient) ListTasks(ctx context.Context) ([]Document, error) {
	resp, err := c.t.Get(ctx, c.uri("tasks"), Request{})
	if err != nil {
		return nil, err
	}
	var tasks []Document
	if err := resp.JSON(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask describes one task. Unknown or expired tasks yield KindTaskNotFound.
func (c *AdminClient) GetTask(ctx context.Context, id string) (Document, error) {
	resp, err := c.t.Get(ctx, c.uri("tasks/"+url.PathEscape(id)), Request{NotFound: KindTaskNotFound})
	if err != nil {
		return nil, err
	}
	return resp.Document()
}

// RestoreData uploads data files into a dataset through the data service.
func (c *AdminClient) RestoreData(ctx context.Context, dataset string, paths []string) (Document, error) {
	return c.data.UploadFiles(ctx, dataset, Paths(paths...), "")
}
