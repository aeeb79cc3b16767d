// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingSkipsAuth(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodGet, "/$/ping", http.StatusOK, "2025-03-01T10:20:30.123+00:00\n")

	cfg := fs.config(t)
	cfg.User, cfg.Password = "admin", "pw"
	ts, err := NewAdminClient(NewTransport(cfg), nil).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2025, ts.Year())
	assert.Equal(t, time.March, ts.Month())
	assert.False(t, fs.recorded()[0].HasAuth)
}

func TestPingRejectsGarbage(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodGet, "/$/ping", http.StatusOK, "not a date")

	_, err := NewAdminClient(fs.transport(t), nil).Ping(context.Background())
	assert.ErrorIs(t, err, ErrResponse)
}

func TestCreateDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid type sends nothing", func(t *testing.T) {
		fs := newFakeServer(t)
		_, err := NewAdminClient(fs.transport(t), nil).CreateDataset(ctx, "books", "foo")
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Empty(t, fs.recorded())
	})

	t.Run("success fetches description", func(t *testing.T) {
		fs := newFakeServer(t)
		fs.on(http.MethodPost, "/$/datasets", http.StatusOK, "")
		fs.on(http.MethodGet, "/$/datasets/books", http.StatusOK, `{"ds.name":"/books","ds.state":true}`)

		doc, err := NewAdminClient(fs.transport(t), nil).CreateDataset(ctx, "books", DatasetTDB)
		require.NoError(t, err)
		assert.Equal(t, "books", doc.DatasetName())

		reqs := fs.recorded()
		require.Len(t, reqs, 2)
		assert.Equal(t, http.MethodPost, reqs[0].Method)
		assert.Equal(t, "tdb", reqs[0].Query.Get("dbType"))
		assert.Equal(t, "books", reqs[0].Query.Get("dbName"))
		assert.Equal(t, http.MethodGet, reqs[1].Method)
		assert.Equal(t, "/$/datasets/books", reqs[1].Path)
	})

	t.Run("conflict skips fetch", func(t *testing.T) {
		fs := newFakeServer(t)
		fs.on(http.MethodPost, "/$/datasets", http.StatusConflict, "")

		_, err := NewAdminClient(fs.transport(t), nil).CreateDataset(ctx, "books", DatasetMem)
		assert.ErrorIs(t, err, ErrDatasetExists)
		assert.Len(t, fs.recorded(), 1)
	})
}

func TestCreateDatasetFromConfig(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodPost, "/$/datasets", http.StatusOK, "")
	path := filepath.Join(t.TempDir(), "books.ttl")
	require.NoError(t, os.WriteFile(path, []byte("@prefix fuseki: <http://jena.apache.org/fuseki#> ."), 0o600))

	admin := NewAdminClient(fs.transport(t), nil)
	require.NoError(t, admin.CreateDatasetFromConfig(context.Background(), path))

	req := fs.recorded()[0]
	assert.Contains(t, req.Body, `filename="books.ttl"`)
	assert.Contains(t, req.Body, "Content-Type: text/turtle")

	err := admin.CreateDatasetFromConfig(context.Background(), filepath.Join(t.TempDir(), "missing.ttl"))
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.Len(t, fs.recorded(), 1)
}

func TestSetDatasetState(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodPost, "/$/datasets/books", http.StatusOK, "")
	admin := NewAdminClient(fs.transport(t), nil)
	ctx := context.Background()

	active, err := admin.SetDatasetState(ctx, "books", StateActive)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = admin.SetDatasetState(ctx, "books", StateOffline)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = admin.SetDatasetState(ctx, "books", "bogus")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	reqs := fs.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, "active", reqs[0].Query.Get("state"))
	assert.Equal(t, "offline", reqs[1].Query.Get("state"))
}

func TestDeleteDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("force drops before delete", func(t *testing.T) {
		fs := newFakeServer(t)
		fs.on(http.MethodPost, "/books/update", http.StatusNoContent, "")
		fs.on(http.MethodDelete, "/$/datasets/books", http.StatusOK, "")

		require.NoError(t, NewAdminClient(fs.transport(t), nil).DeleteDataset(ctx, "books", true))

		reqs := fs.recorded()
		require.Len(t, reqs, 2)
		assert.Equal(t, "/books/update", reqs[0].Path)
		assert.Equal(t, "update=DROP+ALL", reqs[0].Body)
		assert.Equal(t, http.MethodDelete, reqs[1].Method)
	})

	t.Run("failed drop aborts", func(t *testing.T) {
		fs := newFakeServer(t)
		fs.on(http.MethodPost, "/books/update", http.StatusInternalServerError, "")
		fs.on(http.MethodDelete, "/$/datasets/books", http.StatusOK, "")

		err := NewAdminClient(fs.transport(t), nil).DeleteDataset(ctx, "books", true)
		assert.ErrorIs(t, err, ErrResponse)
		assert.Len(t, fs.recorded(), 1)
	})

	t.Run("without force", func(t *testing.T) {
		fs := newFakeServer(t)
		fs.on(http.MethodDelete, "/$/datasets/books", http.StatusOK, "")

		require.NoError(t, NewAdminClient(fs.transport(t), nil).DeleteDataset(ctx, "books", false))
		assert.Len(t, fs.recorded(), 1)
	})
}

func TestDropAllViaDatasetRoot(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodPost, "/books", http.StatusOK, "")

	data := NewDataClient(fs.transport(t), WithDropMode(DropViaDatasetRoot))
	require.NoError(t, data.DropAll(context.Background(), "books"))
	assert.Equal(t, "DROP ALL", fs.recorded()[0].Query.Get("update"))
}

func TestParseDropMode(t *testing.T) {
	m, err := ParseDropMode("")
	require.NoError(t, err)
	assert.Equal(t, DropViaUpdateService, m)

	m, err = ParseDropMode("dataset-root")
	require.NoError(t, err)
	assert.Equal(t, DropViaDatasetRoot, m)

	_, err = ParseDropMode("sideways")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBackupsAndTasks(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodPost, "/$/backup/books", http.StatusOK, `{"taskId":"7","requestId":3}`)
	fs.on(http.MethodGet, "/$/tasks", http.StatusOK, `[{"taskId":"7","task":"Backup"}]`)
	fs.on(http.MethodGet, "/$/tasks/7", http.StatusOK, `{"taskId":"7","finishPoint":"2025-03-01T10:00:00Z","success":true}`)
	fs.on(http.MethodGet, "/$/backups-list", http.StatusOK, `{"backups":["books_2025-03-01.nq.gz"]}`)
	admin := NewAdminClient(fs.transport(t), nil)
	ctx := context.Background()

	started, err := admin.CreateBackup(ctx, "books")
	require.NoError(t, err)
	assert.Equal(t, "7", started.TaskID())

	tasks, err := admin.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Backup", tasks[0].String("task"))

	var polls int
	done, err := admin.WaitTask(ctx, started.TaskID(), time.Millisecond, func(Document) { polls++ })
	require.NoError(t, err)
	assert.True(t, done.Succeeded())
	assert.Equal(t, 1, polls)

	backups, err := admin.ListBackups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"books_2025-03-01.nq.gz"}, backups.Strings("backups"))
}

func TestListBackupsShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "envelope", body: `{"backups":["a.nq.gz","b.nq.gz"]}`},
		{name: "bare array", body: `["a.nq.gz","b.nq.gz"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t)
			fs.on(http.MethodGet, "/$/backups-list", http.StatusOK, tt.body)

			backups, err := NewAdminClient(fs.transport(t), nil).ListBackups(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"a.nq.gz", "b.nq.gz"}, backups.Strings("backups"))
		})
	}
}

func TestWaitTaskHonoursContext(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodGet, "/$/tasks/9", http.StatusOK, `{"taskId":9}`)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := NewAdminClient(fs.transport(t), nil).WaitTask(ctx, "9", 5*time.Millisecond, nil)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestRestoreData(t *testing.T) {
	fs := newFakeServer(t)
	fs.on(http.MethodPost, "/books/data", http.StatusOK, `{"count":1,"tripleCount":1,"quadCount":0}`)
	path := filepath.Join(t.TempDir(), "dump.rdf")
	require.NoError(t, os.WriteFile(path, []byte("<rdf:RDF/>"), 0o600))

	doc, err := NewAdminClient(fs.transport(t), nil).RestoreData(context.Background(), "books", []string{path})
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc["tripleCount"])
	assert.Contains(t, fs.recorded()[0].Body, "Content-Type: application/rdf+xml")
}
