// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openFilesUnder counts the descriptors of this process that point below dir.
// Sockets and other files do not count, so idle HTTP connections cannot skew it.
func openFilesUnder(t *testing.T, dir string) int {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("descriptor inspection needs /proc/self/fd")
	}
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("read /proc/self/fd: %v", err)
	}
	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err != nil {
			continue
		}
		if strings.HasPrefix(target, dir+string(filepath.Separator)) {
			n++
		}
	}
	return n
}

// writeRDFFiles creates n small N-Triples files and returns the resolved dir and paths.
func writeRDFFiles(t *testing.T, n int) (string, []string) {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	paths := make([]string, 0, n)
	for i := range n {
		p := filepath.Join(dir, fmt.Sprintf("part%02d.nt", i))
		line := fmt.Sprintf("<http://example.org/s%d> <http://example.org/p> \"%d\" .\n", i, i)
		require.NoError(t, os.WriteFile(p, []byte(line), 0o600))
		paths = append(paths, p)
	}
	return dir, paths
}

func TestUploadFilesReleasesOpenedFiles(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		extra     func(dir string) FileSource
		wantErr   error
		wantCalls int
	}{
		{name: "success", status: http.StatusOK, wantCalls: 1},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrResponse, wantCalls: 1},
		{
			name:    "directory last",
			status:  http.StatusOK,
			extra:   func(dir string) FileSource { return PathSource{Path: dir} },
			wantErr: ErrInvalidFile,
		},
		{
			name:    "missing file last",
			status:  http.StatusOK,
			extra:   func(dir string) FileSource { return PathSource{Path: filepath.Join(dir, "missing.nt")} },
			wantErr: ErrInvalidFile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeServer(t)
			fs.on(http.MethodPost, "/books/data", tt.status, `{"count":5}`)
			data := NewDataClient(fs.transport(t))

			dir, paths := writeRDFFiles(t, 5)
			sources := Paths(paths...)
			if tt.extra != nil {
				sources = append(sources, tt.extra(dir))
			}
			require.Zero(t, openFilesUnder(t, dir))

			for range 3 {
				_, err := data.UploadFiles(context.Background(), "books", sources, MIMETypeAuto)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
				assert.Zero(t, openFilesUnder(t, dir))
			}
			assert.Len(t, fs.recorded(), 3*tt.wantCalls)
		})
	}
}

func TestUploadFilesReleasesFilesOnConnectionError(t *testing.T) {
	fs := newFakeServer(t)
	data := NewDataClient(fs.transport(t))
	fs.Close()

	dir, paths := writeRDFFiles(t, 3)
	_, err := data.UploadFiles(context.Background(), "books", Paths(paths...), "")
	assert.ErrorIs(t, err, ErrConnection)
	assert.Zero(t, openFilesUnder(t, dir))
}

// closeRecorder is a caller-owned stream that records Close calls.
type closeRecorder struct {
	io.Reader
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestUploadFilesLeavesCallerStreamsOpen(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			fs := newFakeServer(t)
			fs.on(http.MethodPost, "/books/data", status, "")
			data := NewDataClient(fs.transport(t))

			stream := &closeRecorder{Reader: strings.NewReader("<rdf:RDF/>")}
			_, err := data.UploadFiles(context.Background(), "books", []FileSource{
				ReaderSource{Name: "stream.rdf", Reader: stream},
				BytesSource{Name: "inline.rdf", Data: []byte("<rdf:RDF/>")},
			}, "")
			if status == http.StatusOK {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrResponse)
			}
			assert.Zero(t, stream.closed)

			reqs := fs.recorded()
			require.Len(t, reqs, 1)
			assert.Contains(t, reqs[0].Body, `filename="stream.rdf"`)
			assert.Contains(t, reqs[0].Body, `filename="inline.rdf"`)
		})
	}
}
