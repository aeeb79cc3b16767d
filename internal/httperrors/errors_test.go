// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"bytes"
	"errors"
	"net"
	"syscall"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"fuseki-manager/pkg/fuseki"
)

func TestReport(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	refused := &fuseki.Error{
		Kind: fuseki.KindConnection,
		Err:  &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
	}

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "refused", err: refused, expected: "Connection refused while pinging"},
		{name: "not found", err: &fuseki.Error{Kind: fuseki.KindDatasetNotFound, StatusCode: 404}, expected: "Dataset not found"},
		{name: "server error", err: &fuseki.Error{Kind: fuseki.KindResponse, StatusCode: 503}, expected: "Server error"},
		{name: "unauthorized", err: &fuseki.Error{Kind: fuseki.KindResponse, StatusCode: 401}, expected: "fusekictl login"},
		{name: "plain", err: errors.New("password=hunter2 rejected"), expected: "password=***"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Report(&buf, tt.err, "pinging", "http://localhost:3030/")
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, buf.String(), tt.expected)
			assert.NotContains(t, buf.String(), "hunter2")
		})
	}
}

func TestReportNil(t *testing.T) {
	assert.NoError(t, Report(&bytes.Buffer{}, nil, "x", ""))
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "localhost:3030", ExtractHostFromURL("http://localhost:3030/"))
	assert.Equal(t, "server", ExtractHostFromURL("::"))
}
