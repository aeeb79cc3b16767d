package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	got, err := ReadLine(&out, strings.NewReader("admin\n"), "User", "")
	require.NoError(t, err)
	assert.Equal(t, "admin", got)
	assert.Equal(t, "User: ", out.String())
}

func TestReadLineDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := ReadLine(&out, strings.NewReader(""), "Host", "localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", got)
	assert.Equal(t, "Host [localhost]: ", out.String())
}

func TestClearPreviousLines(t *testing.T) {
	var out bytes.Buffer
	ClearPreviousLines(&out, 10)
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", out.String())
}
