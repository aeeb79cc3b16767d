// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordLifecycle(t *testing.T) {
	m := NewManagerWithRing(keyring.NewArrayKeyring(nil))

	_, err := m.LoadPassword("default")
	assert.ErrorIs(t, err, ErrNoPassword)

	require.NoError(t, m.SavePassword("default", "s3cret"))
	require.NoError(t, m.SavePassword("prod", "other"))

	pw, err := m.LoadPassword("default")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	require.NoError(t, m.DeletePassword("default"))
	_, err = m.LoadPassword("default")
	assert.ErrorIs(t, err, ErrNoPassword)

	pw, err = m.LoadPassword("prod")
	require.NoError(t, err)
	assert.Equal(t, "other", pw)

	assert.NoError(t, m.DeletePassword("never-saved"))
}
