package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE(t *testing.T) {
	cause := stderrors.New("file not found")
	err := Wrap(ConfigInvalid, "read config", cause)

	assert.Equal(t, "config_invalid: read config: file not found", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "missing_dataset: no dataset selected", New(MissingDataset, "no dataset selected").Error())
}
