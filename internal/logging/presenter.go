// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"

	"fuseki-manager/pkg/fuseki"
)

// PresentError formats an error for user display with masking. Server
// responses are prefixed with their HTTP status.
func PresentError(action string, err error) string {
	if err == nil {
		return ""
	}
	var fe *fuseki.Error
	if errors.As(err, &fe) && fe.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", action, fe.StatusCode, Mask(err.Error()))
	}
	return fmt.Sprintf("%s: %s", action, Mask(err.Error()))
}
