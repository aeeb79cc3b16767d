// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"context"
	"time"
)

// DefaultPollInterval is used by WaitTask when interval is not positive.
const DefaultPollInterval = time.Second

// WaitTask polls a task until it reports a finishPoint and returns its final
// description. The onPoll callback, when non-nil, sees every intermediate state.
func (c *AdminClient) WaitTask(ctx context.Context, id string, interval time.Duration, onPoll func(Document)) (Document, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		task, err := c.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		if onPoll != nil {
			onPoll(task)
		}
		if task.Finished() {
			return task, nil
		}
		select {
		case <-ctx.Done():
			return nil, wrapError(KindConnection, ctx.Err())
		case <-ticker.C:
		}
	}
}
