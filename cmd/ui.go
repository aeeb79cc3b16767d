// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	"fuseki-manager/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// statusSpinner animates a one-line status in a pterm area while a task runs.
// Outside a terminal it prints nothing; callers log progress instead.
type statusSpinner struct {
	mu   sync.Mutex
	text string

	area *pterm.AreaPrinter
	stop chan struct{}
	wg   sync.WaitGroup
}

// startStatusSpinner hides the cursor and starts the animation.
func startStatusSpinner(text string) *statusSpinner {
	s := &statusSpinner{text: text, stop: make(chan struct{})}
	if !terminal.IsInteractive() {
		return s
	}
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return s
	}
	s.area = area
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				i++
				s.mu.Lock()
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], s.text))
				s.mu.Unlock()
			case <-s.stop:
				return
			}
		}
	}()
	return s
}

// Update replaces the status text.
func (s *statusSpinner) Update(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Stop removes the spinner line and shows the cursor again.
func (s *statusSpinner) Stop() {
	if s.area == nil {
		return
	}
	close(s.stop)
	s.wg.Wait()
	_ = s.area.Stop()
	s.area = nil
	cursor.Show()
}
