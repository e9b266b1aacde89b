// Package log provides a small terminal progress indicator for the replay
// CLI's bar-by-bar walk-forward loop — not the structured event log (that's
// internal/smc/obs, which wraps zerolog directly).
package log

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressIndicator renders a spinner plus an optional progress bar for a
// long-running, bounded loop (replaying N bars through the pipeline).
type ProgressIndicator struct {
	mu           sync.Mutex
	name         string
	total        int
	current      int
	startTime    time.Time
	spinner      *Spinner
	showSpinner  bool
	showProgress bool
}

// Spinner animates a small rotating glyph on its own goroutine.
type Spinner struct {
	chars    []string
	current  int
	interval time.Duration
	stop     chan bool
	running  bool
	mu       sync.Mutex
}

// ProgressConfig configures a ProgressIndicator's visual elements.
type ProgressConfig struct {
	ShowSpinner  bool
	ShowProgress bool
}

// NewProgressIndicator constructs and starts a progress indicator for a
// loop of `total` known steps (0 for an unbounded loop).
func NewProgressIndicator(name string, total int, config ProgressConfig) *ProgressIndicator {
	pi := &ProgressIndicator{
		name: name, total: total, startTime: time.Now(),
		showSpinner: config.ShowSpinner, showProgress: config.ShowProgress,
	}
	if config.ShowSpinner {
		pi.spinner = NewSpinner()
		pi.spinner.Start()
	}
	return pi
}

// NewSpinner builds a dots-style spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		chars:    []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 100 * time.Millisecond,
		stop:     make(chan bool, 1),
	}
}

// Start begins the spinner's animation goroutine.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.spin()
}

// Stop halts the spinner.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.stop <- true
}

func (s *Spinner) spin() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.current = (s.current + 1) % len(s.chars)
			s.mu.Unlock()
		}
	}
}

// Current returns the spinner's current glyph.
func (s *Spinner) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chars[s.current]
}

// Update advances progress to `current` and redraws the line.
func (pi *ProgressIndicator) Update(current int) {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	pi.current = current
	if pi.showProgress {
		pi.printProgress()
	}
}

// Finish stops the spinner and prints a completion summary.
func (pi *ProgressIndicator) Finish() {
	pi.mu.Lock()
	defer pi.mu.Unlock()
	if pi.spinner != nil {
		pi.spinner.Stop()
	}
	duration := time.Since(pi.startTime)
	fmt.Printf("\rdone: %s (%d bars, %v)\n", pi.name, pi.total, duration.Round(time.Millisecond))
}

func (pi *ProgressIndicator) printProgress() {
	var out strings.Builder
	out.WriteString("\r\033[K")
	if pi.spinner != nil && pi.showSpinner {
		out.WriteString(pi.spinner.Current())
		out.WriteString(" ")
	}
	out.WriteString(pi.name)
	if pi.total > 0 {
		pct := float64(pi.current) / float64(pi.total) * 100
		out.WriteString(fmt.Sprintf(" %d/%d (%.1f%%)", pi.current, pi.total, pct))
	}
	fmt.Print(out.String())
}

// DefaultProgressConfig shows both the spinner and the bar.
func DefaultProgressConfig() ProgressConfig {
	return ProgressConfig{ShowSpinner: true, ShowProgress: true}
}

// QuietProgressConfig disables all visual output (for non-TTY/CI runs).
func QuietProgressConfig() ProgressConfig {
	return ProgressConfig{ShowSpinner: false, ShowProgress: false}
}
