package domain

import (
	"fmt"
	"sync"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one non-fatal problem found while parsing or resolving
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Source   string   `json:"source,omitempty"`
	Block    int      `json:"block,omitempty"`
	Line     int      `json:"line,omitempty"`
	Kind     string   `json:"kind"`
	Content  string   `json:"content,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	loc := sourceName(d.Source)
	if d.Block > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, d.Block, d.Line)
	}
	if d.Content != "" {
		return fmt.Sprintf("%s: %s: %s (%s): %q", loc, d.Severity, d.Message, d.Kind, d.Content)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", loc, d.Severity, d.Message, d.Kind)
}

// Diagnostics collects diagnostics for a session
type Diagnostics struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Add records a diagnostic
func (d *Diagnostics) Add(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, diag)
}

// All returns a copy of every recorded diagnostic
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

// Len returns the number of recorded diagnostics
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Reset drops every recorded diagnostic
func (d *Diagnostics) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = nil
}
