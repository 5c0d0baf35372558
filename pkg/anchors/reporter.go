package anchors

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorage/pkg/errors"
)

// Diagnostic is a non-fatal message about one item's anchors: a rejected
// binding or a detected anchor loop.
type Diagnostic struct {
	ItemID  string      `json:"item"`    // owner of the anchor set that reported
	Code    errors.Code `json:"code"`    // machine-readable category
	Message string      `json:"message"` // human-readable text
}

// String returns "<item>: <message>".
func (d Diagnostic) String() string {
	return d.ItemID + ": " + d.Message
}

// Reporter is the diagnostic sink used by anchor sets.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// LogReporter returns a Reporter that logs each diagnostic at warn level.
// A nil logger uses log.Default().
func LogReporter(l *log.Logger) Reporter {
	if l == nil {
		l = log.Default()
	}
	return ReporterFunc(func(d Diagnostic) {
		l.Warn(d.Message, "item", d.ItemID, "code", d.Code)
	})
}

// Tee returns a Reporter that forwards every diagnostic to each non-nil reporter.
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range reporters {
			if r != nil {
				r.Report(d)
			}
		}
	})
}

// Collector records diagnostics in arrival order. It is safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Count returns how many recorded diagnostics carry code.
func (c *Collector) Count(code errors.Code) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}

// Reset discards all recorded diagnostics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = nil
}
