package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows how far a component check has got and how many targets
// failed so far.
type Reporter interface {
	Start(total int)
	// Update marks target as checked. A nil err means it loaded.
	Update(current int, target string, err error)
	Finish()
	Failures() int
}

// NewReporter returns a CIReporter when running under CI and a
// TerminalReporter otherwise. Both write to w.
func NewReporter(w io.Writer, description string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{out: w, description: description}
	}
	return &TerminalReporter{out: w, description: description}
}

// TerminalReporter draws a progress bar whose label carries the failure count.
type TerminalReporter struct {
	out         io.Writer
	description string
	bar         *progressbar.ProgressBar
	failed      int
}

func (r *TerminalReporter) Start(total int) {
	r.failed = 0
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(r.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, target string, err error) {
	if err != nil {
		r.failed++
	}
	if r.bar == nil {
		return
	}
	label := fmt.Sprintf("%s %s", r.description, target)
	if r.failed > 0 {
		label = fmt.Sprintf("%s (%d failed)", label, r.failed)
	}
	r.bar.Describe(label)
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

func (r *TerminalReporter) Failures() int { return r.failed }

// CIReporter prints one line per target, suitable for CI logs.
type CIReporter struct {
	out         io.Writer
	description string
	total       int
	failed      int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	r.failed = 0
	fmt.Fprintf(r.out, "%s: %d targets\n", r.description, total)
}

func (r *CIReporter) Update(current int, target string, err error) {
	status := "ok"
	if err != nil {
		r.failed++
		status = "FAIL"
	}
	fmt.Fprintf(r.out, "[%d/%d] %-4s %s\n", current, r.total, status, target)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.out, "%s: %d of %d failed\n", r.description, r.failed, r.total)
}

func (r *CIReporter) Failures() int { return r.failed }
