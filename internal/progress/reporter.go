// Package progress reports static export progress, as a bar on a terminal
// and as plain lines anywhere else.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter receives export progress. Begin is called once with the page
// count, PageDone once per exported page, End once with the final count.
type Reporter interface {
	Begin(pages int)
	PageDone(link string)
	End(written int, elapsed time.Duration)
}

// For picks a reporter for f: a progress bar when f is an interactive
// terminal, line output when it is not or when running under CI.
func For(f *os.File) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" || !term.IsTerminal(int(f.Fd())) {
		return NewLineReporter(f)
	}
	return &BarReporter{w: f}
}

// BarReporter draws a progress bar labelled with the page being exported.
type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Begin(pages int) {
	r.bar = progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("export"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) PageDone(link string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(link)
	_ = r.bar.Add(1)
}

func (r *BarReporter) End(written int, elapsed time.Duration) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(r.w, "export: wrote %d pages in %s\n", written, elapsed.Round(time.Millisecond))
}

// LineReporter writes one line per page, suitable for logs.
type LineReporter struct {
	w     io.Writer
	pages int
	done  int
}

// NewLineReporter creates a LineReporter writing to w.
func NewLineReporter(w io.Writer) *LineReporter {
	return &LineReporter{w: w}
}

func (r *LineReporter) Begin(pages int) {
	r.pages, r.done = pages, 0
	fmt.Fprintf(r.w, "export: %d pages\n", pages)
}

func (r *LineReporter) PageDone(link string) {
	r.done++
	fmt.Fprintf(r.w, "  [%d/%d] %s\n", r.done, r.pages, link)
}

func (r *LineReporter) End(written int, elapsed time.Duration) {
	fmt.Fprintf(r.w, "export: wrote %d pages in %s\n", written, elapsed.Round(time.Millisecond))
}
