package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/giantswarm/memsearch-probe/internal/transport"
)

const (
	separatorWidth = 80
	previewWidth   = 70
)

// printer writes the human-readable run report. Styles only add color when
// the writer is a terminal.
type printer struct {
	w     io.Writer
	ok    lipgloss.Style
	fail  lipgloss.Style
	faint lipgloss.Style
	bold  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	re := lipgloss.NewRenderer(w)
	return &printer{
		w:     w,
		ok:    re.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  re.NewStyle().Foreground(lipgloss.Color("1")),
		faint: re.NewStyle().Faint(true),
		bold:  re.NewStyle().Bold(true),
	}
}

func (p *printer) separator() {
	fmt.Fprintln(p.w, p.faint.Render(strings.Repeat("-", separatorWidth)))
}

func (p *printer) header(opts Options) {
	fmt.Fprintf(p.w, "Testing gRPC endpoint at %s\n", opts.Address)
	fmt.Fprintf(p.w, "Service: %s\n", opts.Service)
	fmt.Fprintf(p.w, "Sending %d queries with user_id='%s'\n", opts.NumQueries, opts.Context.UserID)
	fmt.Fprintf(p.w, "Query type: %s\n", opts.Shape)
	if opts.Seed != nil {
		fmt.Fprintf(p.w, "Random seed: %d\n", *opts.Seed)
	}
	p.separator()
}

func (p *printer) result(idx, total int, r transport.Result) {
	fmt.Fprintf(p.w, "[%d/%d] %s\n", idx, total, p.formatResult(r))
}

// formatResult renders the one-line outcome of an invocation.
func (p *printer) formatResult(r transport.Result) string {
	if !r.Success {
		return fmt.Sprintf("%s Query: '%s' | Error: %s", p.fail.Render("❌"), r.Query, r.Error)
	}
	return fmt.Sprintf("%s Query: '%s' | Found %d memories", p.ok.Render("✓"), r.Query, r.MemoryCount)
}

func (p *printer) previews(summaries []string) {
	for _, s := range summaries {
		fmt.Fprintf(p.w, "    └─ %s\n", truncate(s, previewWidth))
	}
}

func (p *printer) footer(s *Summary) {
	p.separator()
	fmt.Fprintf(p.w, "%s %d successful, %d failed\n", p.bold.Render("Results:"), s.Successful, s.Failed)
	if s.Latency.Count > 0 {
		fmt.Fprintf(p.w, "Latency: p50=%.1fms p99=%.1fms max=%.1fms\n", s.Latency.P50Ms, s.Latency.P99Ms, s.Latency.MaxMs)
	}
	if s.Seed != nil {
		fmt.Fprintf(p.w, "To reproduce these results, use: --seed %d\n", *s.Seed)
	}
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
