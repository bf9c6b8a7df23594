package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vhybzOS/vibe-search/internal/search"
	"github.com/vhybzOS/vibe-search/internal/store"
)

// Renderer writes human-readable search output.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, styles Styles) *Renderer {
	return &Renderer{out: out, styles: styles}
}

// Response prints a ranked result page.
func (r *Renderer) Response(resp *search.Response) {
	if resp.Total == 0 {
		fmt.Fprintf(r.out, "%s\n", r.styles.Dim.Render(
			fmt.Sprintf("no results for %q (%.1fms)", resp.Query, resp.TookMS)))
		return
	}

	fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render(
		fmt.Sprintf("%d result(s) for %q (%.1fms)", resp.Total, resp.Query, resp.TookMS)))

	for i, res := range resp.Results {
		r.result(i+1, res)
	}
}

func (r *Renderer) result(rank int, res search.Result) {
	doc := res.Document
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.Dim.Render(fmt.Sprintf("%d.", rank)),
		r.styles.ID.Render(doc.ID),
		r.styles.Score.Render(fmt.Sprintf("(%.2f)", res.Score)))

	fmt.Fprintf(r.out, "   %s\n", r.highlighted(doc.Content, res.Highlights))

	meta := []string{string(doc.DocType)}
	if doc.Metadata.Category != "" {
		meta = append(meta, doc.Metadata.Category)
	}
	if len(doc.Tags) > 0 {
		meta = append(meta, strings.Join(doc.Tags, ","))
	}
	meta = append(meta, time.UnixMilli(doc.Timestamp).Format("2006-01-02"))
	fmt.Fprintf(r.out, "   %s\n\n", r.styles.Meta.Render(strings.Join(meta, " | ")))
}

// highlighted re-emits content with matched spans styled. Spans are sorted
// and non-overlapping ranges are honored; overlaps collapse into the first.
func (r *Renderer) highlighted(content string, spans []search.Range) string {
	if len(spans) == 0 {
		return snippet(content)
	}

	var b strings.Builder
	pos := 0
	for _, span := range spans {
		if span.Start < pos || span.Start > len(content) || span.End > len(content) {
			continue
		}
		b.WriteString(content[pos:span.Start])
		b.WriteString(r.styles.Highlight.Render(content[span.Start:span.End]))
		pos = span.End
	}
	b.WriteString(content[pos:])
	return snippet(b.String())
}

// ProjectResponses prints fan-out results grouped per project.
func (r *Renderer) ProjectResponses(responses []ProjectPage) {
	for _, pr := range responses {
		fmt.Fprintf(r.out, "%s\n", r.styles.Header.Render(pr.ProjectPath))
		r.Response(pr.Response)
	}
}

// ProjectPage is one project's result page for multi-project rendering.
type ProjectPage struct {
	ProjectPath string
	Response    *search.Response
}

// Stats prints index statistics.
func (r *Renderer) Stats(projectPath string, stats store.IndexStats) {
	fmt.Fprintf(r.out, "%s\n", r.styles.Header.Render(projectPath))
	fmt.Fprintf(r.out, "  documents: %d\n", stats.DocumentCount)
	fmt.Fprintf(r.out, "  terms:     %d\n", stats.TermCount)
	fmt.Fprintf(r.out, "  avg terms: %.1f\n", stats.AvgTermsPerDoc)
}

// Error prints a formatted error line.
func (r *Renderer) Error(msg string) {
	fmt.Fprintf(r.out, "%s\n", r.styles.Error.Render(msg))
}

// snippet truncates long content for display.
func snippet(s string) string {
	const maxLen = 200
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
