package report

import (
	"io"
	"slices"
	"strconv"

	"github.com/nao1215/geotags/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs the extraction as a Markdown document: a summary
// table, the coordinates table and, when files were skipped, a mermaid pie
// chart of the skip reasons.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the extraction in Markdown format.
func (w *MarkdownWriter) Write(ext *model.Extraction) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, ext)
	w.writeRecords(md, ext)
	w.writeSkips(md, ext)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run summary.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, ext *model.Extraction) {
	md.H1("Geotags")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + ext.Root + "`"},
			{"Scanned", strconv.Itoa(ext.Scanned)},
			{"Records", strconv.Itoa(len(ext.Records))},
			{"Skipped", strconv.Itoa(len(ext.Skipped))},
		},
	})
	md.PlainText("")
}

// writeRecords writes the coordinates table.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, ext *model.Extraction) {
	md.H2("Coordinates")
	md.PlainText("")

	if len(ext.Records) == 0 {
		md.PlainText("No geotagged images found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(ext.Records))
	for i, r := range ext.Records {
		rows[i] = []string{
			r.Subfolder,
			r.FileName,
			FormatFloat(r.Latitude),
			FormatFloat(r.Longitude),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Subfolder", "File", "Latitude", "Longitude"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSkips writes the skip reason distribution.
func (w *MarkdownWriter) writeSkips(md *markdown.Markdown, ext *model.Extraction) {
	if len(ext.Skipped) == 0 {
		return
	}

	md.H2("Skipped Files")
	md.PlainText("")

	counts := ext.SkipCounts()
	reasons := make([]model.SkipReason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Skip Reasons"),
		piechart.WithShowData(true),
	)
	rows := make([][]string, len(reasons))
	for i, r := range reasons {
		chart.LabelAndIntValue(r.String(), uint64(counts[r])) //nolint:gosec // counts are non-negative
		rows[i] = []string{r.String(), strconv.Itoa(counts[r])}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
