package report

import (
	"encoding/csv"
	"io"

	"github.com/nao1215/geotags/internal/model"
)

// CSVHeader is the fixed first row of every coordinates file.
var CSVHeader = []string{"subfolder", "file_name", "latitude", "longitude"}

// CSVWriter outputs one row per record after the fixed header.
// Fields are quoted by encoding/csv rules and lines end with "\r\n".
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the header and the records in order.
func (w *CSVWriter) Write(ext *model.Extraction) (int, error) {
	cw := &countingWriter{w: w.output}
	out := csv.NewWriter(cw)
	out.UseCRLF = true

	if err := out.Write(CSVHeader); err != nil {
		return cw.n, err
	}
	for _, r := range ext.Records {
		row := []string{
			r.Subfolder,
			r.FileName,
			FormatFloat(r.Latitude),
			FormatFloat(r.Longitude),
		}
		if err := out.Write(row); err != nil {
			return cw.n, err
		}
	}

	out.Flush()
	return cw.n, out.Error()
}
