package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// locationKeys contains attribute keys whose values are coarsened.
var locationKeys = map[string]bool{
	"latitude":  true,
	"longitude": true,
	"lat":       true,
	"lon":       true,
}

// Precision is the number of decimal places kept for location values.
const Precision = 2

// LocationHandler wraps an slog.Handler to coarsen location attributes.
// It intercepts log records and rounds the values of location keys before
// passing them to the underlying handler.
type LocationHandler struct {
	// handler is the underlying slog handler that receives coarsened records.
	handler slog.Handler
}

// NewLocationHandler creates a new LocationHandler wrapping the given handler.
// If handler is nil, the returned LocationHandler will use slog.Default().Handler().
func NewLocationHandler(handler slog.Handler) *LocationHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &LocationHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *LocationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle coarsens the record's attributes and passes it to the underlying handler.
func (h *LocationHandler) Handle(ctx context.Context, r slog.Record) error {
	coarse := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		coarse.AddAttrs(coarsenAttr(a))
		return true
	})

	return h.handler.Handle(ctx, coarse)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are coarsened before being added.
func (h *LocationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	coarse := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		coarse[i] = coarsenAttr(a)
	}
	return &LocationHandler{handler: h.handler.WithAttrs(coarse)}
}

// WithGroup returns a new handler with the given group name.
func (h *LocationHandler) WithGroup(name string) slog.Handler {
	return &LocationHandler{handler: h.handler.WithGroup(name)}
}

// coarsenAttr coarsens a single attribute, recursively handling groups.
func coarsenAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		coarse := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			coarse[i] = coarsenAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(coarse...)}
	}

	if !locationKeys[strings.ToLower(a.Key)] {
		return a
	}

	switch a.Value.Kind() {
	case slog.KindFloat64:
		return slog.Float64(a.Key, Round(a.Value.Float64()))
	case slog.KindString:
		v, err := strconv.ParseFloat(strings.TrimSpace(a.Value.String()), 64)
		if err != nil {
			return a
		}
		return slog.String(a.Key, strconv.FormatFloat(Round(v), 'f', Precision, 64))
	default:
		return a
	}
}

// Round rounds v to Precision decimal places. NaN and infinities are
// returned unchanged.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, Precision)
	return math.Round(v*scale) / scale
}

// NewLogger creates a new slog.Logger with location coarsening.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewLocationHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger with location coarsening
// that outputs JSON format.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewLocationHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
