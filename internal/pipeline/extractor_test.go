package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/nao1215/geotags/internal/log"
	"github.com/nao1215/geotags/internal/metadata"
	"github.com/nao1215/geotags/internal/metadata/metadatatest"
	"github.com/nao1215/geotags/internal/model"
	"github.com/nao1215/geotags/internal/walker"
	"github.com/nao1215/geotags/internal/walker/walkertest"
)

// newTree creates an in-memory filesystem holding the given files.
func newTree(t *testing.T, files map[string][]byte) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	if err := fs.MkdirAll("photos", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for name, data := range files {
		p := filepath.Join("photos", name)
		if err := fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := util.WriteFile(fs, p, data, 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return fs
}

func run(t *testing.T, fs billy.Filesystem, opts ...ExtractorOption) *model.Extraction {
	t.Helper()

	ext, err := NewExtractor(fs, "photos", opts...).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return ext
}

// TestExtractorRun covers the basic good/bad split.
func TestExtractorRun(t *testing.T) {
	t.Parallel()

	t.Run("records good.jpg and skips bad.jpg", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{
			"good.jpg": metadatatest.JPEG(metadatatest.Portland()),
			"bad.jpg":  metadatatest.Truncated(),
		})

		ext := run(t, fs)

		want := []model.ImageRecord{model.NewImageRecord(".", "good.jpg", 45.0, 122.0)}
		if !reflect.DeepEqual(ext.Records, want) {
			t.Errorf("expected %v, got %v", want, ext.Records)
		}
		if ext.Scanned != 2 {
			t.Errorf("expected 2 scanned, got %d", ext.Scanned)
		}
		if len(ext.Skipped) != 1 || ext.Skipped[0].FileName != "bad.jpg" {
			t.Fatalf("expected bad.jpg to be skipped, got %v", ext.Skipped)
		}
		if ext.Skipped[0].Reason != model.SkipNotImage {
			t.Errorf("expected reason %s, got %s", model.SkipNotImage, ext.Skipped[0].Reason)
		}
	})

	t.Run("classifies every skip reason", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{
			"a_noexif.jpg":  metadatatest.JPEGWithoutExif(),
			"b_nogps.jpg":   metadatatest.JPEGWithoutGPS(),
			"c_nolon.jpg":   metadatatest.JPEG(metadatatest.GPS{Latitude: metadatatest.DMS(45, 0, 0)}),
			"d_text.png":    []byte("definitely not a png"),
			"e_ok.png":      metadatatest.PNG(metadatatest.Portland()),
			"f_notes.txt":   []byte("ignored"),
			"sub/g_ok.JPEG": metadatatest.JPEG(metadatatest.Portland()),
		})

		ext := run(t, fs)

		if ext.Scanned != 6 {
			t.Errorf("expected 6 scanned, got %d", ext.Scanned)
		}

		wantRecords := []model.ImageRecord{
			model.NewImageRecord(".", "e_ok.png", 45.0, 122.0),
			model.NewImageRecord("sub", "g_ok.JPEG", 45.0, 122.0),
		}
		if !reflect.DeepEqual(ext.Records, wantRecords) {
			t.Errorf("expected %v, got %v", wantRecords, ext.Records)
		}

		wantReasons := map[string]model.SkipReason{
			"a_noexif.jpg": model.SkipNoMetadata,
			"b_nogps.jpg":  model.SkipNoPositionalData,
			"c_nolon.jpg":  model.SkipMissingCoordinates,
			"d_text.png":   model.SkipNotImage,
		}
		if len(ext.Skipped) != len(wantReasons) {
			t.Fatalf("expected %d skips, got %v", len(wantReasons), ext.Skipped)
		}
		for _, s := range ext.Skipped {
			if want := wantReasons[s.FileName]; s.Reason != want {
				t.Errorf("%s: expected reason %s, got %s (%v)", s.FileName, want, s.Reason, s.Err)
			}
		}
	})

	t.Run("hemisphere is not applied by default", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{"x.jpg": metadatatest.JPEG(metadatatest.Portland())})
		ext := run(t, fs)

		if len(ext.Records) != 1 || ext.Records[0].Longitude != 122.0 {
			t.Errorf("expected unsigned longitude 122.0, got %v", ext.Records)
		}
	})

	t.Run("hemisphere opt-in negates west longitude", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{"x.jpg": metadatatest.JPEG(metadatatest.Portland())})
		ext := run(t, fs, WithApplyHemisphere(true))

		want := []model.ImageRecord{model.NewImageRecord(".", "x.jpg", 45.0, -122.0)}
		if !reflect.DeepEqual(ext.Records, want) {
			t.Errorf("expected %v, got %v", want, ext.Records)
		}
	})

	t.Run("fractional seconds convert", func(t *testing.T) {
		t.Parallel()

		g := metadatatest.GPS{
			Latitude: []exifcommon.Rational{
				{Numerator: 45, Denominator: 1},
				{Numerator: 30, Denominator: 1},
				{Numerator: 1800, Denominator: 100},
			},
			Longitude: metadatatest.DMS(122, 0, 36),
		}
		fs := newTree(t, map[string][]byte{"x.jpg": metadatatest.JPEG(g)})
		ext := run(t, fs)

		if len(ext.Records) != 1 {
			t.Fatalf("expected 1 record, got %v", ext.Skipped)
		}
		r := ext.Records[0]
		if math.Abs(r.Latitude-45.505) > 1e-9 {
			t.Errorf("unexpected latitude %v", r.Latitude)
		}
		if math.Abs(r.Longitude-122.01) > 1e-9 {
			t.Errorf("unexpected longitude %v", r.Longitude)
		}
	})

	t.Run("ignore-case filter accepts mixed casing", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{"x.Jpg": metadatatest.JPEG(metadatatest.Portland())})

		if ext := run(t, fs); ext.Scanned != 0 {
			t.Errorf("expected x.Jpg to be excluded by default, got %d scanned", ext.Scanned)
		}

		ext := run(t, fs, WithFilter(walker.NewFilter(nil, true)))
		if len(ext.Records) != 1 || ext.Records[0].FileName != "x.Jpg" {
			t.Errorf("expected x.Jpg to be recorded, got %v", ext.Records)
		}
	})

	t.Run("empty tree yields no records", func(t *testing.T) {
		t.Parallel()

		ext := run(t, newTree(t, nil))
		if ext.Scanned != 0 || len(ext.Records) != 0 {
			t.Errorf("expected empty extraction, got %+v", ext)
		}
	})

	t.Run("repeated runs are identical", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{
			"a.jpg":     metadatatest.JPEG(metadatatest.Portland()),
			"b/c.png":   metadatatest.PNG(metadatatest.Portland()),
			"b/d/e.JPG": metadatatest.JPEG(metadatatest.Portland()),
		})

		first := run(t, fs)
		second := run(t, fs)
		if !reflect.DeepEqual(first.Records, second.Records) {
			t.Errorf("runs differ: %v vs %v", first.Records, second.Records)
		}
	})
}

// TestExtractorRunErrors covers run-level failures.
func TestExtractorRunErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing root returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewExtractor(memfs.New(), "nope").Run(context.Background())
		if err == nil {
			t.Fatal("expected error for missing root")
		}
	})

	t.Run("missing root returns error with workers", func(t *testing.T) {
		t.Parallel()

		_, err := NewExtractor(memfs.New(), "nope", WithWorkers(4)).Run(context.Background())
		if err == nil {
			t.Fatal("expected error for missing root")
		}
	})

	t.Run("unlistable directory ends the run after earlier files", func(t *testing.T) {
		t.Parallel()

		fs := walkertest.Unlistable(newTree(t, map[string][]byte{
			"a.jpg":     metadatatest.JPEG(metadatatest.Portland()),
			"sub/b.jpg": metadatatest.JPEG(metadatatest.Portland()),
		}), "photos/sub")

		ext, err := NewExtractor(fs, "photos").Run(context.Background())
		if !errors.Is(err, os.ErrPermission) {
			t.Fatalf("expected permission error, got %v", err)
		}
		if ext == nil || ext.Scanned != 1 || len(ext.Records) != 1 {
			t.Fatalf("expected a.jpg to be processed before the failure, got %+v", ext)
		}
		if ext.Records[0].FileName != "a.jpg" {
			t.Errorf("expected a.jpg, got %+v", ext.Records[0])
		}
	})

	t.Run("unlistable directory ends the run with workers", func(t *testing.T) {
		t.Parallel()

		fs := walkertest.Unlistable(newTree(t, map[string][]byte{
			"a.jpg":     metadatatest.JPEG(metadatatest.Portland()),
			"sub/b.jpg": metadatatest.JPEG(metadatatest.Portland()),
		}), "photos/sub")

		ext, err := NewExtractor(fs, "photos", WithWorkers(4)).Run(context.Background())
		if !errors.Is(err, os.ErrPermission) {
			t.Fatalf("expected permission error, got %v", err)
		}
		if ext == nil || len(ext.Records) != 0 {
			t.Errorf("expected no records before processing starts, got %+v", ext)
		}
	})

	t.Run("cancelled context stops the run", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{"a.jpg": metadatatest.JPEG(metadatatest.Portland())})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		for _, workers := range []int{1, 3} {
			ext, err := NewExtractor(fs, "photos", WithWorkers(workers)).Run(ctx)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("workers=%d: expected context.Canceled, got %v", workers, err)
			}
			if ext == nil || len(ext.Records) != 0 {
				t.Errorf("workers=%d: expected no records, got %+v", workers, ext)
			}
		}
	})
}

// TestExtractorWorkers checks that concurrency does not change the output.
func TestExtractorWorkers(t *testing.T) {
	t.Parallel()

	files := make(map[string][]byte)
	for i := range 24 {
		name := fmt.Sprintf("dir%d/img%02d.jpg", i%3, i)
		switch i % 4 {
		case 0:
			files[name] = metadatatest.Truncated()
		case 1:
			files[name] = metadatatest.JPEGWithoutGPS()
		default:
			files[name] = metadatatest.JPEG(metadatatest.GPS{
				Latitude:  metadatatest.DMS(uint32(i), 0, 0),
				Longitude: metadatatest.DMS(uint32(100+i), 0, 0),
			})
		}
	}
	fs := newTree(t, files)

	sequential := run(t, fs, WithWorkers(1))
	concurrent := run(t, fs, WithWorkers(4))

	if !reflect.DeepEqual(sequential.Records, concurrent.Records) {
		t.Errorf("records differ:\n%v\n%v", sequential.Records, concurrent.Records)
	}
	if len(sequential.Records) != 12 {
		t.Errorf("expected 12 records, got %d", len(sequential.Records))
	}
	if sequential.Scanned != concurrent.Scanned {
		t.Errorf("scanned differ: %d vs %d", sequential.Scanned, concurrent.Scanned)
	}
	if !reflect.DeepEqual(sequential.SkipCounts(), concurrent.SkipCounts()) {
		t.Errorf("skip counts differ: %v vs %v", sequential.SkipCounts(), concurrent.SkipCounts())
	}
}

// TestExtractorProcess covers single-file edge cases.
func TestExtractorProcess(t *testing.T) {
	t.Parallel()

	c := walker.Candidate{Dir: "photos", Name: "a.jpg", Subfolder: "."}

	t.Run("panic inside a step becomes a skip", func(t *testing.T) {
		t.Parallel()

		panicky := &mockStep{name: "panicky", doFunc: func(context.Context, *File) error {
			panic("corrupt IFD")
		}}
		e := NewExtractor(memfs.New(), "photos", WithSteps(panicky))

		out := e.Process(context.Background(), c)
		if out.OK() || out.Skip == nil {
			t.Fatalf("expected a skip, got %+v", out)
		}
		if out.Skip.Reason != model.SkipMalformedValue {
			t.Errorf("expected %s, got %s", model.SkipMalformedValue, out.Skip.Reason)
		}
		if !errors.Is(out.Skip.Err, errPanic) {
			t.Errorf("expected errPanic, got %v", out.Skip.Err)
		}
	})

	t.Run("missing file becomes an open skip", func(t *testing.T) {
		t.Parallel()

		out := NewExtractor(memfs.New(), "photos").Process(context.Background(), c)
		if out.Skip == nil || out.Skip.Reason != model.SkipOpen {
			t.Errorf("expected open skip, got %+v", out)
		}
	})

	t.Run("non-numeric coordinates become a malformed skip", func(t *testing.T) {
		t.Parallel()

		inject := &mockStep{name: "inject", doFunc: func(_ context.Context, f *File) error {
			f.Fields = metadata.GeoFields{
				metadata.FieldLatitude:  "north-ish",
				metadata.FieldLongitude: metadatatest.DMS(1, 0, 0),
			}
			return nil
		}}
		e := NewExtractor(memfs.New(), "photos", WithSteps(inject, NewCoordinatesStep()))

		out := e.Process(context.Background(), c)
		if out.Skip == nil || out.Skip.Reason != model.SkipMalformedValue {
			t.Errorf("expected malformed skip, got %+v", out)
		}
	})

	t.Run("steps without a record become a skip", func(t *testing.T) {
		t.Parallel()

		e := NewExtractor(memfs.New(), "photos", WithSteps(&mockStep{name: "noop"}))
		out := e.Process(context.Background(), c)
		if out.Skip == nil || out.Skip.Reason != model.SkipMissingCoordinates {
			t.Errorf("expected missing-coordinates skip, got %+v", out)
		}
	})

	t.Run("skips and records are logged with coarse positions", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{
			"good.jpg": metadatatest.JPEG(metadatatest.GPS{
				Latitude:  metadatatest.DMS(45, 31, 23),
				Longitude: metadatatest.DMS(122, 40, 35),
			}),
			"bad.jpg": metadatatest.Truncated(),
		})

		var buf bytes.Buffer
		run(t, fs, WithExtractorLogger(log.NewLogger(&buf, true)))

		output := buf.String()
		if !strings.Contains(output, "skipped file") || !strings.Contains(output, "reason=not-image") {
			t.Errorf("expected skip to be logged: %s", output)
		}
		if !strings.Contains(output, "latitude=45.52") {
			t.Errorf("expected coarsened latitude in log: %s", output)
		}
	})
}

// TestExtractorDisplayRoot tests the root name used in logs and results.
func TestExtractorDisplayRoot(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the walk root", func(t *testing.T) {
		t.Parallel()

		ext := run(t, newTree(t, nil))
		if ext.Root != "photos" {
			t.Errorf("expected root photos, got %q", ext.Root)
		}
	})

	t.Run("display root is reported", func(t *testing.T) {
		t.Parallel()

		fs := newTree(t, map[string][]byte{"a.jpg": metadatatest.JPEG(metadatatest.Portland())})

		var buf bytes.Buffer
		ext := run(t, fs,
			WithDisplayRoot("/data/photos"),
			WithExtractorLogger(log.NewLogger(&buf, true)),
		)

		if ext.Root != "/data/photos" {
			t.Errorf("expected root /data/photos, got %q", ext.Root)
		}
		output := buf.String()
		if !strings.Contains(output, "root=/data/photos") {
			t.Errorf("expected display root in log: %s", output)
		}
		if strings.Contains(output, "root=photos") {
			t.Errorf("did not expect walk root in log: %s", output)
		}
	})
}

// TestReason tests error classification.
func TestReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want model.SkipReason
	}{
		{name: "open", err: fmt.Errorf("%w: denied", ErrOpen), want: model.SkipOpen},
		{name: "not image", err: metadata.ErrNotImage, want: model.SkipNotImage},
		{name: "no metadata", err: metadata.ErrNoMetadata, want: model.SkipNoMetadata},
		{name: "no gps", err: metadata.ErrNoPositionalData, want: model.SkipNoPositionalData},
		{name: "missing coordinates", err: ErrMissingCoordinates, want: model.SkipMissingCoordinates},
		{name: "malformed gps", err: metadata.ErrMalformedPositionalData, want: model.SkipMalformedValue},
		{name: "unknown", err: errors.New("other"), want: model.SkipMalformedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("Reason(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}
