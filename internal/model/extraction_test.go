package model

import (
	"errors"
	"testing"
)

// TestExtractionAdd tests accumulation of outcomes.
func TestExtractionAdd(t *testing.T) {
	t.Parallel()

	t.Run("records and skips keep discovery order", func(t *testing.T) {
		t.Parallel()

		e := NewExtraction("/photos")
		e.Add(Recorded(NewImageRecord(".", "a.jpg", 1, 2)))
		e.Add(Skipped(NewSkip(".", "b.jpg", SkipNotImage, errors.New("bad header"))))
		e.Add(Recorded(NewImageRecord("sub", "c.jpg", 3, 4)))

		if e.Scanned != 3 {
			t.Errorf("expected 3 scanned, got %d", e.Scanned)
		}
		if len(e.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(e.Records))
		}
		if e.Records[0].FileName != "a.jpg" || e.Records[1].FileName != "c.jpg" {
			t.Errorf("unexpected record order: %+v", e.Records)
		}
		if len(e.Skipped) != 1 || e.Skipped[0].FileName != "b.jpg" {
			t.Errorf("unexpected skips: %+v", e.Skipped)
		}
	})

	t.Run("empty outcome only counts", func(t *testing.T) {
		t.Parallel()

		e := NewExtraction(".")
		e.Add(Outcome{})

		if e.Scanned != 1 || len(e.Records) != 0 || len(e.Skipped) != 0 {
			t.Errorf("unexpected extraction state: %+v", e)
		}
	})
}

// TestExtractionSkipCounts tests grouping skips by reason.
func TestExtractionSkipCounts(t *testing.T) {
	t.Parallel()

	e := NewExtraction(".")
	e.Add(Skipped(NewSkip(".", "a.jpg", SkipNoMetadata, nil)))
	e.Add(Skipped(NewSkip(".", "b.jpg", SkipNoMetadata, nil)))
	e.Add(Skipped(NewSkip(".", "c.png", SkipNoPositionalData, nil)))

	counts := e.SkipCounts()
	if counts[SkipNoMetadata] != 2 {
		t.Errorf("expected 2 no-metadata skips, got %d", counts[SkipNoMetadata])
	}
	if counts[SkipNoPositionalData] != 1 {
		t.Errorf("expected 1 no-positional-data skip, got %d", counts[SkipNoPositionalData])
	}
}

// TestSkip tests Skip construction helpers.
func TestSkip(t *testing.T) {
	t.Parallel()

	t.Run("message mirrors error", func(t *testing.T) {
		t.Parallel()

		s := NewSkip("sub", "x.jpg", SkipOpen, errors.New("permission denied"))
		if s.Message != "permission denied" {
			t.Errorf("expected message to mirror error, got %q", s.Message)
		}
		if s.Path() != "sub/x.jpg" {
			t.Errorf("expected path sub/x.jpg, got %q", s.Path())
		}
	})

	t.Run("root level path drops dot", func(t *testing.T) {
		t.Parallel()

		s := NewSkip(".", "x.jpg", SkipOpen, nil)
		if s.Path() != "x.jpg" {
			t.Errorf("expected path x.jpg, got %q", s.Path())
		}
		if s.Message != "" {
			t.Errorf("expected empty message, got %q", s.Message)
		}
	})
}

// TestOutcome tests the Outcome constructors.
func TestOutcome(t *testing.T) {
	t.Parallel()

	if !Recorded(ImageRecord{}).OK() {
		t.Error("expected recorded outcome to be OK")
	}
	if Skipped(Skip{}).OK() {
		t.Error("expected skipped outcome not to be OK")
	}
}
