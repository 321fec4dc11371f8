package model

import "time"

// Extraction is the accumulated result of one scan over a directory tree.
// Records and Skipped are kept in discovery order.
type Extraction struct {
	// Root is the scan root as given by the user.
	Root string `json:"root"`

	// Records holds one entry per geotagged image.
	Records []ImageRecord `json:"records"`

	// Skipped holds candidate files that produced no record.
	Skipped []Skip `json:"skipped,omitempty"`

	// Scanned is the number of candidate image files considered.
	Scanned int `json:"scanned"`

	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// NewExtraction creates an empty Extraction for the given root.
func NewExtraction(root string) *Extraction {
	return &Extraction{
		Root:      root,
		Records:   make([]ImageRecord, 0),
		Skipped:   make([]Skip, 0),
		StartedAt: time.Now(),
	}
}

// Add appends an outcome to the extraction.
func (e *Extraction) Add(o Outcome) {
	e.Scanned++
	switch {
	case o.Record != nil:
		e.Records = append(e.Records, *o.Record)
	case o.Skip != nil:
		e.Skipped = append(e.Skipped, *o.Skip)
	}
}

// SkipCounts returns the number of skipped files per reason.
func (e *Extraction) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, s := range e.Skipped {
		counts[s.Reason]++
	}
	return counts
}
