package scanner

import (
	"context"
	"errors"
)

// Package scanner submits uploaded batches to the external malware scanning
// service and interprets its per-file verdicts.

// ErrUnavailable marks any failure of the scan call itself (connectivity,
// service error, malformed response). It is a different condition from an
// infected verdict: infected is a clean answer from a working scanner.
var ErrUnavailable = errors.New("scanner: scan service unavailable")

// File is one in-memory payload submitted for scanning.
type File struct {
	Name string
	Data []byte
}

// Verdict is the scanner's determination for one file. Verdicts are
// correlated to submitted files by position, never by filename: a batch may
// contain duplicate names.
type Verdict struct {
	Clean   bool     `json:"clean"`
	Threats []string `json:"threats"`
}

// Scanner scans a whole batch in one call. A single availability failure
// aborts the entire batch rather than partially scanning it.
type Scanner interface {
	ScanBatch(ctx context.Context, files []File) ([]Verdict, error)
}
