package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
)

var (
	// ErrNoFiles means the multipart stream carried no file parts at all.
	ErrNoFiles = errors.New("no files uploaded")
	// ErrScanUnavailable means the scan service itself failed; nothing was scanned.
	ErrScanUnavailable = errors.New("virus scan service unavailable")
	// ErrNotFound means no document record exists for the given id.
	ErrNotFound = errors.New("document not found")
	// ErrAccessDenied means the requester's company does not own the document.
	ErrAccessDenied = errors.New("access denied")
	// ErrFileAccess means the record exists but its bytes could not be read.
	ErrFileAccess = errors.New("file access error")
)

// ValidationError aggregates the intake-phase rejections for a batch. The
// whole upload is refused; its details are safe to show to the caller.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "file validation failed: " + strings.Join(e.Details, " ")
}

// InfectedError reports which files the scanner flagged. No file in the
// batch is persisted, clean ones included.
type InfectedError struct {
	Files []string
}

func (e *InfectedError) Error() string {
	return fmt.Sprintf("virus scan failed: infected files detected: %s", strings.Join(e.Files, ", "))
}

// PartialUploadError reports a batch where some files were durably stored
// and recorded while others failed. Committed files stay committed; Stored
// lets the caller tell partial success from full success.
type PartialUploadError struct {
	Details []string
	Stored  []model.Document
}

func (e *PartialUploadError) Error() string {
	return "partial upload failure: " + strings.Join(e.Details, " ")
}
