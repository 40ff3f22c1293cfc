package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/notifier"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/repository"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/scanner"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/storage"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/upload"
)

// DocumentService drives the document lifecycle: batch ingestion (scan then
// persist), listing, authorized streamed download, and removal.
type DocumentService interface {
	// UploadBatch takes the outcome of stream intake and carries it through
	// scanning and persistence. On full success it returns the created
	// records; otherwise one of ValidationError, ErrNoFiles,
	// ErrScanUnavailable, InfectedError or PartialUploadError.
	UploadBatch(ctx context.Context, company *model.Company, userID string, batch *upload.Batch) ([]model.Document, error)

	// List returns the company's documents, newest first.
	List(ctx context.Context, companyID string) ([]model.Document, error)

	// Download opens the stored bytes of one document after verifying the
	// requesting company owns it.
	Download(ctx context.Context, company *model.Company, id string) (io.ReadCloser, *model.Document, error)

	// Delete removes bytes then record, returning the deleted document.
	Delete(ctx context.Context, company *model.Company, userID string, id string) (*model.Document, error)
}

type documentService struct {
	store  storage.Storage
	repo   repository.DocumentRepository
	scan   scanner.Scanner
	notify notifier.Notifier
	log    *zap.Logger
}

// NewDocumentService constructs a DocumentService. All collaborators are
// injected so each can be substituted with a test double.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, scan scanner.Scanner, notify notifier.Notifier, log *zap.Logger) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{store: store, repo: repo, scan: scan, notify: notify, log: log}
}

func (s *documentService) UploadBatch(ctx context.Context, company *model.Company, userID string, batch *upload.Batch) ([]model.Document, error) {
	if len(batch.Errors) > 0 {
		return nil, &ValidationError{Details: batch.Errors}
	}
	if len(batch.Candidates) == 0 {
		return nil, ErrNoFiles
	}

	// One scan call covers the whole batch.
	files := make([]scanner.File, len(batch.Candidates))
	for i, c := range batch.Candidates {
		files[i] = scanner.File{Name: c.Filename, Data: c.Data}
	}
	verdicts, err := s.scan.ScanBatch(ctx, files)
	if err != nil {
		s.log.Error("virus scan call failed", zap.String("company_id", company.ID), zap.Error(err))
		return nil, ErrScanUnavailable
	}

	// Verdicts correlate to candidates by position.
	var infected []string
	for i, v := range verdicts {
		if !v.Clean {
			infected = append(infected, batch.Candidates[i].Filename)
			s.log.Warn("infected upload rejected",
				zap.String("company_id", company.ID),
				zap.String("filename", batch.Candidates[i].Filename),
				zap.Strings("threats", v.Threats))
		}
	}
	if len(infected) > 0 {
		return nil, &InfectedError{Files: infected}
	}

	// Persist one file at a time: bytes first, record second. A failed file
	// does not abort its siblings, and already-committed files stay
	// committed; the aggregate outcome reports the partial failure.
	stored := make([]model.Document, 0, len(batch.Candidates))
	var uploadErrs []string
	for _, cand := range batch.Candidates {
		name := upload.SanitizeFilename(cand.Filename)
		key := company.ID + "/" + upload.StorageFilename(name)

		_, err := s.store.Put(ctx, key, bytes.NewReader(cand.Data), storage.PutOptions{
			Size:        int64(len(cand.Data)),
			ContentType: cand.ContentType,
		})
		if err != nil {
			s.log.Error("store write failed", zap.String("key", key), zap.Error(err))
			uploadErrs = append(uploadErrs, fmt.Sprintf("Failed to save %s: %v", name, err))
			continue
		}

		rec, err := s.repo.Create(ctx, &model.Document{
			ID:          uuid.New().String(),
			CompanyID:   company.ID,
			Name:        name,
			ContentType: cand.ContentType,
			Size:        int64(len(cand.Data)),
			StoragePath: key,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			// The bytes are in the store but the record is not; reverse the
			// write so no unowned object lingers.
			if _, delErr := s.store.Delete(ctx, key); delErr != nil {
				s.log.Error("rollback delete failed", zap.String("key", key), zap.Error(delErr))
			}
			s.log.Error("record create failed", zap.String("key", key), zap.Error(err))
			uploadErrs = append(uploadErrs, fmt.Sprintf("Failed to record %s: %v", name, err))
			continue
		}
		stored = append(stored, *rec)
	}

	if len(uploadErrs) > 0 {
		return stored, &PartialUploadError{Details: uploadErrs, Stored: stored}
	}

	for _, doc := range stored {
		s.sendNotification(ctx, userID, fmt.Sprintf("Document %q uploaded and scanned successfully", doc.Name))
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, companyID string) ([]model.Document, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *documentService) Download(ctx context.Context, company *model.Company, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.authorize(ctx, company, id)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		// The record exists but the bytes do not (or cannot be opened);
		// this is a store inconsistency, not a missing document.
		s.log.Error("stored bytes unreadable", zap.String("document_id", doc.ID), zap.String("key", doc.StoragePath), zap.Error(err))
		return nil, nil, ErrFileAccess
	}
	return rc, doc, nil
}

func (s *documentService) Delete(ctx context.Context, company *model.Company, userID string, id string) (*model.Document, error) {
	doc, err := s.authorize(ctx, company, id)
	if err != nil {
		return nil, err
	}

	// Bytes first, record second: a crash in between leaves an orphaned
	// record pointing at deleted bytes, which is detectable, instead of
	// undiscoverable orphaned bytes.
	existed, err := s.store.Delete(ctx, doc.StoragePath)
	if err != nil {
		s.log.Error("store delete failed", zap.String("document_id", doc.ID), zap.String("key", doc.StoragePath), zap.Error(err))
	} else if !existed {
		s.log.Warn("stored bytes already absent", zap.String("document_id", doc.ID), zap.String("key", doc.StoragePath))
	}

	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("delete document record: %w", err)
	}

	s.sendNotification(ctx, userID, fmt.Sprintf("Document %q has been successfully deleted", doc.Name))
	return doc, nil
}

// authorize loads the record and verifies the requesting company owns it.
// Ownership is checked on every read and delete, not only on write.
func (s *documentService) authorize(ctx context.Context, company *model.Company, id string) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	if doc.CompanyID != company.ID {
		return nil, ErrAccessDenied
	}
	return doc, nil
}

func (s *documentService) sendNotification(ctx context.Context, userID, message string) {
	if s.notify == nil {
		return
	}
	if err := s.notify.Send(ctx, userID, "document", message); err != nil {
		s.log.Warn("notification delivery failed", zap.String("user_id", userID), zap.Error(err))
	}
}
