package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
)

// Candidate is one accepted in-memory file awaiting scan and persistence.
// It exists only for the duration of a single upload request.
type Candidate struct {
	Data        []byte
	Filename    string
	ContentType string
	Ordinal     int
}

// Batch is the outcome of consuming one multipart stream: the accepted
// candidates plus one human-readable message per rejected file. Any error
// means the caller must reject the whole batch.
type Batch struct {
	Candidates []Candidate
	Errors     []string
}

// Limits carry the two ingestion ceilings.
type Limits struct {
	MaxFiles    int
	MaxFileSize int64
}

// ReadBatch consumes every file part of a multipart stream, strictly
// sequentially (parts share one underlying stream). Each part is counted,
// type-checked before buffering, buffered with a bounded reader, and
// size-checked. Once the file count limit is exceeded, one error is recorded
// and the remaining parts are drained without buffering so the transport is
// fully consumed. Non-file form fields are skipped.
func ReadBatch(ctx context.Context, mr *multipart.Reader, limits Limits) (*Batch, error) {
	batch := &Batch{Candidates: make([]Candidate, 0, limits.MaxFiles)}
	ordinal := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := mr.NextPart()
		if err == io.EOF {
			return batch, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart stream: %w", err)
		}
		if part.FileName() == "" {
			continue
		}
		ordinal++

		if ordinal > limits.MaxFiles {
			batch.Errors = append(batch.Errors,
				fmt.Sprintf("File %d: Too many files. Maximum %d files allowed per upload", ordinal, limits.MaxFiles))
			if err := drain(ctx, mr, part); err != nil {
				return nil, err
			}
			return batch, nil
		}

		contentType := declaredType(part)
		if !ValidType(contentType) {
			batch.Errors = append(batch.Errors,
				fmt.Sprintf("File %d: Invalid file type. Only PDF, Excel, and PowerPoint files are allowed.", ordinal))
			continue
		}

		// Buffer at most ceiling+1 bytes; one extra byte is enough to tell
		// an oversized payload apart from one that exactly fits.
		var buf bytes.Buffer
		n, err := io.Copy(&buf, io.LimitReader(part, limits.MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("read file %d: %w", ordinal, err)
		}
		if !ValidSize(n, limits.MaxFileSize) {
			batch.Errors = append(batch.Errors,
				fmt.Sprintf("File %d: File too large. Maximum size is %dMB.", ordinal, limits.MaxFileSize/(1024*1024)))
			continue
		}

		batch.Candidates = append(batch.Candidates, Candidate{
			Data:        buf.Bytes(),
			Filename:    part.FileName(),
			ContentType: contentType,
			Ordinal:     ordinal,
		})
	}
}

// drain reads and discards the current part and everything after it, so the
// underlying transport is consumed to the end without buffering.
func drain(ctx context.Context, mr *multipart.Reader, current *multipart.Part) error {
	if _, err := io.Copy(io.Discard, current); err != nil {
		return fmt.Errorf("drain multipart stream: %w", err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("drain multipart stream: %w", err)
		}
		if _, err := io.Copy(io.Discard, part); err != nil {
			return fmt.Errorf("drain multipart stream: %w", err)
		}
	}
}

// declaredType extracts the part's declared media type without parameters.
func declaredType(part *multipart.Part) string {
	raw := part.Header.Get("Content-Type")
	if raw == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(raw); err == nil {
		return mt
	}
	return raw
}
