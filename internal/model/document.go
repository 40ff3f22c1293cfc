package model

import "time"

// Document represents one stored file and its metadata record.
// This is a pure domain model with no database-specific dependencies or tags.
// StoragePath points at the bytes inside the owning company's namespace and
// is never serialized to API clients.
type Document struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
