package model

import "time"

// Company is the ownership scope for documents. Every stored document lives
// under exactly one company's storage namespace, and only the company's
// owning user may read or delete it.
type Company struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
