package model

import "time"

// Notification is an insert-only record of a message delivered to a user
// after a successful document mutation. Delivery is best effort.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
