package notifier

import "context"

// Notifier is the fire-and-forget notification sink invoked after successful
// document mutations. Callers treat failures as best-effort: they are logged
// and never propagated.
type Notifier interface {
	Send(ctx context.Context, userID, category, message string) error
}
