package domain

import "context"

// CompletionNotification carries what the completion email needs.
type CompletionNotification struct {
	SubmissionID   string
	UserName       string
	UserEmail      string
	InductionTitle string
}

// Notifier is the port for outbound completion notifications. Delivery is
// best-effort from the core's perspective: a failure never reverses a
// status transition.
type Notifier interface {
	SubmissionCompleted(ctx context.Context, notification *CompletionNotification) error
}
