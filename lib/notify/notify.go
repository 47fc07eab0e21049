package notify

import (
	"context"
	"log"
)

// Notifier tells a client that a deliverable was sent to them. Failures are
// fire-and-forget: a failed notification never rolls back the send.
type Notifier interface {
	DeliverableSent(ctx context.Context, recipientID, projectName, title string) error
}

// LogNotifier is the fallback when no broker is configured; it only logs.
type LogNotifier struct{}

// DeliverableSent logs the notification instead of delivering it
func (n *LogNotifier) DeliverableSent(ctx context.Context, recipientID, projectName, title string) error {
	log.Printf("notify: deliverable %q for project %q sent to client %s", title, projectName, recipientID)
	return nil
}
