package services

import (
	"context"
	"log"
)

// NotificationEvent identifies a notification hook point.
type NotificationEvent string

const (
	// EventPlanAssigned fires for clients newly attached to a plan.
	EventPlanAssigned NotificationEvent = "plan.assigned"
	// EventPlanChanged fires for every client on a plan after the plan
	// is updated.
	EventPlanChanged NotificationEvent = "plan.changed"
)

// Notifier receives notification events after a successful commit.
// Handlers call it explicitly; there is no mail transport behind the
// default implementation.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent, clientIDs []int64)
}

// LogNotifier is the stub Notifier wired in by default. It only records
// the hook point.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, event NotificationEvent, clientIDs []int64) {
	if len(clientIDs) == 0 {
		return
	}
	log.Printf("notification %s for clients %v", event, clientIDs)
}
