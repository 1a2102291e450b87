// Package notifier maintains the set of connected real-time
// subscribers and broadcasts serialized tasks to all of them.
package notifier

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/domain"
)

// TaskNotifier is the capability the API layer uses to push task
// changes to subscribers. Delivery is fire-and-forget, at-most-once:
// Broadcast dispatches and returns without waiting for any subscriber,
// and there is no error to report.
type TaskNotifier interface {
	Broadcast(ctx context.Context, task *domain.Task)
}
