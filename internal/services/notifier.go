package services

import (
	"context"

	"github.com/gofrs/uuid"
)

// Notifier receives fire-and-forget notification events from the task
// services. Implementations must never block or fail the write path;
// delivery problems are theirs to log.
type Notifier interface {
	TaskAssigned(ctx context.Context, taskID, assigneeID uuid.UUID, title string)
	CommentAdded(ctx context.Context, taskID, authorID uuid.UUID, text string)
}
