package worker

import (
	"context"
	"log"

	"github.com/gofrs/uuid"
)

// NotificationQueue is the queue assignment and comment events land on.
const NotificationQueue = "notifications"

// QueueNotifier turns task events into queued notification jobs. Enqueue
// failures are logged and swallowed so the write path never stalls on Redis.
type QueueNotifier struct {
	queue *JobQueue
}

func NewQueueNotifier(queue *JobQueue) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) TaskAssigned(ctx context.Context, taskID, assigneeID uuid.UUID, title string) {
	err := n.queue.Enqueue(NotificationQueue, JobTypeEmailNotification, map[string]interface{}{
		"event":       "task_assigned",
		"task_id":     taskID.String(),
		"assignee_id": assigneeID.String(),
		"title":       title,
	})
	if err != nil {
		log.Printf("⚠️ Failed to enqueue assignment notification for task %s: %v", taskID, err)
	}
}

func (n *QueueNotifier) CommentAdded(ctx context.Context, taskID, authorID uuid.UUID, text string) {
	err := n.queue.Enqueue(NotificationQueue, JobTypeEmailNotification, map[string]interface{}{
		"event":     "comment_added",
		"task_id":   taskID.String(),
		"author_id": authorID.String(),
		"text":      text,
	})
	if err != nil {
		log.Printf("⚠️ Failed to enqueue comment notification for task %s: %v", taskID, err)
	}
}
