package sessions

import (
	"errors"
	"fmt"
	"log"
	"time"

	"Backend-GeoAttend/src/jobs"

	"github.com/hibiken/asynq"
)

// ===== Asynq/Task Helper Functions =====

// DeleteTask ลบ task เดิมก่อน (ถ้ามี)
func DeleteTask(taskID string, redisURI string) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: redisURI})
	err := inspector.DeleteTask("default", taskID)
	if err != nil && err != asynq.ErrTaskNotFound {
		log.Println("⚠️ Failed to delete old task "+taskID+", then skipping:", err)
	} else if err == nil {
		log.Println("🗑️ Deleted previous task:", taskID)
	}
}

// NewCloseScheduler builds the CloseScheduler used by the service: at the
// session's end time a close-session task flips active=false so the stored
// flag converges to computed expiry.
func NewCloseScheduler(client *asynq.Client, redisURI string) CloseScheduler {
	return func(sessionID string, endTime time.Time) error {
		if client == nil {
			return errors.New("asynq client is not initialized")
		}
		if !endTime.After(time.Now()) {
			log.Println("⏩ Skipped close-session task (end time already past)")
			return nil
		}

		task, err := jobs.NewCloseSessionTask(sessionID)
		if err != nil {
			return fmt.Errorf("create close-session task: %w", err)
		}

		taskID := "close-session-" + sessionID
		DeleteTask(taskID, redisURI)
		_, err = client.Enqueue(task, asynq.ProcessAt(endTime), asynq.TaskID(taskID))
		if err != nil {
			return fmt.Errorf("enqueue close-session task: %w", err)
		}
		log.Printf("✅ Task scheduled: %s | RunAt=%s", taskID, endTime.Format(time.RFC3339))
		return nil
	}
}
