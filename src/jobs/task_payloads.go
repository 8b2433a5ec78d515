package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCloseSession = "session:close"

type SessionPayload struct {
	SessionID string `json:"session_id"`
}

func NewCloseSessionTask(sessionID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SessionPayload{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCloseSession, payload), nil
}
