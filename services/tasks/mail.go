package tasks

import (
	"encoding/json"
	"time"

	"amedick/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendMail = "mail:send"
	MailQueue    = "mail"
)

// NewMailTask wraps a mail payload in an asynq task. A non-zero fireAt delays delivery.
func NewMailTask(payload models.MailPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendMail, b)
	opts := []asynq.Option{asynq.Queue(MailQueue), asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	if !fireAt.IsZero() {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}
	return task, opts, nil
}

// ParseMailTask decodes the payload of a mail task.
func ParseMailTask(task *asynq.Task) (models.MailPayload, error) {
	var p models.MailPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
