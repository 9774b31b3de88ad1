package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"amedick/models"
	"amedick/services/tasks"

	"github.com/hibiken/asynq"
)

type recordingMailer struct {
	sent []models.MailPayload
	err  error
}

func (m *recordingMailer) Send(_ context.Context, mail models.MailPayload) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

func (m *recordingMailer) SendAt(ctx context.Context, mail models.MailPayload, _ time.Time) error {
	return m.Send(ctx, mail)
}

func TestHandleMailTask(t *testing.T) {
	mailer := &recordingMailer{}
	task, _, err := tasks.NewMailTask(models.MailPayload{To: "jane@example.com", Subject: "s", Body: "b"}, time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	if err := HandleMailTask(mailer)(context.Background(), task); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != "jane@example.com" {
		t.Errorf("sent = %+v", mailer.sent)
	}
}

func TestHandleMailTaskSkipsBadPayload(t *testing.T) {
	handler := HandleMailTask(&recordingMailer{})

	bad := asynq.NewTask(tasks.TypeSendMail, []byte("{"))
	if err := handler(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("malformed payload: err = %v, want SkipRetry", err)
	}

	b, _ := json.Marshal(models.MailPayload{Subject: "no recipient"})
	if err := handler(context.Background(), asynq.NewTask(tasks.TypeSendMail, b)); !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("missing recipient: err = %v, want SkipRetry", err)
	}
}

func TestHandleMailTaskRetriesDeliveryFailure(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	task, _, _ := tasks.NewMailTask(models.MailPayload{To: "jane@example.com"}, time.Time{})

	err := HandleMailTask(mailer)(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Errorf("delivery failure should be retried, got %v", err)
	}
}
