package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"amedick/config"
	"amedick/models"
	"amedick/services/tasks"
	"amedick/utils"

	"github.com/hibiken/asynq"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, payload models.MailPayload) error
	// SendAt schedules delivery; times in the past mean "now".
	SendAt(ctx context.Context, payload models.MailPayload, at time.Time) error
}

// QueueMailer enqueues mail for the background worker.
type QueueMailer struct {
	Client *asynq.Client
}

func NewQueueMailer(client *asynq.Client) *QueueMailer {
	return &QueueMailer{Client: client}
}

func (m *QueueMailer) Send(ctx context.Context, payload models.MailPayload) error {
	return m.SendAt(ctx, payload, time.Time{})
}

func (m *QueueMailer) SendAt(ctx context.Context, payload models.MailPayload, at time.Time) error {
	if !at.IsZero() && !at.After(time.Now()) {
		at = time.Time{}
	}
	task, opts, err := tasks.NewMailTask(payload, at)
	if err != nil {
		return fmt.Errorf("failed to build mail task: %w", err)
	}
	info, err := m.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue mail: %w", err)
	}
	utils.GetLogger().Debug("Mail queued",
		zap.String("taskId", info.ID),
		zap.String("to", payload.To),
		zap.Time("processAt", info.NextProcessAt))
	return nil
}

// SMTPMailer sends mail synchronously over SMTP. When no host is configured
// the message is only logged, which keeps local development usable.
type SMTPMailer struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	TLSPolicy mail.TLSPolicy

	send func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPMailerFromConfig() *SMTPMailer {
	cfg := config.AppConfig
	return &SMTPMailer{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.MailFrom,
		TLSPolicy: tlsPolicy(cfg.SMTPTLS),
	}
}

// tlsPolicy maps SMTP_TLS to a go-mail policy; anything unknown is mandatory.
func tlsPolicy(name string) mail.TLSPolicy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "opportunistic":
		return mail.TLSOpportunistic
	case "none", "off":
		return mail.NoTLS
	default:
		return mail.TLSMandatory
	}
}

func (m *SMTPMailer) Send(ctx context.Context, payload models.MailPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Host == "" {
		utils.GetLogger().Info("SMTP not configured, mail dropped",
			zap.String("to", payload.To), zap.String("subject", payload.Subject))
		return nil
	}

	msg, err := m.message(payload)
	if err != nil {
		return err
	}
	send := m.send
	if send == nil {
		send = m.dialAndSend
	}
	if err := send(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", payload.To, err)
	}
	return nil
}

// SendAt cannot defer delivery without a queue, so it sends immediately.
func (m *SMTPMailer) SendAt(ctx context.Context, payload models.MailPayload, _ time.Time) error {
	return m.Send(ctx, payload)
}

func (m *SMTPMailer) message(payload models.MailPayload) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(payload.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", payload.To, err)
	}
	msg.Subject(payload.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, payload.Body)
	return msg, nil
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{mail.WithPort(m.Port), mail.WithTLSPolicy(m.TLSPolicy)}
	if m.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if m.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.Username),
			mail.WithPassword(m.Password))
	}
	client, err := mail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
