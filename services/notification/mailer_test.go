package notification

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"amedick/models"

	"github.com/wneessen/go-mail"
)

func TestSMTPMailerSend(t *testing.T) {
	var sent *mail.Msg
	m := &SMTPMailer{
		Host: "smtp.example.com",
		Port: 587,
		From: "AmedicK Clinic <no-reply@amedick.test>",
		send: func(_ context.Context, msg *mail.Msg) error {
			sent = msg
			return nil
		},
	}

	err := m.Send(context.Background(), models.MailPayload{To: "jane@example.com", Subject: "Rendez-vous confirmé", Body: "See you"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent == nil {
		t.Fatal("nothing sent")
	}
	to, err := sent.GetRecipients()
	if err != nil || len(to) != 1 || to[0] != "jane@example.com" {
		t.Errorf("recipients = %v, %v", to, err)
	}

	var buf bytes.Buffer
	if _, err := sent.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Date: ", "Message-ID: <", "=?UTF-8?", "no-reply@amedick.test", "See you"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "confirmé") {
		t.Errorf("non-ASCII subject sent unencoded:\n%s", out)
	}
}

func TestSMTPMailerRejectsBadRecipient(t *testing.T) {
	called := false
	m := &SMTPMailer{
		Host: "smtp.example.com",
		Port: 587,
		From: "no-reply@amedick.test",
		send: func(context.Context, *mail.Msg) error {
			called = true
			return nil
		},
	}
	if err := m.Send(context.Background(), models.MailPayload{To: "not an address"}); err == nil {
		t.Error("expected an error for an invalid recipient")
	}
	if called {
		t.Error("invalid mail should not reach the server")
	}
}

func TestSMTPMailerWithoutHostDrops(t *testing.T) {
	called := false
	m := &SMTPMailer{send: func(context.Context, *mail.Msg) error {
		called = true
		return nil
	}}
	if err := m.Send(context.Background(), models.MailPayload{To: "x@example.com"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if called {
		t.Error("mail should not be sent without a host")
	}
}

func TestTLSPolicy(t *testing.T) {
	tests := map[string]mail.TLSPolicy{
		"":              mail.TLSMandatory,
		"mandatory":     mail.TLSMandatory,
		"Opportunistic": mail.TLSOpportunistic,
		"none":          mail.NoTLS,
	}
	for in, want := range tests {
		if got := tlsPolicy(in); got != want {
			t.Errorf("tlsPolicy(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDoctorRejectedMailReason(t *testing.T) {
	d := &models.Doctor{Name: "Rao", Email: "rao@example.com"}
	if m := DoctorRejectedMail(d, ""); strings.Contains(m.Body, "Reason") {
		t.Errorf("empty reason rendered: %q", m.Body)
	}
	if m := DoctorRejectedMail(d, "blurry ID"); !strings.Contains(m.Body, "blurry ID") {
		t.Errorf("reason missing: %q", m.Body)
	}
}
