package service

import (
	"strings"
	"testing"

	"github.com/Naseebullah-Wali/MoProject/pkg/circuit"
)

func newTestMailer(t *testing.T) *SendGridMailer {
	t.Helper()

	mailer, err := NewSendGridMailer("test-api-key", "MoProject", "no-reply@example.com", "MoProject", circuit.NewBreaker("mail", circuit.DefaultConfig(), nil))
	if err != nil {
		t.Fatalf("NewSendGridMailer failed: %v", err)
	}
	return mailer
}

func TestMailer_InvitationTemplate(t *testing.T) {
	m := newTestMailer(t)

	body, err := m.render(m.invitationTmpl, map[string]interface{}{
		"AppName":       "MoProject",
		"TempPassword":  "s3cret-temp",
		"ActivationURL": "https://app.example.com/activate-account?token=abc123",
		"ValidDays":     7,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{"s3cret-temp", "https://app.example.com/activate-account?token=abc123", "7 days"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}

func TestMailer_ActivationLinkTemplate(t *testing.T) {
	m := newTestMailer(t)

	body, err := m.render(m.activationTmpl, map[string]interface{}{
		"AppName":       "MoProject",
		"ActivationURL": "https://app.example.com/activate-account?token=fresh",
		"ValidDays":     7,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(body, "token=fresh") {
		t.Error("Expected body to contain the activation link")
	}
	if strings.Contains(body, "Temporary password:") {
		t.Error("Resend must not include a temporary password")
	}
}

func TestMailer_ResetTemplate(t *testing.T) {
	m := newTestMailer(t)

	body, err := m.render(m.resetTmpl, map[string]interface{}{
		"AppName":    "MoProject",
		"ResetURL":   "https://app.example.com/reset-password?token=xyz",
		"ValidHours": 24,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{"token=xyz", "24 hours"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}
