package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Masterminds/sprig/v3"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Naseebullah-Wali/MoProject/pkg/circuit"
	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
)

// MailSender delivers the transactional emails of the invitation and
// password-reset flows. Delivery is best effort; callers decide whether a
// failure is fatal.
type MailSender interface {
	SendInvitation(ctx context.Context, toEmail, tempPassword, activationURL string) error
	SendActivationLink(ctx context.Context, toEmail, activationURL string) error
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

const invitationTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome to {{ .AppName }}</h2>
  <p>An account has been created for you. Sign in with your temporary password, then activate your account:</p>
  <p><b>Temporary password:</b> <code>{{ .TempPassword }}</code></p>
  <p><a href="{{ .ActivationURL }}">Activate your account</a></p>
  <p>This link expires in {{ .ValidDays }} {{ .ValidDays | plural "day" "days" }}. If it has expired, you can request a new one from the sign-in page.</p>
</body>
</html>`

const activationLinkTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Activate your {{ .AppName }} account</h2>
  <p>Here is a fresh activation link for your account:</p>
  <p><a href="{{ .ActivationURL }}">Activate your account</a></p>
  <p>This link expires in {{ .ValidDays }} days. Your temporary password is unchanged.</p>
</body>
</html>`

const resetTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Reset your {{ .AppName }} password</h2>
  <p>We received a request to reset the password for this address. If that was you, follow the link below:</p>
  <p><a href="{{ .ResetURL }}">Reset your password</a></p>
  <p>The link expires in {{ .ValidHours }} hours. If you did not request a reset, you can ignore this email.</p>
</body>
</html>`

// SendGridMailer sends mail through SendGrid. A circuit breaker shields
// the request path from a degraded provider.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	appName   string
	breaker   *circuit.Breaker

	invitationTmpl *template.Template
	activationTmpl *template.Template
	resetTmpl      *template.Template
}

func NewSendGridMailer(apiKey, fromName, fromEmail, appName string, breaker *circuit.Breaker) (*SendGridMailer, error) {
	invitationTmpl, err := template.New("invitation").Funcs(sprig.FuncMap()).Parse(invitationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invitation template: %w", err)
	}
	activationTmpl, err := template.New("activation").Funcs(sprig.FuncMap()).Parse(activationLinkTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse activation template: %w", err)
	}
	resetTmpl, err := template.New("reset").Funcs(sprig.FuncMap()).Parse(resetTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reset template: %w", err)
	}

	return &SendGridMailer{
		client:         sendgrid.NewSendClient(apiKey),
		fromName:       fromName,
		fromEmail:      fromEmail,
		appName:        appName,
		breaker:        breaker,
		invitationTmpl: invitationTmpl,
		activationTmpl: activationTmpl,
		resetTmpl:      resetTmpl,
	}, nil
}

func (m *SendGridMailer) SendInvitation(ctx context.Context, toEmail, tempPassword, activationURL string) error {
	body, err := m.render(m.invitationTmpl, map[string]interface{}{
		"AppName":       m.appName,
		"TempPassword":  tempPassword,
		"ActivationURL": activationURL,
		"ValidDays":     7,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, fmt.Sprintf("You have been invited to %s", m.appName), body)
}

func (m *SendGridMailer) SendActivationLink(ctx context.Context, toEmail, activationURL string) error {
	body, err := m.render(m.activationTmpl, map[string]interface{}{
		"AppName":       m.appName,
		"ActivationURL": activationURL,
		"ValidDays":     7,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, fmt.Sprintf("Activate your %s account", m.appName), body)
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, toEmail, resetURL string) error {
	body, err := m.render(m.resetTmpl, map[string]interface{}{
		"AppName":    m.appName,
		"ResetURL":   resetURL,
		"ValidHours": 24,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, toEmail, fmt.Sprintf("Reset your %s password", m.appName), body)
}

func (m *SendGridMailer) render(tmpl *template.Template, data map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.String(), nil
}

func (m *SendGridMailer) send(ctx context.Context, toEmail, subject, htmlBody string) error {
	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	to := sgmail.NewEmail("", toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	err := m.breaker.Execute(func() error {
		response, err := m.client.Send(message)
		if err != nil {
			return err
		}
		if response.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("mail provider returned status %d", response.StatusCode)
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to send email").
			String("to", toEmail).
			String("subject", subject).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Email sent").
		String("to", toEmail).
		String("subject", subject).
		Log()
	return nil
}
