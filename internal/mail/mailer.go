package mail

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Mailer dispatches transactional emails. Services only depend on this
// interface; tests swap in a recorder.
type Mailer interface {
	SendAccountConfirmation(to, token string) error
	SendPasswordReset(to, token string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	client      *gomail.Client
	from        string
	frontendURL string
}

// Options configures the SMTP connection.
type Options struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	FrontendURL string
}

// NewSMTPMailer creates a Mailer backed by an SMTP relay.
func NewSMTPMailer(opts Options) (*SMTPMailer, error) {
	clientOpts := []gomail.Option{
		gomail.WithPort(opts.Port),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
		)
	}

	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPMailer{
		client:      client,
		from:        opts.From,
		frontendURL: opts.FrontendURL,
	}, nil
}

// SendAccountConfirmation emails the confirmation link issued at registration.
func (m *SMTPMailer) SendAccountConfirmation(to, token string) error {
	confirmURL := fmt.Sprintf("%s/confirm-account?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"<p>Welcome! Please confirm your account by clicking the link below.</p>"+
			"<p><a href=%q>Confirm my account</a></p>"+
			"<p>The link is valid for 24 hours.</p>",
		confirmURL,
	)
	return m.send(to, "Confirm your account", body)
}

// SendPasswordReset emails the short-lived password reset link.
func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(
		"<p>We received a request to reset your password.</p>"+
			"<p><a href=%q>Reset my password</a></p>"+
			"<p>The link expires in 15 minutes. If you did not ask for this, ignore this email.</p>",
		resetURL,
	)
	return m.send(to, "Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
