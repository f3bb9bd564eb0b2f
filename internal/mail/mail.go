// Package mail sends the transactional emails of the account flows.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	// KindConfirmation labels account confirmation emails.
	KindConfirmation = "confirmation"
	// KindPasswordReset labels password reset emails.
	KindPasswordReset = "password_reset"
)

// Recipient is the user an email is addressed to.
type Recipient struct {
	Nombre string
	Email  string
	Token  string
}

// Sender delivers account notifications.
type Sender interface {
	SendConfirmation(ctx context.Context, to Recipient) error
	SendPasswordReset(ctx context.Context, to Recipient) error
}

// Counter records delivery outcomes. *metrics.Metrics satisfies it.
type Counter interface {
	EmailSent(kind string)
	EmailFailed(kind string)
}

// Dialer is the transport half of gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Message is a composed email before it reaches the transport.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var confirmationTmpl = template.Must(template.New(KindConfirmation).Parse(
	`<p>Hola: {{.Nombre}} Comprueba tu cuenta en UpTask</p>
<p>Tu cuenta ya esta casi lista, solo debes comprobarla en el siguiente enlace:
<a href="{{.Link}}">Comprobar Cuenta</a>
</p>
<p>Si tu no creaste esta cuenta, puedes ignorar el mensaje</p>
`))

var resetTmpl = template.Must(template.New(KindPasswordReset).Parse(
	`<p>Hola: {{.Nombre}} has solicitado reestablecer tu password</p>
<p>Dar click en el siguiente enlace para generar un nuevo password:</p>
<a href="{{.Link}}">Reestablecer Password</a>
<p>Si tu no solicitaste este email, puedes ignorar el mensaje</p>
`))

// Composer builds message bodies with links into the frontend.
type Composer struct {
	frontendURL string
}

// NewComposer creates a composer for the given frontend base URL.
func NewComposer(frontendURL string) *Composer {
	return &Composer{frontendURL: strings.TrimRight(frontendURL, "/")}
}

// Confirmation composes the account confirmation email.
func (c *Composer) Confirmation(to Recipient) (Message, error) {
	return c.compose(confirmationTmpl, "/confirmar/", to, Message{
		Subject: "UpTask - Comprueba tu Cuenta",
		Text:    "Comprueba tu cuenta en UpTask",
	})
}

// PasswordReset composes the password reset email.
func (c *Composer) PasswordReset(to Recipient) (Message, error) {
	return c.compose(resetTmpl, "/olvide-password/", to, Message{
		Subject: "UpTask - Reestablece tu Password",
		Text:    "Reestablece tu Password de tu Cuenta en UpTask",
	})
}

// Link returns the frontend URL carrying token under path.
func (c *Composer) Link(path, token string) string {
	return c.frontendURL + path + token
}

func (c *Composer) compose(tmpl *template.Template, path string, to Recipient, msg Message) (Message, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Nombre string
		Link   string
	}{Nombre: to.Nombre, Link: c.Link(path, to.Token)})
	if err != nil {
		return Message{}, fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}
	msg.HTML = buf.String()
	return msg, nil
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	dialer   Dialer
	from     string
	composer *Composer
	counter  Counter
}

// NewSMTPDialer creates a gomail dialer for the relay.
func NewSMTPDialer(host string, port int, user, pass string) *gomail.Dialer {
	return gomail.NewDialer(host, port, user, pass)
}

// NewSMTPSender creates a sender. counter may be nil.
func NewSMTPSender(dialer Dialer, from string, composer *Composer, counter Counter) *SMTPSender {
	return &SMTPSender{dialer: dialer, from: from, composer: composer, counter: counter}
}

// SendConfirmation sends the account confirmation email.
func (s *SMTPSender) SendConfirmation(ctx context.Context, to Recipient) error {
	msg, err := s.composer.Confirmation(to)
	if err != nil {
		return err
	}
	return s.send(KindConfirmation, to, msg)
}

// SendPasswordReset sends the password reset email.
func (s *SMTPSender) SendPasswordReset(ctx context.Context, to Recipient) error {
	msg, err := s.composer.PasswordReset(to)
	if err != nil {
		return err
	}
	return s.send(KindPasswordReset, to, msg)
}

func (s *SMTPSender) send(kind string, to Recipient, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", to.Email, to.Nombre)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.record(kind, false)
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	s.record(kind, true)
	return nil
}

func (s *SMTPSender) record(kind string, ok bool) {
	if s.counter == nil {
		return
	}
	if ok {
		s.counter.EmailSent(kind)
	} else {
		s.counter.EmailFailed(kind)
	}
}

// LogSender writes the links to the log instead of sending mail. It is
// used when no SMTP relay is configured.
type LogSender struct {
	composer *Composer
	logger   *zap.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(composer *Composer, logger *zap.Logger) *LogSender {
	return &LogSender{composer: composer, logger: logger}
}

// SendConfirmation logs the confirmation link.
func (s *LogSender) SendConfirmation(ctx context.Context, to Recipient) error {
	s.log(ctx, KindConfirmation, to, s.composer.Link("/confirmar/", to.Token))
	return nil
}

// SendPasswordReset logs the reset link.
func (s *LogSender) SendPasswordReset(ctx context.Context, to Recipient) error {
	s.log(ctx, KindPasswordReset, to, s.composer.Link("/olvide-password/", to.Token))
	return nil
}

func (s *LogSender) log(ctx context.Context, kind string, to Recipient, link string) {
	s.logger.Info("email not sent, smtp disabled",
		zap.String("kind", kind),
		zap.String("to", to.Email),
		zap.String("link", link),
	)
}
