package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"github.com/simoncdt/vericoupon/internal/config"
	"github.com/simoncdt/vericoupon/internal/model"
)

// bodyTemplate renders the operator-facing notification message.
var bodyTemplate = template.Must(template.New("notification").Parse(`<h2>Nouvel enregistrement reçu !</h2>
<p><strong>Nom :</strong> {{.Surname}}</p>
<p><strong>Prénom :</strong> {{.GivenName}}</p>
<p><strong>Provider :</strong> {{.ProviderName}}</p>
<h3>Coupons :</h3>
<ul>
{{- range .Coupons}}
<li><strong>{{.Code}}</strong> - {{if .Amount}}{{.Amount}}€{{else}}Montant non spécifié{{end}}</li>
{{- end}}
</ul>
`))

// renderBody produces the HTML message for one registration.
func renderBody(reg *model.Registration) (string, error) {
	var b strings.Builder
	if err := bodyTemplate.Execute(&b, reg); err != nil {
		return "", fmt.Errorf("render notification body: %w", err)
	}
	return b.String(), nil
}

// subject builds the notification subject line.
func subject(reg *model.Registration) string {
	return fmt.Sprintf("Nouveau coupon soumis par %s %s", reg.Surname, reg.GivenName)
}

// MailSender delivers notifications to the operator mailbox over SMTP.
type MailSender struct {
	client   *mail.Client
	from     string
	operator string
}

// NewMailSender builds an SMTP sender from the mail configuration.
func NewMailSender(cfg config.MailConfig) (*MailSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &MailSender{
		client:   client,
		from:     cfg.From,
		operator: cfg.Operator,
	}, nil
}

// Send renders and delivers one notification message.
func (s *MailSender) Send(ctx context.Context, reg *model.Registration) error {
	body, err := renderBody(reg)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(s.operator); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject(reg))
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// LogSender renders notifications to the log instead of sending them.
// Used when no SMTP host is configured (local development).
type LogSender struct{}

// Send logs the rendered notification.
func (LogSender) Send(_ context.Context, reg *model.Registration) error {
	body, err := renderBody(reg)
	if err != nil {
		return err
	}
	log.Info().
		Str("registration_id", reg.ID).
		Str("subject", subject(reg)).
		Str("body", body).
		Msg("mail delivery disabled, logging notification")
	return nil
}
