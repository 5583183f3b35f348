package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// SMTPGateway delivers messages over SMTP.
type SMTPGateway struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

// NewSMTPGateway creates a Gateway over the given SMTP server.
func NewSMTPGateway(host string, port int, user, password, from string, log zerolog.Logger) *SMTPGateway {
	return &SMTPGateway{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		log:    log.With().Str("component", "smtp_gateway").Logger(),
	}
}

// Send implements Gateway. All failures are reduced to a Result with
// Success=false; nothing propagates as an error.
func (g *SMTPGateway) Send(ctx context.Context, msg Message) Result {
	if err := ctx.Err(); err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", g.from)
	m.SetHeader("To", msg.To)
	if msg.CC != "" {
		m.SetHeader("Cc", msg.CC)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	if att := msg.Attachment; att != nil {
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.MIMEType},
			}),
		)
	}

	if err := g.dialer.DialAndSend(m); err != nil {
		g.log.Error().Err(err).Str("to", msg.To).Msg("Delivery failed")
		return Result{Success: false, Message: err.Error()}
	}

	g.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return Result{Success: true, Message: fmt.Sprintf("Email sent to %s", msg.To)}
}
