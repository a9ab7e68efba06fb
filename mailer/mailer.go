// mailer/mailer.go
package mailer

import (
	"crypto/tls"
	"log"

	mail "github.com/go-mail/mail/v2"

	"ideabank/config"
)

// Send delivers an HTML email over SMTP. When SMTP is not configured the
// message is logged and dropped, so callers never need to care whether
// mail is enabled.
func Send(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if config.SMTPHost == "" || config.SMTPFrom == "" {
		log.Printf("SMTP not configured, dropping mail to %v: %s", to, subject)
		return nil
	}

	m := mail.NewMessage()
	m.SetHeader("From", config.SMTPFrom)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := mail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{ServerName: config.SMTPHost}

	return d.DialAndSend(m)
}
