package notify

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"klubnika/config"
)

type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewMailer(cfg config.SMTP) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	// port 465 speaks SSL from the first byte
	d.SSL = cfg.Port == 465
	return &Mailer{
		dialer:   d,
		from:     cfg.User,
		fromName: cfg.FromName,
	}
}

func (m *Mailer) Send(to, subject, text, html string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, m.fromName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	for _, a := range attachments {
		content := a.Content
		msg.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}),
		)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
