package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPSender delivers password recovery mail over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) SendPasswordRecovery(recipient, tempPassword string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", "TriTogether password recovery")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello,\n\nYour temporary password is: %s\n\n"+
			"Sign in with it and set a new password. "+
			"It stops working after the first use.\n",
		tempPassword,
	))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send recovery mail: %w", err)
	}
	return nil
}
