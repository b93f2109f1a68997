// Package mail delivers completed submissions over SMTP: an HTML summary
// body with the generated PDF and CSV plus every uploaded document attached.
package mail

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Config is the SMTP endpoint and addressing for outgoing submissions.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	SSL      bool

	From string
	To   []string
}

// Check rejects a config that cannot possibly deliver.
func (c Config) Check() error {
	if c.Host == "" || c.Port == 0 {
		return fmt.Errorf("mail: host and port are required")
	}
	if c.From == "" {
		return fmt.Errorf("mail: from address is required")
	}
	if len(c.To) == 0 {
		return fmt.Errorf("mail: at least one recipient is required")
	}
	return nil
}

// Attachment is a named blob to attach to the outgoing message.
type Attachment struct {
	Filename string
	Data     []byte
}

// Message is one outgoing submission email.
type Message struct {
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Sender delivers messages through a single SMTP endpoint.
type Sender struct {
	cfg    Config
	dialer *gomail.Dialer
	log    *zap.Logger
}

// New builds a sender. The connection is dialed per send; SMTP sessions are
// too short-lived to pool.
func New(cfg Config, log *zap.Logger) (*Sender, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.SSL
	return &Sender{cfg: cfg, dialer: dialer, log: log}, nil
}

// Send delivers one message to the configured recipients.
func (s *Sender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	for _, att := range msg.Attachments {
		data := att.Data
		m.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: send %q: %w", msg.Subject, err)
	}
	s.log.Info("submission email sent",
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)))
	return nil
}
