package notifications

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"mecanica_hub/internal/config"

	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks SMTP when a host is configured and falls back to logging.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
		send: smtp.SendMail,
	}
	if cfg.Username != "" {
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.send(m.addr, m.auth, m.from, msg.To, m.render(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) render(msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("[notify][mailer] email",
		zap.Strings("to", msg.To), zap.String("subject", msg.Subject), zap.Int("body_len", len(msg.Body)))
	return nil
}
