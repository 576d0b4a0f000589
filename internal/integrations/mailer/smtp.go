package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// implicitTLSPort порт SMTPS, где TLS поднимается сразу после соединения
const implicitTLSPort = 465

// smtpDialer открывает SMTP сессию, все I/O которой ограничено контекстом
type smtpDialer struct {
	host     string
	port     int
	username string
	password string
}

func newSMTPDialer(cfg Config) *smtpDialer {
	return &smtpDialer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Dial подключается к серверу и проходит STARTTLS и авторизацию
// Дедлайн ctx становится дедлайном соединения, отмена ctx обрывает текущее чтение или запись
func (d *smtpDialer) Dial(ctx context.Context) (gomail.SendCloser, error) {
	addr := net.JoinHostPort(d.host, strconv.Itoa(d.port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})

	if d.port == implicitTLSPort {
		conn = tls.Client(conn, &tls.Config{ServerName: d.host})
	}

	client, err := smtp.NewClient(conn, d.host)
	if err != nil {
		stop()
		conn.Close()
		return nil, fmt.Errorf("greeting: %w", err)
	}

	sender := &smtpSender{client: client, stop: stop}

	if d.port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: d.host}); err != nil {
				sender.abort()
				return nil, fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if d.username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", d.username, d.password, d.host)); err != nil {
				sender.abort()
				return nil, fmt.Errorf("auth: %w", err)
			}
		}
	}

	return sender, nil
}

// smtpSender gomail.SendCloser поверх одной SMTP сессии
type smtpSender struct {
	client *smtp.Client
	stop   func() bool
}

func (s *smtpSender) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.client.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := s.client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	return w.Close()
}

func (s *smtpSender) Close() error {
	defer s.stop()
	if err := s.client.Quit(); err != nil {
		s.client.Close()
		return err
	}
	return nil
}

func (s *smtpSender) abort() {
	s.stop()
	s.client.Close()
}

// senderCloser оборачивает gomail.Sender без собственного соединения
type senderCloser struct {
	gomail.Sender
}

func (senderCloser) Close() error { return nil }
