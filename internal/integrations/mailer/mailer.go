package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer отправляет письма через SMTP
type Mailer struct {
	from string
	dial func(ctx context.Context) (gomail.SendCloser, error)
}

// New создает SMTP отправителя
func New(cfg Config) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &Mailer{
		from: from,
		dial: newSMTPDialer(cfg).Dial,
	}
}

// NewWithSender создает отправителя поверх произвольного gomail.Sender
func NewWithSender(from string, sender gomail.Sender) *Mailer {
	return &Mailer{
		from: from,
		dial: func(context.Context) (gomail.SendCloser, error) {
			return senderCloser{Sender: sender}, nil
		},
	}
}

// Send отправляет письмо в отдельной SMTP сессии
// Сессия ограничена ctx: по его дедлайну соединение закрывается и Send возвращает ErrSend
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" || msg.Subject == "" {
		return fmt.Errorf("%w: recipient and subject are required", ErrInvalidMessage)
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		gm.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			gm.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		gm.SetBody("text/html", msg.HTMLBody)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, msg.To, err)
	}

	sc, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, msg.To, err)
	}
	defer sc.Close()

	if err := gomail.Send(sc, gm); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, msg.To, err)
	}
	return nil
}

// Disabled заглушка для окружений без SMTP
type Disabled struct{}

// Send всегда возвращает ErrDisabled
func (Disabled) Send(context.Context, Message) error {
	return ErrDisabled
}
