package mailer

import "errors"

var (
	// ErrDisabled возвращается заглушкой, когда отправка писем выключена
	ErrDisabled = errors.New("mailer: mail sending is disabled")

	// ErrInvalidMessage возвращается, когда у письма нет получателя или темы
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSend возвращается при ошибке отправки через SMTP
	ErrSend = errors.New("mailer: failed to send message")
)
