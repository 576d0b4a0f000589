package googlecalendar

import "errors"

var (
	// ErrDisabled возвращается клиентом-заглушкой, когда синхронизация с календарем выключена
	ErrDisabled = errors.New("googlecalendar client: calendar sync is disabled")

	// ErrInvalidConfig возвращается при некорректных учетных данных сервисного аккаунта
	ErrInvalidConfig = errors.New("googlecalendar client: invalid configuration")

	// ErrRequest возвращается при ошибке запроса к Google Calendar API
	ErrRequest = errors.New("googlecalendar client: request failed")
)
