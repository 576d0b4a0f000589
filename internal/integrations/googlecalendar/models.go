package googlecalendar

import "time"

// DefaultTimeZone часовой пояс событий по умолчанию
const DefaultTimeZone = "Europe/Amsterdam"

// Config настройки клиента Google Calendar
type Config struct {
	CalendarID  string        // ID календаря (обычно email календаря школы)
	ClientEmail string        // email сервисного аккаунта
	PrivateKey  string        // PEM ключ сервисного аккаунта, допускаются экранированные \n
	TimeZone    string        // часовой пояс событий
	SchoolName  string        // место события, если у занятия нет адреса
	Timeout     time.Duration // таймаут HTTP запросов к API
}
