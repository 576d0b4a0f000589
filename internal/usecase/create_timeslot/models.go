package create_timeslot

import "time"

// Request модель запроса на создание слота
type Request struct {
	StartTime time.Time // Начало слота
	EndTime   time.Time // Конец слота (не входит в слот)
	IsVisible *bool     // Видимость в списке свободных слотов, по умолчанию true
}
