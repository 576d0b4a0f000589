package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/pkg/txmanager"
)

const (
	msgSlotOverlap    = "слот пересекается с существующим слотом"
	msgConcurrentEdit = "слот изменен параллельным запросом, повторите попытку"
)

// OverlapMessage формирует текст конфликта с окном существующего слота
// Окно выводится в часовом поясе школы: "слот пересекается со слотом 10:00 - 11:00"
func OverlapMessage(err error, loc *time.Location) string {
	var overlap *domain.OverlapError
	if !errors.As(err, &overlap) {
		return msgSlotOverlap
	}
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("слот пересекается со слотом %s - %s",
		overlap.Start.In(loc).Format(domain.ClockFormat),
		overlap.End.In(loc).Format(domain.ClockFormat))
}

// IsRetriesExhausted true, если транзакция не прошла из-за постоянных конфликтов сериализации
func IsRetriesExhausted(err error) bool {
	return errors.Is(err, txmanager.ErrRetriesExhausted)
}

// RespondRetriesExhausted отвечает 409: клиент может повторить запрос
func RespondRetriesExhausted(w http.ResponseWriter) {
	RespondConflict(w, msgConcurrentEdit)
}
