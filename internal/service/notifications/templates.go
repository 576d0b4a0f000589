package notifications

import (
	"fmt"
	"html"
	"time"

	"github.com/m04kA/DrivingSchool-BookingService/internal/domain"
	"github.com/m04kA/DrivingSchool-BookingService/internal/integrations/mailer"
)

const (
	dateFormat = "02/01/2006"
)

type appointmentView struct {
	kind     string // "rijles" или "examen"
	date     string
	from     string
	to       string
	location string
}

func newAppointmentView(a *domain.Appointment, location *domain.Location, tz *time.Location, schoolName string) appointmentView {
	kind := "rijles"
	if a.IsExam {
		kind = "examen"
	}
	return appointmentView{
		kind:     kind,
		date:     a.StartTime.In(tz).Format(dateFormat),
		from:     a.StartTime.In(tz).Format(domain.ClockFormat),
		to:       a.EndTime.In(tz).Format(domain.ClockFormat),
		location: a.PickupAddress(location, schoolName),
	}
}

func bookedMessage(user *domain.User, v appointmentView) mailer.Message {
	text := fmt.Sprintf("Beste %s,\n\nJe %s op %s van %s tot %s is bevestigd.\nLocatie: %s\n",
		user.FirstName, v.kind, v.date, v.from, v.to, v.location)

	return mailer.Message{
		To:       user.Email,
		Subject:  fmt.Sprintf("Bevestiging %s %s %s", v.kind, v.date, v.from),
		TextBody: text,
		HTMLBody: fmt.Sprintf("<p>Beste %s,</p><p>Je %s op <b>%s</b> van <b>%s</b> tot <b>%s</b> is bevestigd.</p><p>Locatie: %s</p>",
			html.EscapeString(user.FirstName), v.kind, v.date, v.from, v.to, html.EscapeString(v.location)),
	}
}

func cancelledMessage(user *domain.User, v appointmentView) mailer.Message {
	text := fmt.Sprintf("Beste %s,\n\nJe %s op %s van %s tot %s is geannuleerd.\n",
		user.FirstName, v.kind, v.date, v.from, v.to)

	return mailer.Message{
		To:       user.Email,
		Subject:  fmt.Sprintf("Annulering %s %s %s", v.kind, v.date, v.from),
		TextBody: text,
		HTMLBody: fmt.Sprintf("<p>Beste %s,</p><p>Je %s op <b>%s</b> van <b>%s</b> tot <b>%s</b> is geannuleerd.</p>",
			html.EscapeString(user.FirstName), v.kind, v.date, v.from, v.to),
	}
}
