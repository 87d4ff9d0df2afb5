package appointment

import (
	"time"

	"github.com/igenda-app/igenda-api/internal/models"
)

type AvailabilityInput struct {
	EnterpriseID   uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// WindowOnDate projeta a janela semanal do profissional sobre uma data concreta.
// A janela é armazenada em UTC; a data recebida também deve estar em UTC.
func WindowOnDate(w *models.AvailabilityWindow, date time.Time) (time.Time, time.Time, bool) {
	if w == nil {
		return time.Time{}, time.Time{}, false
	}

	weekday := int(date.Weekday())
	if weekday < w.WeekdayFrom || weekday > w.WeekdayTo {
		return time.Time{}, time.Time{}, false
	}

	from, err := time.Parse("15:04", w.TimeFrom)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("15:04", w.TimeTo)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, false
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), from.Hour(), from.Minute(), 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), to.Hour(), to.Minute(), 0, 0, date.Location())

	return start, end, true
}

// FreeSlots percorre a janela em passos de `duration`, descartando horários
// que colidem com intervalos ocupados ou que já passaram.
// A conta acontece na base de tempo da janela (UTC); os rótulos saem em
// `loc`, o fuso da empresa — o mesmo em que o agendamento será digitado.
func FreeSlots(
	windowStart time.Time,
	windowEnd time.Time,
	duration time.Duration,
	busy []Interval,
	now time.Time,
	loc *time.Location,
) []TimeSlot {

	if duration <= 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	slots := []TimeSlot{}

	for cur := windowStart; !cur.Add(duration).After(windowEnd); cur = cur.Add(duration) {
		end := cur.Add(duration)

		if cur.Before(now) {
			continue
		}

		conflict := false
		for _, b := range busy {
			if cur.Before(b.End) && end.After(b.Start) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: cur.In(loc).Format("15:04"),
			End:   end.In(loc).Format("15:04"),
		})
	}

	return slots
}
