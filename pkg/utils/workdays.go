package util

import (
	"time"

	"github.com/teambition/rrule-go"
)

// DiasHabiles cuenta los días lunes a viernes dentro del rango, ambos
// extremos incluidos.
func DiasHabiles(inicio, fin time.Time) (int, error) {
	rr, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   inicio,
		Until:     fin,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return 0, err
	}
	return len(rr.All()), nil
}
