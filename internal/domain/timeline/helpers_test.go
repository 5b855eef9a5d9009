package timeline

import "time"

// Lunes 19/10/2026 10:00 UTC.
var testNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

// at devuelve testNow desplazado `days` días, a la hora hh:mm.
func at(days, hh, mm int) time.Time {
	d := testNow.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, time.UTC)
}

// on es at como Date absoluto de un registro fuente.
func on(days, hh, mm int) Date {
	return DateOf(at(days, hh, mm))
}

func ptr[T any](v T) *T { return &v }

func eventIDs(evs []Event) []string {
	out := make([]string, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.ID)
	}
	return out
}

func dayLabels(days []Day) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Label)
	}
	return out
}
