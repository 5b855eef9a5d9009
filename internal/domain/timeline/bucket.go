package timeline

import (
	"slices"
	"time"
)

// Bucket ordena y agrupa por día calendario (en now.Location()).
//
// Pasado (<= now) va del más reciente al más viejo, futuro del más próximo al
// más lejano; los días se emiten en el orden en que aparecen en esa
// concatenación y cada día se reordena de más nuevo a más viejo.
func Bucket(events []Event, now time.Time) []Day {
	loc := now.Location()

	past := make([]Event, 0, len(events))
	future := make([]Event, 0)
	for _, e := range events {
		if e.Timestamp.After(now) {
			future = append(future, e)
		} else {
			past = append(past, e)
		}
	}

	slices.SortStableFunc(past, newestFirst)
	slices.SortStableFunc(future, func(a, b Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	days := make([]Day, 0)
	index := map[time.Time]int{}
	for _, e := range append(past, future...) {
		key := startOfDay(e.Timestamp, loc)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			offset := dayOffset(now, key, loc)
			days = append(days, Day{
				Date:        key,
				Label:       dayLabel(key, now),
				IsToday:     offset == 0,
				IsYesterday: offset == -1,
			})
		}
		days[i].Events = append(days[i].Events, e)
	}

	for i := range days {
		slices.SortStableFunc(days[i].Events, newestFirst)
	}
	return days
}

func newestFirst(a, b Event) int {
	return b.Timestamp.Compare(a.Timestamp)
}

// Today devuelve el bucket de hoy, si existe.
func Today(days []Day) (Day, bool) {
	for _, d := range days {
		if d.IsToday {
			return d, true
		}
	}
	return Day{}, false
}

// CountEvents suma los eventos de todos los días.
func CountEvents(days []Day) int {
	n := 0
	for _, d := range days {
		n += len(d.Events)
	}
	return n
}
