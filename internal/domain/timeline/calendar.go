package timeline

import (
	"fmt"
	"time"
)

// startOfDay trunca t a medianoche en loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dayOffset devuelve cuántos días calendario hay de `from` a `to` (ambos en loc).
// Se calcula sobre fechas civiles en UTC para no depender de DST.
func dayOffset(from, to time.Time, loc *time.Location) int {
	fy, fm, fd := from.In(loc).Date()
	ty, tm, td := to.In(loc).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return dayOffset(a, b, loc) == 0
}

// dayLabel: Today / Yesterday / Tomorrow / In N days / "Monday, Oct 19".
func dayLabel(day, now time.Time) string {
	loc := now.Location()
	switch n := dayOffset(now, day, loc); {
	case n == 0:
		return "Today"
	case n == -1:
		return "Yesterday"
	case n == 1:
		return "Tomorrow"
	case n > 1:
		return fmt.Sprintf("In %d days", n)
	default:
		return day.In(loc).Format("Monday, Jan 2")
	}
}

// dueStatus compara por día calendario: vencido solo si el día ya pasó.
func dueStatus(due, now time.Time) Status {
	if dayOffset(now, due, now.Location()) < 0 {
		return StatusOverdue
	}
	return StatusUpcoming
}
