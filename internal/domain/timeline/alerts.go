package timeline

import (
	"fmt"
	"slices"
	"time"
)

// alertPriority: menor = más urgente. Tipos no listados van al final.
var alertPriority = map[EventType]int{
	EventVaccination: 0,
	EventTreatment:   1,
	EventGrooming:    2,
	EventCheckup:     3,
	EventMeal:        4,
}

const lowestAlertPriority = 5

func priorityOf(t EventType) int {
	if p, ok := alertPriority[t]; ok {
		return p
	}
	return lowestAlertPriority
}

// DeriveAlerts convierte los eventos overdue en alertas. Siempre recibe el
// conjunto completo de eventos, nunca la salida de Limit.
func DeriveAlerts(events []Event, now time.Time) []UrgentAlert {
	out := make([]UrgentAlert, 0)
	for _, e := range events {
		if e.Status != StatusOverdue {
			continue
		}
		days := daysOverdue(e.Timestamp, now)
		out = append(out, UrgentAlert{
			Type:        e.Type,
			Title:       e.Title,
			Description: overdueDescription(days),
			EventID:     sourceID(e),
			DaysOverdue: days,
			Metadata:    e.Metadata,
		})
	}

	slices.SortStableFunc(out, func(a, b UrgentAlert) int {
		if pa, pb := priorityOf(a.Type), priorityOf(b.Type); pa != pb {
			return pa - pb
		}
		return b.DaysOverdue - a.DaysOverdue
	})
	return out
}

func daysOverdue(ts, now time.Time) int {
	d := now.Sub(ts)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

func overdueDescription(days int) string {
	if days == 0 {
		return "Due today"
	}
	return fmt.Sprintf("%d days overdue", days)
}

// sourceID extrae el id del registro fuente; si no hay Details cae al id del evento.
func sourceID(e Event) string {
	if e.Details != nil {
		if id := e.Details.RecordID(); id != "" {
			return id
		}
	}
	return e.ID
}
