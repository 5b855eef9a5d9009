package timeline

import (
	"strconv"
	"strings"
)

// ComputeProgress suma las actividades completadas del bucket de hoy usando
// solo las métricas ya renderizadas en ese bucket.
func ComputeProgress(days []Day) TodayProgress {
	var p TodayProgress

	today, ok := Today(days)
	if !ok {
		return p
	}
	for _, e := range today.Events {
		if e.Type != EventActivity || e.Status != StatusCompleted {
			continue
		}
		if v, ok := e.Metric(MetricDuration); ok {
			p.Minutes += leadingInt(v)
		}
		if v, ok := e.Metric(MetricDistance); ok {
			p.Distance += leadingFloat(v)
		}
		if v, ok := e.Metric(MetricCalories); ok {
			p.Calories += leadingInt(v)
		}
	}
	return p
}

// leadingInt parsea el entero al inicio de s ("30 min" -> 30, "2.5 km" -> 2).
// Sin dígitos devuelve 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// leadingFloat parsea el decimal al inicio de s ("2.5 km" -> 2.5).
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	dot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !dot {
			dot = true
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}
