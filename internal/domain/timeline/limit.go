package timeline

// Limit recorta el timeline a `budget` eventos sin romper el agrupado por día.
// Un día entra completo si cabe; si no, se trunca al presupuesto restante y
// no se incluye ningún día posterior. Nunca se emiten días vacíos.
//
// No usar la salida para alertas ni progreso: ambos leen el timeline completo.
func Limit(days []Day, budget int) []Day {
	if budget <= 0 {
		budget = DefaultDisplayLimit
	}

	out := make([]Day, 0, len(days))
	remaining := budget
	for _, d := range days {
		if remaining <= 0 {
			break
		}
		if len(d.Events) <= remaining {
			out = append(out, d)
			remaining -= len(d.Events)
			continue
		}

		truncated := d
		truncated.Events = append([]Event(nil), d.Events[:remaining]...)
		out = append(out, truncated)
		break
	}
	return out
}
