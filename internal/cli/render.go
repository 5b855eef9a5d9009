package cli

import (
	"fmt"
	"io"
	"strings"

	"pet-wellness-timeline/internal/domain/timeline"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// ancho máximo de la columna de título; el resto se trunca con "…"
const titleWidth = 32

func renderTimeline(w io.Writer, format string, showFull bool, res timeline.Result) error {
	if format == OutputJSON {
		return writeJSON(w, timeline.NewTimelineView("", showFull, res))
	}

	if len(res.Days) == 0 {
		_, err := fmt.Fprintln(w, "No events yet.")
		return err
	}

	for i, d := range res.Days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", d.Label, d.Date.Format("2006-01-02"))

		rows := make([][]string, 0, len(d.Events))
		for _, e := range d.Events {
			rows = append(rows, []string{
				e.Timestamp.In(res.Now.Location()).Format("15:04"),
				string(e.Type),
				string(e.Status),
				runewidth.Truncate(e.Title, titleWidth, "…"),
				formatMetrics(e.Metrics),
			})
		}
		writeTable(w, []string{"TIME", "TYPE", "STATUS", "TITLE", "DETAILS"}, rows)
	}

	if hidden := res.HiddenEvents(); hidden > 0 {
		fmt.Fprintf(w, "\n%d more events hidden (use --full)\n", hidden)
	}

	p := res.Progress
	fmt.Fprintf(w, "\nToday: %d min · %s km · %d kcal\n",
		p.Minutes, strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", p.Distance), "0"), "."), p.Calories)

	if len(res.Alerts) > 0 {
		fmt.Fprintln(w)
		return renderAlerts(w, OutputTable, res.Alerts)
	}
	return nil
}

func renderAlerts(w io.Writer, format string, alerts []timeline.UrgentAlert) error {
	if format == OutputJSON {
		return writeJSON(w, timeline.NewAlertsView(alerts))
	}

	if len(alerts) == 0 {
		_, err := fmt.Fprintln(w, "No urgent alerts.")
		return err
	}

	fmt.Fprintf(w, "Urgent alerts (%d)\n", len(alerts))
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{
			string(a.Type),
			runewidth.Truncate(a.Title, titleWidth, "…"),
			a.Description,
			a.EventID,
		})
	}
	writeTable(w, []string{"TYPE", "TITLE", "OVERDUE", "RECORD"}, rows)
	return nil
}

func formatMetrics(ms []timeline.Metric) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, m.Label+" "+m.Value)
	}
	return strings.Join(parts, ", ")
}

// writeTable alinea columnas por ancho de display (emojis y acentos incluidos).
func writeTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string) {
		var b strings.Builder
		b.WriteString("  ")
		for i, c := range cells {
			if i == len(cells)-1 {
				b.WriteString(c)
				break
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
			b.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	line(headers)
	for _, row := range rows {
		line(row)
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
