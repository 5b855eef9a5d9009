package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-wellness-timeline/internal/domain/timeline"
)

// nullDate acepta time.Time (pgx con TIMESTAMPTZ) o texto (SQLite).
// El texto sin zona queda como fecha civil; el timeline lo ubica en la zona
// del servicio. Un texto ilegible no corta la carga: se reporta como Issue.
type nullDate struct {
	Date  timeline.Date
	Valid bool
}

func (n *nullDate) Scan(v any) error {
	switch t := v.(type) {
	case nil:
		n.Date, n.Valid = timeline.Date{}, false
		return nil
	case time.Time:
		n.Date, n.Valid = timeline.DateOf(t), true
		return nil
	case string:
		n.parse(t)
		return nil
	case []byte:
		n.parse(string(t))
		return nil
	default:
		return fmt.Errorf("sqlstore: cannot scan %T into date", v)
	}
}

func (n *nullDate) parse(s string) {
	if strings.TrimSpace(s) == "" {
		n.Date, n.Valid = timeline.Date{}, false
		return
	}
	n.Date, _ = timeline.ParseDate(s)
	n.Valid = true
}

func (n nullDate) ptr() *timeline.Date {
	if !n.Valid {
		return nil
	}
	d := n.Date
	return &d
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
