package timeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// ErrMalformedDate: fecha de un registro fuente que no se pudo interpretar.
var ErrMalformedDate = errors.New("malformed date")

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999-07",
		"2006-01-02 15:04:05.999999999 -0700 MST", // time.Time.String()
	}
	civilLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// Date es el momento de un registro fuente tal como lo entrega el backend.
// Con zona ("2026-10-19T08:00:00Z") es un instante absoluto. Sin zona
// ("2026-10-19", "2026-10-19T08:00") es una fecha/hora civil: no pertenece a
// ninguna zona hasta que el timeline la ubica con Resolve.
type Date struct {
	t     time.Time // civil: reloj de pared guardado en UTC
	civil bool
	raw   string // texto ilegible, se reporta como Issue
}

// DateOf envuelve un instante absoluto.
func DateOf(t time.Time) Date {
	return Date{t: t}
}

// CivilDate es una fecha sin hora ni zona.
func CivilDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), civil: true}
}

// ParseDate acepta RFC3339 (y variantes con espacio) o fechas/horas sin zona.
// Ante texto ilegible devuelve un Date que conserva el texto y ErrMalformedDate.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}, nil
		}
	}
	for _, layout := range civilLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t, civil: true}, nil
		}
	}
	d := Date{raw: s}
	return d, d.Err()
}

func (d Date) IsZero() bool {
	return d.t.IsZero() && d.raw == ""
}

// IsCivil indica si el valor llegó sin zona.
func (d Date) IsCivil() bool {
	return d.civil
}

// Err es ErrMalformedDate si el valor no se pudo interpretar.
func (d Date) Err() error {
	if d.raw == "" {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrMalformedDate, d.raw)
}

// Resolve devuelve el instante. Una fecha civil toma la zona loc con el mismo
// reloj de pared; un instante absoluto se devuelve sin cambios.
func (d Date) Resolve(loc *time.Location) time.Time {
	if !d.civil {
		return d.t
	}
	if loc == nil {
		loc = time.Local
	}
	y, m, day := d.t.Date()
	hh, mm, ss := d.t.Clock()
	return time.Date(y, m, day, hh, mm, ss, d.t.Nanosecond(), loc)
}

func (d Date) String() string {
	switch {
	case d.raw != "":
		return d.raw
	case d.t.IsZero():
		return ""
	case !d.civil:
		return d.t.Format(time.RFC3339Nano)
	case d.t.Equal(d.t.Truncate(24 * time.Hour)):
		return d.t.Format("2006-01-02")
	default:
		return d.t.Format("2006-01-02T15:04:05.999999999")
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return sonic.Marshal(d.String())
}

// UnmarshalJSON nunca falla por el contenido: un valor ilegible queda en el
// Date y el normalizer omite solo ese evento.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := sonic.Unmarshal(b, &s); err != nil {
		*d = Date{raw: string(b)}
		return nil
	}
	*d, _ = ParseDate(s)
	return nil
}
