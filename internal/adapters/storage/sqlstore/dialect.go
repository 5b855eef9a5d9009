package sqlstore

import "fmt"

// Dialect cubre lo poco que cambia entre Postgres y SQLite para este repo:
// placeholders y tipos de columna.
type Dialect struct {
	Name string

	bind      func(n int) string
	timeCol   func(col string) string
	timestamp string
	real      string
}

var (
	Postgres = Dialect{
		Name:      "postgres",
		bind:      func(n int) string { return fmt.Sprintf("$%d", n) },
		timeCol:   func(col string) string { return col },
		timestamp: "TIMESTAMPTZ",
		real:      "DOUBLE PRECISION",
	}
	// En SQLite el driver convierte columnas DATETIME a time.Time en UTC y
	// pierde la diferencia entre "2026-10-19" y un instante: se lee el texto.
	SQLite = Dialect{
		Name:      "sqlite",
		bind:      func(int) string { return "?" },
		timeCol:   func(col string) string { return "CAST(" + col + " AS TEXT)" },
		timestamp: "DATETIME",
		real:      "REAL",
	}
)

// Bind devuelve el placeholder del argumento n (1-based).
func (d Dialect) Bind(n int) string {
	return d.bind(n)
}

// TimeCol es la expresión SELECT para una columna de fecha.
func (d Dialect) TimeCol(col string) string {
	return d.timeCol(col)
}
