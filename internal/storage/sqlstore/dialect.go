package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures what differs between the supported SQL engines
type Dialect struct {
	Name string
	// Driver is the database/sql driver name
	Driver string
	// MigrationsDir is the directory of the embedded migrations for this engine
	MigrationsDir string
	// Numbered placeholders ($1, $2, ...) instead of ?
	Numbered bool
}

var (
	SQLite = Dialect{
		Name:          "sqlite",
		Driver:        "sqlite",
		MigrationsDir: "sqlite",
	}
	Postgres = Dialect{
		Name:          "postgres",
		Driver:        "postgres",
		MigrationsDir: "postgres",
		Numbered:      true,
	}
)

// Rebind rewrites ? placeholders into the dialect's style. Queries in this
// package never carry a literal question mark.
func (d Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
