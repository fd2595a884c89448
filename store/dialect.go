package store

import (
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Driver names accepted by [Open].
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Drivers returns the accepted driver names.
func Drivers() []string {
	return []string{DriverSQLite, DriverMySQL, DriverPostgres}
}

type dialect struct {
	driver string
	serial string // primary key column definition
	text   string // column type for rendered cells
	dollar bool   // numbered placeholders
}

func dialectOf(driver string) (dialect, bool) {
	switch driver {
	case DriverSQLite:
		return dialect{driver, "INTEGER PRIMARY KEY AUTOINCREMENT", "TEXT", false}, true

	case DriverMySQL:
		return dialect{driver, "BIGINT AUTO_INCREMENT PRIMARY KEY", "TEXT", false}, true

	case DriverPostgres:
		return dialect{driver, "BIGSERIAL PRIMARY KEY", "TEXT", true}, true

	default:
		return dialect{}, false
	}
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id ` + d.serial + `,
			label ` + d.text + ` NOT NULL,
			created ` + d.text + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_rows (
			snapshot_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			name ` + d.text + ` NOT NULL,
			envir ` + d.text + ` NOT NULL,
			expr ` + d.text + ` NOT NULL,
			value ` + d.text + ` NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		)`,
	}
}

// rebind rewrites ? placeholders for drivers that number them.
func (d dialect) rebind(query string) string {
	if !d.dollar {
		return query
	}

	var (
		b strings.Builder
		n int
	)

	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)

			continue
		}

		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
