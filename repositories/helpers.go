package repositories

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/lib/pq"
)

// Dialect selects the SQL flavour of a document table.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

var dollarPlaceholder = regexp.MustCompile(`\$(\d+)`)

// rebind rewrites $N placeholders into SQLite's ?N form.
func rebind(d Dialect, query string) string {
	if d == DialectSQLite {
		return dollarPlaceholder.ReplaceAllString(query, "?$1")
	}
	return query
}

// wrapDriverError adds the postgres error code, when there is one, so the
// cause is visible in logs.
func wrapDriverError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: postgres error %s (%s): %w", op, pqErr.Code, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
