// pkg/quality/checks.go
package quality

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/connector"
	"github.com/Prabhav9252/netflix-elt/pkg/converter"
)

// derivedTables are the normalized tables split out of netflix_raw.
var derivedTables = []string{
	"netflix_genre",
	"netflix_directors",
	"netflix_cast",
	"netflix_country",
}

// maxSampleValues caps how many offending values a check detail quotes.
const maxSampleValues = 3

// CheckResult is one acceptance check outcome.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Checker runs the acceptance checks against the loaded and transformed tables
type Checker struct {
	conn   *connector.PostgresConnector
	logger *zap.Logger
}

// NewChecker creates a checker bound to a connected database
func NewChecker(conn *connector.PostgresConnector) *Checker {
	return &Checker{
		conn:   conn,
		logger: zap.L().Named("quality"),
	}
}

// RunAll executes every acceptance check and returns all results. Failures
// are aggregated into a single error so one bad check does not hide the rest.
func (c *Checker) RunAll(ctx context.Context) ([]CheckResult, error) {
	type namedCheck struct {
		name string
		fn   func(context.Context) (CheckResult, error)
	}

	checks := []namedCheck{
		{"clean_count_within_raw", c.checkRowCounts},
		{"movie_duration_parses", c.checkMovieDurations},
		{"clean_show_id_unique", c.checkShowIDKey},
		{"raw_date_added_parses", c.checkDateAdded},
		{"raw_release_year_integral", c.checkReleaseYear},
	}
	for _, table := range derivedTables {
		table := table
		checks = append(checks, namedCheck{
			name: "show_id_containment_" + table,
			fn: func(ctx context.Context) (CheckResult, error) {
				return c.checkContainment(ctx, table)
			},
		})
	}

	results := make([]CheckResult, 0, len(checks))
	var failures error

	for _, check := range checks {
		result, err := check.fn(ctx)
		if err != nil {
			result = CheckResult{
				Name:   check.name,
				Passed: false,
				Detail: fmt.Sprintf("check could not be evaluated: %v", err),
			}
			failures = multierr.Append(failures, fmt.Errorf("check %s: %w", check.name, err))
		} else if !result.Passed {
			failures = multierr.Append(failures, fmt.Errorf("check %s failed: %s", result.Name, result.Detail))
		}

		c.logger.Info("Ran acceptance check",
			zap.String("check", result.Name),
			zap.Bool("passed", result.Passed),
			zap.String("detail", result.Detail))

		results = append(results, result)
	}

	return results, failures
}

// checkRowCounts verifies deduplication never grows the data: the cleaned
// table must not have more rows than the raw one.
func (c *Checker) checkRowCounts(ctx context.Context) (CheckResult, error) {
	rawCount, err := c.conn.CountRows(ctx, c.conn.Schema(), "netflix_raw")
	if err != nil {
		return CheckResult{}, err
	}
	cleanCount, err := c.conn.CountRows(ctx, c.conn.Schema(), "netflix")
	if err != nil {
		return CheckResult{}, err
	}

	return CheckResult{
		Name:   "clean_count_within_raw",
		Passed: cleanCount <= rawCount,
		Detail: fmt.Sprintf("netflix has %d rows, netflix_raw has %d", cleanCount, rawCount),
	}, nil
}

// checkContainment verifies every show_id in a derived table exists in
// netflix_raw.
func (c *Checker) checkContainment(ctx context.Context, table string) (CheckResult, error) {
	query := fmt.Sprintf(`
SELECT COUNT(*)
FROM %[1]s.%[2]s d
LEFT JOIN %[1]s.netflix_raw nr ON d.show_id = nr.show_id
WHERE nr.show_id IS NULL
`, pq.QuoteIdentifier(c.conn.Schema()), pq.QuoteIdentifier(table))

	ctx, cancel := context.WithTimeout(ctx, c.conn.StatementTimeout())
	defer cancel()

	var orphans int64
	if err := c.conn.DB().QueryRowContext(ctx, query).Scan(&orphans); err != nil {
		return CheckResult{}, fmt.Errorf("containment query on %s failed: %w", table, err)
	}

	return CheckResult{
		Name:   "show_id_containment_" + table,
		Passed: orphans == 0,
		Detail: fmt.Sprintf("%d rows in %s without a matching netflix_raw row", orphans, table),
	}, nil
}

// checkMovieDurations verifies that after the transform, every movie's
// duration parses as whole minutes ("90 min").
func (c *Checker) checkMovieDurations(ctx context.Context) (CheckResult, error) {
	query := fmt.Sprintf(`
SELECT duration
FROM %s.netflix
WHERE type = 'Movie'
`, pq.QuoteIdentifier(c.conn.Schema()))

	values, err := c.selectNullStrings(ctx, query)
	if err != nil {
		return CheckResult{}, fmt.Errorf("movie duration query failed: %w", err)
	}

	var bad []string
	for _, v := range values {
		if !v.Valid {
			bad = append(bad, "NULL")
			continue
		}
		if _, err := converter.ParseDurationMinutes(v.String); err != nil {
			bad = append(bad, v.String)
		}
	}

	return CheckResult{
		Name:   "movie_duration_parses",
		Passed: len(bad) == 0,
		Detail: describeBadValues(len(values), bad),
	}, nil
}

// checkShowIDKey verifies show_id is unique and non-null in the cleaned table.
func (c *Checker) checkShowIDKey(ctx context.Context) (CheckResult, error) {
	query := fmt.Sprintf(`
SELECT COUNT(*) FILTER (WHERE show_id IS NULL),
       COUNT(show_id) - COUNT(DISTINCT show_id)
FROM %s.netflix
`, pq.QuoteIdentifier(c.conn.Schema()))

	ctx, cancel := context.WithTimeout(ctx, c.conn.StatementTimeout())
	defer cancel()

	var nulls, duplicates int64
	if err := c.conn.DB().QueryRowContext(ctx, query).Scan(&nulls, &duplicates); err != nil {
		return CheckResult{}, fmt.Errorf("show_id key query failed: %w", err)
	}

	return CheckResult{
		Name:   "clean_show_id_unique",
		Passed: nulls == 0 && duplicates == 0,
		Detail: fmt.Sprintf("%d null and %d duplicated show_id values", nulls, duplicates),
	}, nil
}

// checkDateAdded verifies every non-null raw date_added value parses in the
// catalog's written month form, so the transform's TO_DATE cannot fail.
func (c *Checker) checkDateAdded(ctx context.Context) (CheckResult, error) {
	query := fmt.Sprintf(`
SELECT date_added
FROM %s.netflix_raw
WHERE date_added IS NOT NULL
`, pq.QuoteIdentifier(c.conn.Schema()))

	values, err := c.selectStrings(ctx, query)
	if err != nil {
		return CheckResult{}, fmt.Errorf("date_added query failed: %w", err)
	}

	var bad []string
	for _, v := range values {
		if _, err := converter.ParseDateAdded(v); err != nil {
			bad = append(bad, v)
		}
	}

	return CheckResult{
		Name:   "raw_date_added_parses",
		Passed: len(bad) == 0,
		Detail: describeBadValues(len(values), bad),
	}, nil
}

// checkReleaseYear verifies every non-null raw release_year is integral, so
// the transform's INT cast cannot fail.
func (c *Checker) checkReleaseYear(ctx context.Context) (CheckResult, error) {
	query := fmt.Sprintf(`
SELECT release_year
FROM %s.netflix_raw
WHERE release_year IS NOT NULL
`, pq.QuoteIdentifier(c.conn.Schema()))

	values, err := c.selectStrings(ctx, query)
	if err != nil {
		return CheckResult{}, fmt.Errorf("release_year query failed: %w", err)
	}

	var bad []string
	for _, v := range values {
		if _, err := converter.ParseReleaseYear(v); err != nil {
			bad = append(bad, v)
		}
	}

	return CheckResult{
		Name:   "raw_release_year_integral",
		Passed: len(bad) == 0,
		Detail: describeBadValues(len(values), bad),
	}, nil
}

func (c *Checker) selectStrings(ctx context.Context, query string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.conn.StatementTimeout())
	defer cancel()

	var values []string
	if err := c.conn.DBX().SelectContext(ctx, &values, query); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *Checker) selectNullStrings(ctx context.Context, query string) ([]sql.NullString, error) {
	ctx, cancel := context.WithTimeout(ctx, c.conn.StatementTimeout())
	defer cancel()

	var values []sql.NullString
	if err := c.conn.DBX().SelectContext(ctx, &values, query); err != nil {
		return nil, err
	}
	return values, nil
}

// describeBadValues summarizes a scan: how many values were checked, how many
// failed, and a few of the failures verbatim.
func describeBadValues(total int, bad []string) string {
	if len(bad) == 0 {
		return fmt.Sprintf("all %d values parse", total)
	}

	samples := bad
	if len(samples) > maxSampleValues {
		samples = samples[:maxSampleValues]
	}
	return fmt.Sprintf("%d of %d values do not parse (e.g. \"%s\")",
		len(bad), total, strings.Join(samples, `", "`))
}
