// pkg/analysis/queries.go
package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/connector"
)

// Genre labels as they appear in the catalog's listed_in field.
const (
	comedyGenre = "Comedies"
	horrorGenre = "Horror Movies"
)

// Analyzer runs the aggregate analyses against the transformed tables
type Analyzer struct {
	db      *sqlx.DB
	schema  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer bound to a connected database
func NewAnalyzer(conn *connector.PostgresConnector) *Analyzer {
	return &Analyzer{
		db:      conn.DBX(),
		schema:  conn.Schema(),
		timeout: conn.StatementTimeout(),
		logger:  zap.L().Named("analysis"),
	}
}

// Run executes every analysis and assembles the report.
func (a *Analyzer) Run(ctx context.Context) (*Report, error) {
	startTime := time.Now()
	report := &Report{GeneratedAt: startTime.UTC()}

	var err error
	if report.VersatileDirectors, err = a.DirectorsWithBothKinds(ctx); err != nil {
		return nil, err
	}
	if report.TopComedyCountry, err = a.TopComedyCountry(ctx); err != nil {
		return nil, err
	}
	if report.YearlyTopDirectors, err = a.TopDirectorPerYear(ctx); err != nil {
		return nil, err
	}
	if report.GenreDurations, err = a.AverageDurationByGenre(ctx); err != nil {
		return nil, err
	}
	if report.CrossGenreDirectors, err = a.HorrorComedyDirectors(ctx); err != nil {
		return nil, err
	}

	a.logger.Info("Analysis complete", zap.Duration("duration", time.Since(startTime)))
	return report, nil
}

// DirectorsWithBothKinds finds directors credited on at least one movie and
// one TV show, with counts per kind.
func (a *Analyzer) DirectorsWithBothKinds(ctx context.Context) ([]DirectorKindCounts, error) {
	query := a.render(`
SELECT nd.director,
       COUNT(DISTINCT CASE WHEN n.type = 'Movie' THEN n.show_id END)   AS movie_count,
       COUNT(DISTINCT CASE WHEN n.type = 'TV Show' THEN n.show_id END) AS show_count
FROM %[1]s.netflix n
JOIN %[1]s.netflix_directors nd ON n.show_id = nd.show_id
GROUP BY nd.director
HAVING COUNT(DISTINCT n.type) = 2
ORDER BY nd.director
`)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var results []DirectorKindCounts
	if err := a.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("directors-with-both-kinds query failed: %w", err)
	}
	return results, nil
}

// TopComedyCountry finds the country with the most comedy movies. Returns nil
// without error when the catalog has none.
func (a *Analyzer) TopComedyCountry(ctx context.Context) (*CountryComedyCount, error) {
	query := a.render(`
SELECT nc.country, COUNT(DISTINCT ng.show_id) AS movie_count
FROM %[1]s.netflix_genre ng
JOIN %[1]s.netflix_country nc ON ng.show_id = nc.show_id
JOIN %[1]s.netflix n ON ng.show_id = n.show_id
WHERE ng.genre = $1 AND n.type = 'Movie'
GROUP BY nc.country
ORDER BY movie_count DESC, nc.country
LIMIT 1
`)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var result CountryComedyCount
	err := a.db.GetContext(ctx, &result, query, comedyGenre)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("top-comedy-country query failed: %w", err)
	}
	return &result, nil
}

// TopDirectorPerYear finds, for every year titles were added, the director
// with the most movies; ties break alphabetically.
func (a *Analyzer) TopDirectorPerYear(ctx context.Context) ([]YearTopDirector, error) {
	query := a.render(`
WITH yearly AS (
    SELECT nd.director,
           EXTRACT(YEAR FROM n.date_added)::INT AS year,
           COUNT(n.show_id) AS movie_count
    FROM %[1]s.netflix n
    JOIN %[1]s.netflix_directors nd ON n.show_id = nd.show_id
    WHERE n.type = 'Movie' AND n.date_added IS NOT NULL
    GROUP BY nd.director, EXTRACT(YEAR FROM n.date_added)
),
ranked AS (
    SELECT year, director, movie_count,
           ROW_NUMBER() OVER (PARTITION BY year ORDER BY movie_count DESC, director) AS rn
    FROM yearly
)
SELECT year, director, movie_count
FROM ranked
WHERE rn = 1
ORDER BY year
`)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var results []YearTopDirector
	if err := a.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("top-director-per-year query failed: %w", err)
	}
	return results, nil
}

// AverageDurationByGenre computes the average movie running time per genre.
func (a *Analyzer) AverageDurationByGenre(ctx context.Context) ([]GenreAverageDuration, error) {
	query := a.render(`
SELECT ng.genre,
       ROUND(AVG(SPLIT_PART(n.duration, ' ', 1)::INT), 1)::FLOAT8 AS avg_minutes
FROM %[1]s.netflix n
JOIN %[1]s.netflix_genre ng ON n.show_id = ng.show_id
WHERE n.type = 'Movie' AND n.duration IS NOT NULL
GROUP BY ng.genre
ORDER BY avg_minutes DESC
`)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var results []GenreAverageDuration
	if err := a.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("average-duration-by-genre query failed: %w", err)
	}
	return results, nil
}

// HorrorComedyDirectors finds directors with at least one horror movie and
// one comedy, with counts per genre.
func (a *Analyzer) HorrorComedyDirectors(ctx context.Context) ([]CrossGenreDirector, error) {
	query := a.render(`
SELECT nd.director,
       COUNT(DISTINCT CASE WHEN ng.genre = $1 THEN n.show_id END) AS horror_count,
       COUNT(DISTINCT CASE WHEN ng.genre = $2 THEN n.show_id END) AS comedy_count
FROM %[1]s.netflix n
JOIN %[1]s.netflix_genre ng ON n.show_id = ng.show_id
JOIN %[1]s.netflix_directors nd ON n.show_id = nd.show_id
WHERE n.type = 'Movie' AND ng.genre IN ($1, $2)
GROUP BY nd.director
HAVING COUNT(DISTINCT ng.genre) = 2
ORDER BY nd.director
`)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var results []CrossGenreDirector
	if err := a.db.SelectContext(ctx, &results, query, horrorGenre, comedyGenre); err != nil {
		return nil, fmt.Errorf("horror-comedy-directors query failed: %w", err)
	}
	return results, nil
}

// render substitutes the quoted schema into a query template.
func (a *Analyzer) render(query string) string {
	schema := a.schema
	if schema == "" {
		schema = "public"
	}
	return fmt.Sprintf(query, pq.QuoteIdentifier(schema))
}
