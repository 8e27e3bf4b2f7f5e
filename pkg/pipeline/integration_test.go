// pkg/pipeline/integration_test.go
package pipeline

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prabhav9252/netflix-elt/pkg/config"
	"github.com/Prabhav9252/netflix-elt/pkg/connector"
	"github.com/Prabhav9252/netflix-elt/pkg/transform"
)

const integrationSchema = "netflix_elt_it"

// fixtureCSV exercises the interesting rows of the real export: a duplicate
// (title, type) pair under two show_ids, a repeated show_id, a row with the
// duration misfiled in the rating column, multi-valued fields, a row whose
// country must be backfilled from its director, and a show_id padded with
// whitespace.
const fixtureCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,As her father nears the end of his life the filmmaker stages his death.
s2,TV Show,Blood & Water,,"Ama Qamata, Khosi Ngema",South Africa,"September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas",A Cape Town teen sets out to prove a stranger is her sister.
s3,Movie,Louis C.K. 2017,Louis C.K.,Louis C.K.,United States,"April 4, 2017",2017,74 min,,Movies,Stand-up special.
s4,Movie,Midnight Runner,Kirsten Johnson,,,"January 15, 2020",2019,R,95 min,"Dramas, Thrillers",A courier uncovers a smuggling ring.
s5,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"October 1, 2021",2020,PG-13,90 min,Documentaries,Duplicate catalog entry for the same film.
s6,TV Show,Dick Johnson Is Dead,,,,"March 3, 2021",2021,TV-14,1 Season,Docuseries,Companion series.
 s7 ,Movie,Extraction 2,Sam Hargrave,"Chris Hemsworth, Golshifteh Farahani","United States, Canada","June 16, 2023",2023,R,100 min,Action & Adventure,Back from the brink.
s1,Movie,Dick Johnson Is Dead (again),Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,Repeated show_id from a bad export merge.
`

func TestPipelineEndToEnd(t *testing.T) {
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Skipf("Skipping test - no database configuration available: %v", err)
	}
	cfg.Source.CSVPath = writeFixture(t)
	cfg.Source.Limit = 0
	cfg.ChunkSize = 3 // small enough to force several insert batches
	cfg.Postgres.Schema = integrationSchema

	ctx := context.Background()
	conn, err := connector.NewPostgresConnector(ctx, cfg.Postgres)
	if err != nil {
		t.Skipf("Skipping test - no database connection available: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	t.Cleanup(func() { dropSchema(conn.DB()) })
	require.NoError(t, conn.Validate())

	summary, err := New(cfg, conn).Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary)

	t.Run("summary reflects the run", func(t *testing.T) {
		assert.True(t, summary.Succeeded())
		assert.Equal(t, int64(8), summary.RowsExtracted)
		assert.Equal(t, int64(7), summary.RowsLoaded)
		assert.Equal(t, int64(1), summary.RowsDropped)
		assert.Equal(t, 2, summary.CleaningOperations)
		assert.Equal(t, len(transform.Steps(integrationSchema)), summary.TransformSteps)
		assert.Zero(t, summary.ChecksFailed)
		assert.NotZero(t, summary.ChecksPassed)
		assert.NotNil(t, summary.Analysis)
	})

	t.Run("deduplicates on title and type", func(t *testing.T) {
		rawCount, err := conn.CountRows(ctx, integrationSchema, "netflix_raw")
		require.NoError(t, err)
		assert.Equal(t, int64(7), rawCount)

		cleanCount, err := conn.CountRows(ctx, integrationSchema, "netflix")
		require.NoError(t, err)
		assert.Equal(t, int64(6), cleanCount)

		var showID string
		err = conn.DB().QueryRowContext(ctx,
			`SELECT show_id FROM netflix_elt_it.netflix WHERE title = 'Dick Johnson Is Dead' AND type = 'Movie'`,
		).Scan(&showID)
		require.NoError(t, err)
		assert.Equal(t, "s1", showID, "the lowest show_id should win")
	})

	t.Run("coerces column types", func(t *testing.T) {
		var added time.Time
		var year int
		err := conn.DB().QueryRowContext(ctx,
			`SELECT date_added, release_year FROM netflix_elt_it.netflix WHERE show_id = 's1'`,
		).Scan(&added, &year)
		require.NoError(t, err)
		assert.Equal(t, 2021, added.Year())
		assert.Equal(t, time.September, added.Month())
		assert.Equal(t, 25, added.Day())
		assert.Equal(t, 2020, year)
	})

	t.Run("repairs the shifted duration", func(t *testing.T) {
		var duration string
		var rating sql.NullString
		err := conn.DB().QueryRowContext(ctx,
			`SELECT duration, rating FROM netflix_elt_it.netflix WHERE show_id = 's3'`,
		).Scan(&duration, &rating)
		require.NoError(t, err)
		assert.Equal(t, "74 min", duration)
		assert.False(t, rating.Valid, "the misfiled rating should be cleared")
	})

	t.Run("splits multi-valued fields", func(t *testing.T) {
		var genres []string
		err := conn.DBX().SelectContext(ctx, &genres,
			`SELECT genre FROM netflix_elt_it.netflix_genre WHERE show_id = 's2' ORDER BY genre`)
		require.NoError(t, err)
		assert.Equal(t, []string{"International TV Shows", "TV Dramas"}, genres)

		var castCount int
		err = conn.DB().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM netflix_elt_it.netflix_cast WHERE show_id = 's7'`,
		).Scan(&castCount)
		require.NoError(t, err)
		assert.Equal(t, 2, castCount)
	})

	t.Run("backfills country from the director", func(t *testing.T) {
		var countries []string
		err := conn.DBX().SelectContext(ctx, &countries,
			`SELECT country FROM netflix_elt_it.netflix_country WHERE show_id = 's4'`)
		require.NoError(t, err)
		assert.Equal(t, []string{"United States"}, countries)
	})

	t.Run("records cleaning operations under the run id", func(t *testing.T) {
		var count int
		err := conn.DB().QueryRowContext(ctx,
			`SELECT COUNT(*) FROM netflix_elt_it.netflix_cleaning_log WHERE run_id = $1`,
			summary.RunID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 2, count, "one whitespace trim and one duplicate drop")
	})

	t.Run("rerun replaces the previous load", func(t *testing.T) {
		again, err := New(cfg, conn).Run(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, summary.RunID, again.RunID)
		assert.Equal(t, summary.RowsLoaded, again.RowsLoaded)

		rawCount, err := conn.CountRows(ctx, integrationSchema, "netflix_raw")
		require.NoError(t, err)
		assert.Equal(t, int64(7), rawCount)
	})
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netflix_titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	return path
}

func dropSchema(db *sql.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+integrationSchema+" CASCADE")
}
