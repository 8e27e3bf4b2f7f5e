// pkg/transform/statements.go
package transform

import (
	"fmt"

	"github.com/lib/pq"
)

// Step is one named transformation statement. Steps run in order, inside a
// single transaction, so a failed run leaves the previous tables in place.
type Step struct {
	Name string
	SQL  string
}

// stepTemplates is the ordered transformation sequence. %[1]s is the quoted
// schema. The sequence rebuilds the cleaned table and the four derived tables
// from netflix_raw, so re-running a transform is safe.
var stepTemplates = []Step{
	{
		Name: "drop_clean_table",
		SQL:  `DROP TABLE IF EXISTS %[1]s.netflix`,
	},
	{
		// One row per (title, type): the export repeats a handful of titles
		// under different show_ids, and the lowest show_id wins.
		Name: "create_clean_table",
		SQL: `
CREATE TABLE %[1]s.netflix AS
WITH ranked AS (
    SELECT
        show_id,
        type,
        title,
        date_added,
        release_year,
        rating,
        duration,
        description,
        ROW_NUMBER() OVER (PARTITION BY title, type ORDER BY show_id) AS rn
    FROM %[1]s.netflix_raw
)
SELECT
    show_id,
    type,
    title,
    date_added,
    release_year,
    rating,
    duration,
    description
FROM ranked
WHERE rn = 1
`,
	},
	{
		Name: "add_clean_primary_key",
		SQL:  `ALTER TABLE %[1]s.netflix ADD PRIMARY KEY (show_id)`,
	},
	{
		// The export writes dates in the written month form
		// ("September 25, 2021").
		Name: "coerce_date_added",
		SQL: `
ALTER TABLE %[1]s.netflix
    ALTER COLUMN date_added TYPE DATE
    USING TO_DATE(date_added, 'Month DD, YYYY')
`,
	},
	{
		Name: "coerce_release_year",
		SQL: `
ALTER TABLE %[1]s.netflix
    ALTER COLUMN release_year TYPE INT
    USING release_year::INT
`,
	},
	{
		// A few rows carry the duration in the rating column and NULL in
		// duration. Copy the value back where it looks like one.
		Name: "repair_shifted_duration",
		SQL: `
UPDATE %[1]s.netflix
SET duration = rating
WHERE duration IS NULL
  AND rating ~ '^[0-9]+ (min|Seasons?)$'
`,
	},
	{
		Name: "clear_shifted_rating",
		SQL: `
UPDATE %[1]s.netflix
SET rating = NULL
WHERE rating ~ '^[0-9]+ (min|Seasons?)$'
`,
	},
	{
		Name: "drop_genre_table",
		SQL:  `DROP TABLE IF EXISTS %[1]s.netflix_genre`,
	},
	{
		Name: "create_genre_table",
		SQL: `
CREATE TABLE %[1]s.netflix_genre AS
SELECT nr.show_id, TRIM(g.genre) AS genre
FROM %[1]s.netflix_raw nr
CROSS JOIN UNNEST(STRING_TO_ARRAY(nr.listed_in, ',')) AS g(genre)
WHERE nr.listed_in IS NOT NULL
`,
	},
	{
		Name: "drop_directors_table",
		SQL:  `DROP TABLE IF EXISTS %[1]s.netflix_directors`,
	},
	{
		Name: "create_directors_table",
		SQL: `
CREATE TABLE %[1]s.netflix_directors AS
SELECT nr.show_id, TRIM(d.director) AS director
FROM %[1]s.netflix_raw nr
CROSS JOIN UNNEST(STRING_TO_ARRAY(nr.director, ',')) AS d(director)
WHERE nr.director IS NOT NULL
`,
	},
	{
		Name: "drop_cast_table",
		SQL:  `DROP TABLE IF EXISTS %[1]s.netflix_cast`,
	},
	{
		// cast is a reserved word, hence the quoting.
		Name: "create_cast_table",
		SQL: `
CREATE TABLE %[1]s.netflix_cast AS
SELECT nr.show_id, TRIM(c.cast_member) AS cast_member
FROM %[1]s.netflix_raw nr
CROSS JOIN UNNEST(STRING_TO_ARRAY(nr."cast", ',')) AS c(cast_member)
WHERE nr."cast" IS NOT NULL
`,
	},
	{
		Name: "drop_country_table",
		SQL:  `DROP TABLE IF EXISTS %[1]s.netflix_country`,
	},
	{
		Name: "create_country_table",
		SQL: `
CREATE TABLE %[1]s.netflix_country AS
SELECT nr.show_id, TRIM(c.country) AS country
FROM %[1]s.netflix_raw nr
CROSS JOIN UNNEST(STRING_TO_ARRAY(nr.country, ',')) AS c(country)
WHERE nr.country IS NOT NULL
`,
	},
	{
		// Rows without a country borrow the countries their directors are
		// known for elsewhere in the catalog.
		Name: "backfill_country",
		SQL: `
INSERT INTO %[1]s.netflix_country (show_id, country)
SELECT DISTINCT nd.show_id, dc.country
FROM %[1]s.netflix_directors nd
JOIN (
    SELECT nd2.director, nc.country
    FROM %[1]s.netflix_directors nd2
    JOIN %[1]s.netflix_country nc ON nc.show_id = nd2.show_id
    GROUP BY nd2.director, nc.country
) dc ON dc.director = nd.director
JOIN %[1]s.netflix_raw nr ON nr.show_id = nd.show_id
WHERE nr.country IS NULL
`,
	},
	{
		Name: "index_genre_show_id",
		SQL:  `CREATE INDEX IF NOT EXISTS netflix_genre_show_id_idx ON %[1]s.netflix_genre (show_id)`,
	},
	{
		Name: "index_directors_show_id",
		SQL:  `CREATE INDEX IF NOT EXISTS netflix_directors_show_id_idx ON %[1]s.netflix_directors (show_id)`,
	},
	{
		Name: "index_cast_show_id",
		SQL:  `CREATE INDEX IF NOT EXISTS netflix_cast_show_id_idx ON %[1]s.netflix_cast (show_id)`,
	},
	{
		Name: "index_country_show_id",
		SQL:  `CREATE INDEX IF NOT EXISTS netflix_country_show_id_idx ON %[1]s.netflix_country (show_id)`,
	},
}

// Steps renders the ordered transformation sequence for a schema.
func Steps(schema string) []Step {
	if schema == "" {
		schema = "public"
	}
	quoted := pq.QuoteIdentifier(schema)

	steps := make([]Step, len(stepTemplates))
	for i, step := range stepTemplates {
		step.SQL = fmt.Sprintf(step.SQL, quoted)
		steps[i] = step
	}
	return steps
}
