// pkg/analysis/report_test.go
package analysis

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRender(t *testing.T) {
	t.Run("renders all sections", func(t *testing.T) {
		report := &Report{
			GeneratedAt: time.Date(2021, 9, 25, 12, 0, 0, 0, time.UTC),
			VersatileDirectors: []DirectorKindCounts{
				{Director: "Kirsten Johnson", MovieCount: 2, ShowCount: 1},
			},
			TopComedyCountry: &CountryComedyCount{Country: "United States", MovieCount: 14},
			YearlyTopDirectors: []YearTopDirector{
				{Year: 2021, Director: "Rajiv Chilaka", MovieCount: 5},
			},
			GenreDurations: []GenreAverageDuration{
				{Genre: "Documentaries", AvgMinutes: 88.5},
			},
			CrossGenreDirectors: []CrossGenreDirector{
				{Director: "Sam Raimi", HorrorCount: 2, ComedyCount: 1},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf))
		out := buf.String()

		assert.Contains(t, out, "Kirsten Johnson")
		assert.Contains(t, out, "United States")
		assert.Contains(t, out, "Rajiv Chilaka")
		assert.Contains(t, out, "88.5")
		assert.Contains(t, out, "Sam Raimi")
	})

	t.Run("handles missing comedy country", func(t *testing.T) {
		report := &Report{GeneratedAt: time.Now()}

		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf))
		assert.Contains(t, buf.String(), "(no data)")
	})
}

func TestRenderSchema(t *testing.T) {
	t.Run("substitutes the quoted schema", func(t *testing.T) {
		a := &Analyzer{schema: "staging"}
		query := a.render(`SELECT * FROM %[1]s.netflix JOIN %[1]s.netflix_genre USING (show_id)`)

		assert.NotContains(t, query, "%[1]s")
		assert.Equal(t, 2, strings.Count(query, `"staging".`))
	})

	t.Run("defaults to public", func(t *testing.T) {
		a := &Analyzer{}
		assert.Contains(t, a.render(`%[1]s.netflix`), `"public".netflix`)
	})
}
