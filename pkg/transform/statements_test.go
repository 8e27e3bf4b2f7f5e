// pkg/transform/statements_test.go
package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps(t *testing.T) {
	steps := Steps("public")

	t.Run("runs in rebuild order", func(t *testing.T) {
		names := make([]string, len(steps))
		for i, step := range steps {
			names[i] = step.Name
		}

		assert.Equal(t, []string{
			"drop_clean_table",
			"create_clean_table",
			"add_clean_primary_key",
			"coerce_date_added",
			"coerce_release_year",
			"repair_shifted_duration",
			"clear_shifted_rating",
			"drop_genre_table",
			"create_genre_table",
			"drop_directors_table",
			"create_directors_table",
			"drop_cast_table",
			"create_cast_table",
			"drop_country_table",
			"create_country_table",
			"backfill_country",
			"index_genre_show_id",
			"index_directors_show_id",
			"index_cast_show_id",
			"index_country_show_id",
		}, names)
	})

	t.Run("renders the schema into every statement", func(t *testing.T) {
		for _, step := range steps {
			assert.NotContains(t, step.SQL, "%[1]s", "step %s not rendered", step.Name)
			assert.NotContains(t, step.SQL, "%!", "step %s rendered badly", step.Name)
			assert.Contains(t, step.SQL, `"public".`, "step %s missing schema", step.Name)
		}
	})

	t.Run("deduplicates with a window function", func(t *testing.T) {
		step := stepByName(t, steps, "create_clean_table")
		assert.Contains(t, step.SQL, "ROW_NUMBER() OVER (PARTITION BY title, type ORDER BY show_id)")
		assert.Contains(t, step.SQL, "WHERE rn = 1")
	})

	t.Run("quotes the reserved cast column", func(t *testing.T) {
		step := stepByName(t, steps, "create_cast_table")
		assert.Contains(t, step.SQL, `nr."cast"`)
	})

	t.Run("repairs duration before clearing rating", func(t *testing.T) {
		repair := stepIndex(steps, "repair_shifted_duration")
		clearRating := stepIndex(steps, "clear_shifted_rating")
		require.GreaterOrEqual(t, repair, 0)
		require.GreaterOrEqual(t, clearRating, 0)
		assert.Less(t, repair, clearRating)
	})

	t.Run("backfills country after the split tables exist", func(t *testing.T) {
		directors := stepIndex(steps, "create_directors_table")
		country := stepIndex(steps, "create_country_table")
		backfill := stepIndex(steps, "backfill_country")
		assert.Less(t, directors, backfill)
		assert.Less(t, country, backfill)
	})
}

func TestStepsSchemaQuoting(t *testing.T) {
	t.Run("defaults to public", func(t *testing.T) {
		steps := Steps("")
		assert.Contains(t, steps[0].SQL, `"public".`)
	})

	t.Run("quotes unusual schema names", func(t *testing.T) {
		steps := Steps("Staging")
		assert.Contains(t, steps[0].SQL, `"Staging".`)
	})
}

func stepByName(t *testing.T, steps []Step, name string) Step {
	t.Helper()
	for _, step := range steps {
		if step.Name == name {
			return step
		}
	}
	t.Fatalf("step %s not found", name)
	return Step{}
}

func stepIndex(steps []Step, name string) int {
	for i, step := range steps {
		if step.Name == name {
			return i
		}
	}
	return -1
}

func TestStepSQLWellFormed(t *testing.T) {
	// Single statements only: the driver runs each step as one Exec.
	for _, step := range Steps("public") {
		assert.NotContains(t, strings.TrimSpace(step.SQL), ";",
			"step %s contains multiple statements", step.Name)
	}
}
