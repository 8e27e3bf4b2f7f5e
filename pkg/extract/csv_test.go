// pkg/extract/csv_test.go
package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prabhav9252/netflix-elt/pkg/config"
)

const validHeader = "show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netflix_titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtract(t *testing.T) {
	t.Run("parses rows into titles", func(t *testing.T) {
		csv := validHeader + "\n" +
			`s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,"As her father nears the end of his life, filmmaker Kirsten Johnson stages his death."` + "\n" +
			`s2,TV Show,Blood & Water,,"Ama Qamata, Khosi Ngema",South Africa,"September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas",After crossing paths at a party.` + "\n"

		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: writeTempCSV(t, csv)})
		titles, err := extractor.Extract(context.Background())
		require.NoError(t, err)
		require.Len(t, titles, 2)

		assert.Equal(t, "s1", titles[0].ShowID)
		assert.Equal(t, "Movie", titles[0].Type)
		assert.Equal(t, "Kirsten Johnson", titles[0].Director)
		assert.Equal(t, "", titles[0].Cast)
		assert.Equal(t, "September 25, 2021", titles[0].DateAdded)

		assert.Equal(t, "TV Show", titles[1].Type)
		assert.Equal(t, "Ama Qamata, Khosi Ngema", titles[1].Cast)
		assert.Equal(t, "", titles[1].Director)
	})

	t.Run("handles quoted multiline descriptions", func(t *testing.T) {
		csv := validHeader + "\n" +
			"s1,Movie,Example,,,,,2020,,90 min,,\"line one\nline two\"\n"

		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: writeTempCSV(t, csv)})
		titles, err := extractor.Extract(context.Background())
		require.NoError(t, err)
		require.Len(t, titles, 1)
		assert.Equal(t, "line one\nline two", titles[0].Description)
	})

	t.Run("honors extraction limit", func(t *testing.T) {
		csv := validHeader + "\n" +
			"s1,Movie,A,,,,,2020,,90 min,,\n" +
			"s2,Movie,B,,,,,2020,,91 min,,\n" +
			"s3,Movie,C,,,,,2020,,92 min,,\n"

		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: writeTempCSV(t, csv), Limit: 2})
		titles, err := extractor.Extract(context.Background())
		require.NoError(t, err)
		assert.Len(t, titles, 2)
	})

	t.Run("tolerates utf8 bom on header", func(t *testing.T) {
		csv := "\ufeff" + validHeader + "\n" +
			"s1,Movie,A,,,,,2020,,90 min,,\n"

		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: writeTempCSV(t, csv)})
		titles, err := extractor.Extract(context.Background())
		require.NoError(t, err)
		assert.Len(t, titles, 1)
	})

	t.Run("rejects unexpected header", func(t *testing.T) {
		csv := "id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description\n"

		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: writeTempCSV(t, csv)})
		_, err := extractor.Extract(context.Background())
		assert.ErrorIs(t, err, ErrHeaderMismatch)
	})

	t.Run("rejects rows with wrong column count", func(t *testing.T) {
		csv := validHeader + "\n" +
			"s1,Movie,A\n"

		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: writeTempCSV(t, csv)})
		_, err := extractor.Extract(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("fails on missing file", func(t *testing.T) {
		extractor := NewCSVExtractor(&config.SourceConfig{CSVPath: filepath.Join(t.TempDir(), "missing.csv")})
		_, err := extractor.Extract(context.Background())
		assert.Error(t, err)
	})
}

func TestValidateHeader(t *testing.T) {
	t.Run("accepts mixed case and padding", func(t *testing.T) {
		header := []string{
			" Show_ID ", "TYPE", "title", "director", "cast", "country",
			"date_added", "release_year", "rating", "duration", "listed_in", "description",
		}
		assert.NoError(t, validateHeader(header))
	})

	t.Run("rejects short header", func(t *testing.T) {
		assert.ErrorIs(t, validateHeader([]string{"show_id"}), ErrHeaderMismatch)
	})
}
