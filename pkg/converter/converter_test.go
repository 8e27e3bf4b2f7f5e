// pkg/converter/converter_test.go
package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prabhav9252/netflix-elt/pkg/model"
)

func TestVarcharTypeForWidth(t *testing.T) {
	c := NewTypeConverter()

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"rounds up to smallest bucket", 9, "VARCHAR(16)"},
		{"exact bucket boundary", 16, "VARCHAR(16)"},
		{"just over a boundary", 17, "VARCHAR(32)"},
		{"typical title width", 104, "VARCHAR(128)"},
		{"long description", 770, "VARCHAR(1024)"},
		{"over threshold becomes text", 4096, "TEXT"},
		{"unmeasured column becomes text", 0, "TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.VarcharTypeForWidth(tt.width))
		})
	}
}

func TestProfileColumns(t *testing.T) {
	c := NewTypeConverter()

	titles := []model.Title{
		{ShowID: "s1", Type: "Movie", Title: "Short", Country: "United States"},
		{ShowID: "s100", Type: "TV Show", Title: "A considerably longer title"},
	}

	columns := c.ProfileColumns(titles)
	require.Len(t, columns, len(model.RawColumns))

	byName := make(map[string]model.Column, len(columns))
	for _, col := range columns {
		byName[col.Name] = col
	}

	assert.Equal(t, 4, byName["show_id"].MaxWidth)
	assert.Equal(t, 27, byName["title"].MaxWidth)
	assert.False(t, byName["show_id"].Nullable)
	assert.True(t, byName["country"].Nullable) // empty in the second record
	assert.True(t, byName["director"].Nullable)
	assert.Equal(t, 0, byName["director"].MaxWidth)
}

func TestBuildRawTableMetadata(t *testing.T) {
	c := NewTypeConverter()

	titles := []model.Title{
		{ShowID: "s1", Type: "Movie", Title: "A", Duration: "90 min"},
	}

	metadata := c.BuildRawTableMetadata("public", "netflix_raw", titles)
	require.NotNil(t, metadata)
	assert.Equal(t, "public", metadata.Schema)
	assert.Equal(t, "netflix_raw", metadata.Table)
	assert.Equal(t, []string{"show_id"}, metadata.PrimaryKeys)

	showID := metadata.GetColumnByName("show_id")
	require.NotNil(t, showID)
	assert.True(t, showID.IsPrimaryKey)
	assert.False(t, showID.Nullable)
	assert.Equal(t, "VARCHAR(16)", showID.PgType)

	director := metadata.GetColumnByName("director")
	require.NotNil(t, director)
	assert.Equal(t, "TEXT", director.PgType)
}

func TestGenerateColumnDefinitions(t *testing.T) {
	c := NewTypeConverter()

	t.Run("quotes names and marks the key", func(t *testing.T) {
		metadata := &model.TableMetadata{
			Schema: "public",
			Table:  "netflix_raw",
			Columns: []model.Column{
				{Name: "show_id", PgType: "VARCHAR(16)", IsPrimaryKey: true},
				{Name: "cast", PgType: "VARCHAR(1024)", Nullable: true},
			},
		}

		defs, err := c.GenerateColumnDefinitions(metadata)
		require.NoError(t, err)
		require.Len(t, defs, 2)
		assert.Equal(t, `"show_id" VARCHAR(16) NOT NULL`, defs[0])
		assert.Equal(t, `"cast" VARCHAR(1024) NULL`, defs[1])
	})

	t.Run("rejects untyped columns", func(t *testing.T) {
		metadata := &model.TableMetadata{
			Columns: []model.Column{{Name: "show_id"}},
		}
		_, err := c.GenerateColumnDefinitions(metadata)
		assert.Error(t, err)
	})

	t.Run("rejects empty metadata", func(t *testing.T) {
		_, err := c.GenerateColumnDefinitions(nil)
		assert.Error(t, err)
	})
}
