// pkg/converter/converter.go
package converter

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/model"
)

// TypeConverter derives PostgreSQL column types for the raw table from the
// values observed during extraction
type TypeConverter struct {
	logger *zap.Logger
	config TypeConverterConfig
}

// TypeConverterConfig provides configuration options for type derivation
type TypeConverterConfig struct {
	// Maximum observed width before a column becomes TEXT
	TextThreshold int
	// VARCHAR headroom buckets; an observed width rounds up to the
	// smallest bucket that fits
	VarcharBuckets []int
}

// DefaultConfig returns the default configuration
func DefaultConfig() TypeConverterConfig {
	return TypeConverterConfig{
		TextThreshold:  2048,
		VarcharBuckets: []int{16, 32, 64, 128, 256, 512, 1024, 2048},
	}
}

// NewTypeConverter creates a new TypeConverter with default configuration
func NewTypeConverter() *TypeConverter {
	return NewTypeConverterWithConfig(DefaultConfig())
}

// NewTypeConverterWithConfig creates a TypeConverter with custom configuration
func NewTypeConverterWithConfig(config TypeConverterConfig) *TypeConverter {
	sort.Ints(config.VarcharBuckets)
	return &TypeConverter{
		logger: zap.L().Named("converter"),
		config: config,
	}
}

// ProfileColumns measures each raw column across the extracted records: the
// maximum value width in runes, and whether any value was empty. The widths
// drive VARCHAR sizing the same way the destination table would have been
// sized by inspecting the file by hand.
func (c *TypeConverter) ProfileColumns(titles []model.Title) []model.Column {
	columns := make([]model.Column, len(model.RawColumns))
	for i, name := range model.RawColumns {
		columns[i] = model.Column{Name: name}
	}

	for _, title := range titles {
		for i, name := range model.RawColumns {
			value, _ := title.Field(name)
			if value == "" {
				columns[i].Nullable = true
				continue
			}
			if width := utf8.RuneCountInString(value); width > columns[i].MaxWidth {
				columns[i].MaxWidth = width
			}
		}
	}

	return columns
}

// BuildRawTableMetadata profiles the extracted records and assembles the
// metadata for the raw table: every column typed from its observed width,
// show_id as the primary key.
func (c *TypeConverter) BuildRawTableMetadata(schema, table string, titles []model.Title) *model.TableMetadata {
	columns := c.ProfileColumns(titles)

	for i := range columns {
		columns[i].PgType = c.VarcharTypeForWidth(columns[i].MaxWidth)
		if columns[i].Name == "show_id" {
			columns[i].IsPrimaryKey = true
			columns[i].Nullable = false
		}
		c.logger.Debug("Profiled column",
			zap.String("column", columns[i].Name),
			zap.Int("max_width", columns[i].MaxWidth),
			zap.String("type", columns[i].PgType))
	}

	return &model.TableMetadata{
		Schema:      schema,
		Table:       table,
		Columns:     columns,
		PrimaryKeys: []string{"show_id"},
	}
}

// VarcharTypeForWidth maps an observed maximum width to a column type.
// Widths round UP to the next bucket: the profile reflects this file only,
// and a re-export with slightly longer values should still fit.
func (c *TypeConverter) VarcharTypeForWidth(width int) string {
	if width <= 0 {
		// Column had no non-empty values to measure
		return "TEXT"
	}
	if width > c.config.TextThreshold {
		return "TEXT"
	}

	for _, bucket := range c.config.VarcharBuckets {
		if width <= bucket {
			return fmt.Sprintf("VARCHAR(%d)", bucket)
		}
	}
	return "TEXT"
}

// GenerateColumnDefinitions creates PostgreSQL column definitions
func (c *TypeConverter) GenerateColumnDefinitions(metadata *model.TableMetadata) ([]string, error) {
	if metadata == nil || len(metadata.Columns) == 0 {
		return nil, fmt.Errorf("no columns to generate definitions for")
	}

	definitions := make([]string, 0, len(metadata.Columns))

	for _, col := range metadata.Columns {
		if col.PgType == "" {
			return nil, fmt.Errorf("column %s has no type", col.Name)
		}

		nullability := "NULL"
		if col.IsPrimaryKey || !col.Nullable {
			nullability = "NOT NULL"
		}

		def := fmt.Sprintf("%s %s %s",
			pq.QuoteIdentifier(strings.ToLower(col.Name)),
			col.PgType,
			nullability)

		definitions = append(definitions, def)
	}

	return definitions, nil
}
