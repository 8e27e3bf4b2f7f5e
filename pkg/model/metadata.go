// pkg/model/metadata.go
package model

import "strings"

// TableMetadata contains the structure information for a database table
type TableMetadata struct {
	Schema      string   // Schema name
	Table       string   // Table name
	Columns     []Column // Column definitions
	PrimaryKeys []string // List of primary key column names
}

// Column represents metadata about a database column
type Column struct {
	Name         string // Column name
	PgType       string // PostgreSQL type
	MaxWidth     int    // Widest value observed during extraction (0 if unknown)
	Nullable     bool   // Whether column allows NULL values
	IsPrimaryKey bool   // Whether column is part of primary key
}

// GetColumnByName returns a column by name (case-insensitive)
// Returns nil if column not found
func (tm *TableMetadata) GetColumnByName(name string) *Column {
	normalizedName := normalizeColumnName(name)
	for i, col := range tm.Columns {
		if normalizeColumnName(col.Name) == normalizedName {
			return &tm.Columns[i]
		}
	}
	return nil
}

// ColumnNames returns the column names in definition order.
func (tm *TableMetadata) ColumnNames() []string {
	names := make([]string, len(tm.Columns))
	for i, col := range tm.Columns {
		names[i] = col.Name
	}
	return names
}

// QualifiedName returns the schema-qualified table name.
func (tm *TableMetadata) QualifiedName() string {
	if tm.Schema == "" {
		return tm.Table
	}
	return tm.Schema + "." + tm.Table
}

func normalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
