// pkg/model/cleaning.go
package model

import (
	"time"
)

// CleaningOperation represents a single data cleaning operation applied to a
// record on its way into the raw table. Operations are batch-inserted into
// the netflix_cleaning_log audit table.
type CleaningOperation struct {
	RunID             string      // Pipeline run that performed the cleaning
	TableName         string      // Destination table name
	ColumnName        string      // Column that was cleaned
	OriginalValue     interface{} // Original value (may be nil)
	NewValue          string      // New value after cleaning
	RowIdentifier     string      // show_id of the affected record
	CleaningOperation string      // Type of cleaning performed (e.g., "whitespace_trim")
	CleaningReason    string      // Reason for cleaning (e.g., "leading_or_trailing_space")
	CleanedAt         time.Time   // When the cleaning occurred (set by database)
}

// Cleaning operation names written to the audit table.
const (
	OpWhitespaceTrim   = "whitespace_trim"
	OpEmptyToNull      = "empty_to_null"
	OpControlCharScrub = "control_char_scrub"
	OpDuplicateDrop    = "duplicate_drop"
	OpMissingKeyDrop   = "missing_key_drop"
)
