// pkg/cleaner/cleaner.go
package cleaner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/model"
)

// DataCleaner handles row-level cleaning on the way into the raw table
type DataCleaner struct {
	db     *sql.DB
	schema string
	runID  string
	logger *zap.Logger
}

// NewDataCleaner creates a new DataCleaner instance and ensures the audit table exists
func NewDataCleaner(db *sql.DB, schema, runID string) (*DataCleaner, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if runID == "" {
		return nil, errors.New("run ID cannot be empty")
	}
	if schema == "" {
		schema = "public"
	}

	cleaner := &DataCleaner{
		db:     db,
		schema: schema,
		runID:  runID,
		logger: zap.L().Named("cleaner"),
	}

	// Ensure the cleaning table exists
	if err := cleaner.setupCleaningTable(); err != nil {
		return nil, fmt.Errorf("failed to setup cleaning table: %w", err)
	}

	return cleaner, nil
}

// setupCleaningTable ensures the netflix_cleaning_log tracking table exists
func (c *DataCleaner) setupCleaningTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.netflix_cleaning_log (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			table_name TEXT NOT NULL,
			column_name TEXT NOT NULL,
			original_value TEXT,
			new_value TEXT NOT NULL,
			row_identifier TEXT NOT NULL,
			cleaning_operation TEXT NOT NULL,
			cleaning_reason TEXT NOT NULL,
			cleaned_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`, pq.QuoteIdentifier(c.schema))

	_, err := c.db.ExecContext(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	c.logger.Info("Ensured netflix_cleaning_log table exists")
	return nil
}

// CleanTitles cleans extracted records in memory and returns the surviving
// rows with the operations performed. Field values are scrubbed of control
// characters and trimmed; rows without a usable show_id and rows repeating an
// already-seen show_id are dropped so the primary key insert cannot fail.
// Nothing is persisted here; callers record the operations separately.
func (c *DataCleaner) CleanTitles(titles []model.Title, table string) ([]model.Title, []model.CleaningOperation) {
	cleaned := make([]model.Title, 0, len(titles))
	var operations []model.CleaningOperation
	seen := make(map[string]struct{}, len(titles))

	for i, title := range titles {
		for _, col := range model.RawColumns {
			value, _ := title.Field(col)
			newValue, changes := cleanField(value)
			if newValue != value {
				title.SetField(col, newValue)
			}
			for _, change := range changes {
				operations = append(operations, model.CleaningOperation{
					RunID:             c.runID,
					TableName:         table,
					ColumnName:        col,
					OriginalValue:     change.Original,
					NewValue:          change.NewValue,
					RowIdentifier:     rowIdentifier(title.ShowID, i),
					CleaningOperation: change.Operation,
					CleaningReason:    change.Reason,
				})
			}
		}

		if title.ShowID == "" {
			operations = append(operations, model.CleaningOperation{
				RunID:             c.runID,
				TableName:         table,
				ColumnName:        "show_id",
				OriginalValue:     nil,
				NewValue:          "",
				RowIdentifier:     rowIdentifier("", i),
				CleaningOperation: model.OpMissingKeyDrop,
				CleaningReason:    "missing_show_id",
			})
			continue
		}

		if _, dup := seen[title.ShowID]; dup {
			operations = append(operations, model.CleaningOperation{
				RunID:             c.runID,
				TableName:         table,
				ColumnName:        "show_id",
				OriginalValue:     title.ShowID,
				NewValue:          "",
				RowIdentifier:     title.ShowID,
				CleaningOperation: model.OpDuplicateDrop,
				CleaningReason:    "duplicate_show_id_in_source",
			})
			continue
		}
		seen[title.ShowID] = struct{}{}

		cleaned = append(cleaned, title)
	}

	c.logger.Info("Cleaned extracted rows",
		zap.Int("rows_in", len(titles)),
		zap.Int("rows_out", len(cleaned)),
		zap.Int("operations", len(operations)))

	return cleaned, operations
}

// RecordCleaningOperations batch inserts cleaning operations into the tracking table
func (c *DataCleaner) RecordCleaningOperations(ctx context.Context, operations []model.CleaningOperation) error {
	if len(operations) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Begin transaction
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				c.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	// Prepare statement
	insertSQL := fmt.Sprintf(`
		INSERT INTO %s.netflix_cleaning_log
		(run_id, table_name, column_name, original_value, new_value,
		 row_identifier, cleaning_operation, cleaning_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pq.QuoteIdentifier(c.schema))

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	// Execute batch insert
	for _, op := range operations {
		_, err = stmt.ExecContext(ctx,
			op.RunID,
			op.TableName,
			op.ColumnName,
			toNullableString(op.OriginalValue),
			op.NewValue,
			op.RowIdentifier,
			op.CleaningOperation,
			op.CleaningReason,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cleaning operation: %w", err)
		}
	}

	// Commit transaction
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.logger.Info("Recorded cleaning operations", zap.Int("count", len(operations)))
	return nil
}

// rowIdentifier returns the audit identifier for a record: its show_id when
// present, otherwise its position in the extracted slice.
func rowIdentifier(showID string, index int) string {
	if showID != "" {
		return showID
	}
	return fmt.Sprintf("row_%d", index+1)
}
