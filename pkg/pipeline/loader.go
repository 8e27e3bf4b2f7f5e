// pkg/pipeline/loader.go
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/cleaner"
	"github.com/Prabhav9252/netflix-elt/pkg/config"
	"github.com/Prabhav9252/netflix-elt/pkg/connector"
	"github.com/Prabhav9252/netflix-elt/pkg/converter"
	"github.com/Prabhav9252/netflix-elt/pkg/extract"
	"github.com/Prabhav9252/netflix-elt/pkg/model"
)

// RawTableName is the destination of the bulk load.
const RawTableName = "netflix_raw"

// Loader runs the extract-and-load phase: read the CSV, clean the records,
// create the raw table sized from the observed data, and bulk-insert
type Loader struct {
	cfg    *config.Config
	conn   *connector.PostgresConnector
	logger *zap.Logger
}

// NewLoader creates a loader bound to a connected database
func NewLoader(cfg *config.Config, conn *connector.PostgresConnector) *Loader {
	return &Loader{
		cfg:    cfg,
		conn:   conn,
		logger: zap.L().Named("loader"),
	}
}

// LoadStats summarizes a completed load
type LoadStats struct {
	RowsExtracted      int64
	RowsLoaded         int64
	RowsDropped        int64
	CleaningOperations int
}

// Run executes the load phase once. The raw table is dropped and recreated,
// so re-running a load replaces the previous one.
func (l *Loader) Run(ctx context.Context, runID string) (*LoadStats, error) {
	extractor := extract.NewCSVExtractor(l.cfg.Source)
	titles, err := extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	dataCleaner, err := cleaner.NewDataCleaner(l.conn.DB(), l.conn.Schema(), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}
	cleanedTitles, operations := dataCleaner.CleanTitles(titles, RawTableName)

	// Size the raw table from the cleaned values: what gets measured is what
	// gets stored.
	typeConverter := converter.NewTypeConverter()
	metadata := typeConverter.BuildRawTableMetadata(l.conn.Schema(), RawTableName, cleanedTitles)
	columnDefs, err := typeConverter.GenerateColumnDefinitions(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to generate column definitions: %w", err)
	}

	if err := l.conn.CreateTable(ctx, metadata, columnDefs); err != nil {
		return nil, fmt.Errorf("failed to create raw table: %w", err)
	}

	valueRows := make([][]interface{}, len(cleanedTitles))
	for i, title := range cleanedTitles {
		valueRows[i] = title.Fields()
	}

	rowsInserted, err := l.conn.BatchInsert(ctx, l.conn.Schema(), RawTableName, model.RawColumns, valueRows, l.cfg.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("bulk insert failed: %w", err)
	}

	if err := dataCleaner.RecordCleaningOperations(ctx, operations); err != nil {
		return nil, fmt.Errorf("failed to record cleaning operations: %w", err)
	}

	stats := &LoadStats{
		RowsExtracted:      int64(len(titles)),
		RowsLoaded:         rowsInserted,
		RowsDropped:        int64(len(titles) - len(cleanedTitles)),
		CleaningOperations: len(operations),
	}

	l.logger.Info("Load complete",
		zap.Int64("rows_extracted", stats.RowsExtracted),
		zap.Int64("rows_loaded", stats.RowsLoaded),
		zap.Int64("rows_dropped", stats.RowsDropped),
		zap.Int("cleaning_operations", stats.CleaningOperations))

	return stats, nil
}
