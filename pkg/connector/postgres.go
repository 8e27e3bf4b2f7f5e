// pkg/connector/postgres.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Prabhav9252/netflix-elt/pkg/config"
	"github.com/Prabhav9252/netflix-elt/pkg/model"
)

// PostgresConnector manages the destination PostgreSQL database
type PostgresConnector struct {
	db     *sql.DB
	dbx    *sqlx.DB
	logger *zap.Logger
	cfg    *config.PostgresConfig
}

// NewPostgresConnector creates and initializes a new PostgreSQL connector
func NewPostgresConnector(ctx context.Context, cfg *config.PostgresConfig) (*PostgresConnector, error) {
	logger := zap.L().Named("postgres-connector")

	// Log connection attempt
	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	// Open database connection
	connStr := cfg.ConnectionString()
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	// Configure connection pool
	ApplyConnectionSettings(
		db,
		cfg.MaxOpenConns,
		cfg.MaxIdleConns,
		cfg.ConnMaxLifetime,
		cfg.ConnMaxIdleTime,
	)

	// Verify connection
	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	connector := &PostgresConnector{
		db:     db,
		dbx:    sqlx.NewDb(db, "pgx"),
		logger: logger,
		cfg:    cfg,
	}

	LogConnectionStats(logger, cfg.Database, db)
	return connector, nil
}

// DB returns the underlying database connection
func (c *PostgresConnector) DB() *sql.DB {
	return c.db
}

// DBX returns the sqlx wrapper around the same connection pool. The analysis
// queries use it for struct scanning.
func (c *PostgresConnector) DBX() *sqlx.DB {
	return c.dbx
}

// Schema returns the schema the netflix tables live in.
func (c *PostgresConnector) Schema() string {
	return c.cfg.Schema
}

// StatementTimeout returns the configured per-statement timeout.
func (c *PostgresConnector) StatementTimeout() time.Duration {
	return c.cfg.StatementTimeout
}

// Validate verifies the PostgreSQL connection and required permissions
func (c *PostgresConnector) Validate() error {
	// Check database version
	var version string
	err := c.db.QueryRow("SELECT version()").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to query PostgreSQL version: %w", err)
	}
	c.logger.Info("Connected to PostgreSQL", zap.String("version", version))

	// Check permissions by creating a temp table
	_, err = c.db.Exec(`
		DO $$
		BEGIN
			CREATE TEMP TABLE _permission_check (id serial, test text);
			INSERT INTO _permission_check (test) VALUES ('test');
			DROP TABLE _permission_check;
		EXCEPTION WHEN OTHERS THEN
			RAISE EXCEPTION 'Permission check failed: %', SQLERRM;
		END $$;
	`)
	if err != nil {
		return fmt.Errorf("permission validation failed: %w", err)
	}

	// Ensure the working schema exists
	if err := c.ensureSchema(c.cfg.Schema); err != nil {
		return fmt.Errorf("failed to create/verify schema %s: %w", c.cfg.Schema, err)
	}

	c.logger.Info("PostgreSQL connection validated",
		zap.String("database", c.cfg.Database),
		zap.String("schema", c.cfg.Schema),
		zap.String("host", c.cfg.Host),
		zap.Int("port", c.cfg.Port))

	return nil
}

// Close closes the database connection
func (c *PostgresConnector) Close() error {
	c.logger.Info("Closing PostgreSQL connection")
	LogConnectionStats(c.logger, c.cfg.Database, c.db)
	return c.db.Close()
}

// ensureSchema creates a schema if it doesn't exist
func (c *PostgresConnector) ensureSchema(schema string) error {
	_, err := c.db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pq.QuoteIdentifier(schema)))
	if err != nil {
		return err
	}
	return nil
}

// ExecWithTimeout executes a statement with a timeout
func (c *PostgresConnector) ExecWithTimeout(
	ctx context.Context,
	query string,
	timeout time.Duration,
	args ...interface{},
) (sql.Result, error) {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.ExecContext(queryCtx, query, args...)
}

// QueryWithTimeout executes a query with a timeout
func (c *PostgresConnector) QueryWithTimeout(
	ctx context.Context,
	query string,
	timeout time.Duration,
	args ...interface{},
) (*sql.Rows, error) {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.QueryContext(queryCtx, query, args...)
}

// CountRows returns the row count of a table.
func (c *PostgresConnector) CountRows(ctx context.Context, schema, table string) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", QualifyTable(schema, table))

	var count int64
	queryCtx, cancel := context.WithTimeout(ctx, c.cfg.StatementTimeout)
	defer cancel()
	if err := c.db.QueryRowContext(queryCtx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s.%s: %w", schema, table, err)
	}
	return count, nil
}

// BatchInsert performs a bulk insert into a table
func (c *PostgresConnector) BatchInsert(
	ctx context.Context,
	schema string,
	table string,
	columns []string,
	valueRows [][]interface{},
	batchSize int,
) (int64, error) {
	if len(valueRows) == 0 {
		return 0, nil
	}

	if batchSize <= 0 {
		batchSize = 1000
	}

	// Build the base query with quoted identifiers ("cast" is reserved)
	fullTableName := QualifyTable(schema, table)
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
	}
	columnStr := strings.Join(quoted, ", ")

	var totalRowsInserted int64

	// Process in batches
	for i := 0; i < len(valueRows); i += batchSize {
		end := i + batchSize
		if end > len(valueRows) {
			end = len(valueRows)
		}

		currentBatch := valueRows[i:end]

		// Build placeholders for this batch
		placeholders := make([]string, len(currentBatch))
		args := make([]interface{}, 0, len(currentBatch)*len(columns))

		for j, row := range currentBatch {
			rowPlaceholders := make([]string, len(columns))
			for k, val := range row {
				paramIndex := j*len(columns) + k + 1
				rowPlaceholders[k] = fmt.Sprintf("$%d", paramIndex)
				args = append(args, val)
			}
			placeholders[j] = fmt.Sprintf("(%s)", strings.Join(rowPlaceholders, ", "))
		}

		// Construct the query
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			fullTableName, columnStr, strings.Join(placeholders, ", "))

		// Execute with timeout
		result, err := c.ExecWithTimeout(ctx, query, c.cfg.StatementTimeout, args...)
		if err != nil {
			return totalRowsInserted, fmt.Errorf("batch insert failed: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			c.logger.Warn("Couldn't get rows affected", zap.Error(err))
		} else {
			totalRowsInserted += rowsAffected
		}
	}

	return totalRowsInserted, nil
}

// TableExists reports whether a table exists in the schema.
func (c *PostgresConnector) TableExists(ctx context.Context, schema, table string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)
	`

	queryCtx, cancel := context.WithTimeout(ctx, c.cfg.StatementTimeout)
	defer cancel()
	if err := c.db.QueryRowContext(queryCtx, query, schema, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check if table exists: %w", err)
	}
	return exists, nil
}

// CreateTable creates a table from column definitions, dropping any previous
// version first so a reload starts from a clean slate.
func (c *PostgresConnector) CreateTable(
	ctx context.Context,
	metadata *model.TableMetadata,
	columnDefs []string,
) error {
	fullTableName := QualifyTable(metadata.Schema, metadata.Table)

	if err := c.DropTableIfExists(ctx, metadata.Schema, metadata.Table); err != nil {
		return err
	}

	// Build CREATE TABLE statement
	createSQL := fmt.Sprintf(
		"CREATE TABLE %s (\n\t%s",
		fullTableName,
		strings.Join(columnDefs, ",\n\t"),
	)

	// Add primary key if specified
	if len(metadata.PrimaryKeys) > 0 {
		keys := make([]string, len(metadata.PrimaryKeys))
		for i, key := range metadata.PrimaryKeys {
			keys[i] = pq.QuoteIdentifier(key)
		}
		createSQL += fmt.Sprintf(",\n\tPRIMARY KEY (%s)", strings.Join(keys, ", "))
	}
	createSQL += "\n)"

	// Execute CREATE TABLE
	if _, err := c.ExecWithTimeout(ctx, createSQL, c.cfg.StatementTimeout); err != nil {
		return fmt.Errorf("failed to create table %s: %w", fullTableName, err)
	}

	c.logger.Info("Created table", zap.String("table", fullTableName))
	return nil
}

// DropTableIfExists removes a table if present.
func (c *PostgresConnector) DropTableIfExists(ctx context.Context, schema, table string) error {
	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", QualifyTable(schema, table))
	if _, err := c.ExecWithTimeout(ctx, dropSQL, c.cfg.StatementTimeout); err != nil {
		return fmt.Errorf("failed to drop table %s.%s: %w", schema, table, err)
	}
	return nil
}

// QualifyTable returns a safely quoted schema-qualified table name.
func QualifyTable(schema, table string) string {
	if schema == "" {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(table)
}
