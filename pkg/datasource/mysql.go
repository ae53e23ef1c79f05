// Package datasource provides access to the target MySQL analytics store:
// connectivity checks, schema introspection, and read-query execution.
package datasource

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/apperrors"
	"github.com/nsight-ai/nsight-engine/pkg/config"
	"github.com/nsight-ai/nsight-engine/pkg/models"
)

const (
	// sampleRowLimit caps the sample rows fetched per table during introspection.
	sampleRowLimit = 3

	// columnsQuery reads the catalog in table-then-ordinal order so column
	// order in the description matches the table definition.
	columnsQuery = `
		SELECT table_name, column_name, data_type, column_type
		FROM information_schema.columns
		WHERE table_schema = ?
		ORDER BY table_name, ordinal_position`
)

// Store is the boundary the pipeline consumes. Implementations own their
// connections per call; nothing is pooled across requests.
type Store interface {
	// TestConnection verifies the store is reachable with valid credentials.
	TestConnection(ctx context.Context) error

	// Introspect reads the catalog plus per-table row counts and sample rows.
	// A store with zero user tables yields an empty description, not an error.
	Introspect(ctx context.Context) (models.SchemaDescription, error)

	// Execute runs a validated read query and materializes a typed table.
	Execute(ctx context.Context, sqlQuery string) (*models.ResultTable, error)
}

// MySQL implements Store against a MySQL database.
type MySQL struct {
	database string
	logger   *zap.Logger

	// connect opens a fresh connection; overridable in tests.
	connect func(ctx context.Context) (*sqlx.DB, error)
}

// NewMySQL creates a store for the configured database.
func NewMySQL(cfg *config.DatabaseConfig, logger *zap.Logger) *MySQL {
	dsn := cfg.DSN()
	return &MySQL{
		database: cfg.Name,
		logger:   logger.Named("datasource"),
		connect: func(ctx context.Context) (*sqlx.DB, error) {
			return sqlx.ConnectContext(ctx, "mysql", dsn)
		},
	}
}

// TestConnection implements Store.
func (m *MySQL) TestConnection(ctx context.Context) error {
	db, err := m.connect(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	var one int
	if err := db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return fmt.Errorf("ping query: %w", err)
	}
	return nil
}

// Introspect implements Store.
func (m *MySQL) Introspect(ctx context.Context) (models.SchemaDescription, error) {
	db, err := m.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSchemaUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, columnsQuery, m.database)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog query: %v", apperrors.ErrSchemaUnavailable, err)
	}
	defer rows.Close()

	var (
		desc  models.SchemaDescription
		index = make(map[string]int)
	)
	for rows.Next() {
		var tableName, columnName, dataType, columnType string
		if err := rows.Scan(&tableName, &columnName, &dataType, &columnType); err != nil {
			return nil, fmt.Errorf("%w: scan catalog row: %v", apperrors.ErrSchemaUnavailable, err)
		}
		i, ok := index[tableName]
		if !ok {
			i = len(desc)
			index[tableName] = i
			desc = append(desc, models.TableDescription{Name: tableName})
		}
		desc[i].Columns = append(desc[i].Columns, models.ColumnDescriptor{
			Name:     columnName,
			DataType: dataType,
			FullType: columnType,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSchemaUnavailable, err)
	}

	// Row counts and sample rows are best-effort: one broken table must not
	// block the whole description.
	for i := range desc {
		if err := m.enrichTable(ctx, db, &desc[i]); err != nil {
			m.logger.Debug("table enrichment failed",
				zap.String("table", desc[i].Name),
				zap.Error(err))
		}
	}

	return desc, nil
}

// enrichTable fills in row count and sample rows for one table.
func (m *MySQL) enrichTable(ctx context.Context, db *sqlx.DB, table *models.TableDescription) error {
	var count int64
	if err := db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM `%s`", table.Name)); err != nil {
		return fmt.Errorf("row count: %w", err)
	}
	table.RowCount = count

	rows, err := db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM `%s` LIMIT %d", table.Name, sampleRowLimit))
	if err != nil {
		return fmt.Errorf("sample rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		sample := make(map[string]any)
		if err := rows.MapScan(sample); err != nil {
			return fmt.Errorf("scan sample row: %w", err)
		}
		table.SampleRows = append(table.SampleRows, normalizeRow(sample))
	}
	return rows.Err()
}

// Execute implements Store. Store errors are wrapped and propagated, not
// swallowed: a failed validated query is fatal to the request.
func (m *MySQL) Execute(ctx context.Context, sqlQuery string) (*models.ResultTable, error) {
	db, err := m.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", apperrors.ErrExecutionFailed, err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExecutionFailed, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns: %v", apperrors.ErrExecutionFailed, err)
	}

	var records []map[string]any
	for rows.Next() {
		record := make(map[string]any)
		if err := rows.MapScan(record); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", apperrors.ErrExecutionFailed, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExecutionFailed, err)
	}

	return models.NewResultTable(columns, records), nil
}

// normalizeRow makes driver values JSON-friendly: byte slices become strings
// and timestamps become formatted strings.
func normalizeRow(row map[string]any) map[string]any {
	for k, v := range row {
		switch x := v.(type) {
		case []byte:
			row[k] = string(x)
		case time.Time:
			row[k] = x.Format("2006-01-02 15:04:05")
		}
	}
	return row
}

// Ensure MySQL implements Store at compile time.
var _ Store = (*MySQL)(nil)
