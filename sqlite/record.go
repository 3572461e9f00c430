package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/blocksearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ blocksearch.RecordService = (*RecordService)(nil)

// RecordService implements blocksearch.RecordService using SQLite. Fields
// are stored as a JSON object.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

const recordColumns = "id, source, template, position, fields, content_hash, created_at"

// CreateRecord stores a new record, assigning its ID and CreatedAt. When
// ContentHash is empty it is computed from the encoded fields.
func (s *RecordService) CreateRecord(ctx context.Context, record *blocksearch.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	fields := record.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return blocksearch.Errorf(blocksearch.EINVALID, "record fields are not serializable: %v", err)
	}

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC().Truncate(time.Second)
	if record.ContentHash == "" {
		record.ContentHash = hashContent(string(encoded))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Source, record.Template, record.Position, string(encoded),
		record.ContentHash, record.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*blocksearch.Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blocksearch.Errorf(blocksearch.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindRecords retrieves records matching the filter.
func (s *RecordService) FindRecords(ctx context.Context, filter blocksearch.RecordFilter) ([]*blocksearch.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM records WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Template != nil {
		query.WriteString(" AND template = ?")
		args = append(args, *filter.Template)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY source ASC, template ASC, position ASC, created_at ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*blocksearch.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteRecordsBySource removes every record extracted from source.
func (s *RecordService) DeleteRecordsBySource(ctx context.Context, source string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE source = ?", source)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*blocksearch.Record, error) {
	var record blocksearch.Record
	var fields, createdAt string

	if err := row.Scan(&record.ID, &record.Source, &record.Template, &record.Position,
		&fields, &record.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fields), &record.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}

	var err error
	if record.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &record, nil
}
