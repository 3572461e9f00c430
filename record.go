package blocksearch

import (
	"context"
	"time"
)

// Record is the bound field values of one match, as persisted.
type Record struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Template    string         `json:"template"`
	Position    int            `json:"position"`
	Fields      map[string]any `json:"fields"`
	ContentHash string         `json:"contentHash"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "record source required")
	}
	if r.Template == "" {
		return Errorf(EINVALID, "record template required")
	}
	if r.Position < 0 {
		return Errorf(EINVALID, "record position must not be negative")
	}
	return nil
}

// RecordService represents a service for managing extracted records.
type RecordService interface {
	// CreateRecord stores a new record. ID and CreatedAt are assigned.
	CreateRecord(ctx context.Context, record *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter, ordered by
	// source, template and position.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecordsBySource removes all records extracted from a source.
	// Returns the number of records removed.
	DeleteRecordsBySource(ctx context.Context, source string) (int, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Source      *string `json:"source"`
	Template    *string `json:"template"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
