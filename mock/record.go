package mock

import (
	"context"

	"github.com/fwojciec/blocksearch"
)

var _ blocksearch.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of blocksearch.RecordService.
type RecordService struct {
	CreateRecordFn          func(ctx context.Context, record *blocksearch.Record) error
	FindRecordByIDFn        func(ctx context.Context, id string) (*blocksearch.Record, error)
	FindRecordsFn           func(ctx context.Context, filter blocksearch.RecordFilter) ([]*blocksearch.Record, error)
	DeleteRecordsBySourceFn func(ctx context.Context, source string) (int, error)
}

func (s *RecordService) CreateRecord(ctx context.Context, record *blocksearch.Record) error {
	return s.CreateRecordFn(ctx, record)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*blocksearch.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter blocksearch.RecordFilter) ([]*blocksearch.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecordsBySource(ctx context.Context, source string) (int, error) {
	return s.DeleteRecordsBySourceFn(ctx, source)
}
