package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blocksearch"
)

var _ blocksearch.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with logging of writes and
// queries.
type LoggingRecordService struct {
	next   blocksearch.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next blocksearch.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

func (s *LoggingRecordService) CreateRecord(ctx context.Context, record *blocksearch.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create record",
			"source", record.Source,
			"template", record.Template,
			"position", record.Position,
			"id", record.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, record)
}

func (s *LoggingRecordService) FindRecordByID(ctx context.Context, id string) (record *blocksearch.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find record",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByID(ctx, id)
}

func (s *LoggingRecordService) FindRecords(ctx context.Context, filter blocksearch.RecordFilter) (records []*blocksearch.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

func (s *LoggingRecordService) DeleteRecordsBySource(ctx context.Context, source string) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete records",
			"source", source,
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRecordsBySource(ctx, source)
}
