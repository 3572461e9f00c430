package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/mock"
	bsslog "github.com/fwojciec/blocksearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordService(t *testing.T) {
	t.Parallel()

	t.Run("logs created record after the id is assigned", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := debugLogger(&buf)
		inner := &mock.RecordService{
			CreateRecordFn: func(_ context.Context, r *blocksearch.Record) error {
				r.ID = "rec-1"
				return nil
			},
		}

		err := bsslog.NewLoggingRecordService(inner, logger).CreateRecord(context.Background(), &blocksearch.Record{
			Source:   "page.html",
			Template: "product",
			Position: 2,
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "create record")
		assert.Contains(t, output, "id=rec-1")
		assert.Contains(t, output, "template=product")
		assert.Contains(t, output, "position=2")
	})

	t.Run("logs record count of queries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := debugLogger(&buf)
		inner := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ blocksearch.RecordFilter) ([]*blocksearch.Record, error) {
				return []*blocksearch.Record{{ID: "a"}, {ID: "b"}}, nil
			},
		}

		records, err := bsslog.NewLoggingRecordService(inner, logger).FindRecords(context.Background(), blocksearch.RecordFilter{})

		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("logs deletions at info level with errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			DeleteRecordsBySourceFn: func(_ context.Context, _ string) (int, error) {
				return 0, errors.New("disk full")
			},
		}

		_, err := bsslog.NewLoggingRecordService(inner, logger).DeleteRecordsBySource(context.Background(), "page.html")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "delete records")
		assert.Contains(t, output, "source=page.html")
		assert.Contains(t, output, `err="disk full"`)
	})

	t.Run("logs deleted count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordService{
			DeleteRecordsBySourceFn: func(_ context.Context, _ string) (int, error) {
				return 4, nil
			},
		}

		n, err := bsslog.NewLoggingRecordService(inner, debugLogger(&buf)).DeleteRecordsBySource(context.Background(), "page.html")

		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Contains(t, buf.String(), "count=4")
	})

	t.Run("passes lookups through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordService{
			FindRecordByIDFn: func(_ context.Context, _ string) (*blocksearch.Record, error) {
				return nil, blocksearch.Errorf(blocksearch.ENOTFOUND, "record not found")
			},
		}

		_, err := bsslog.NewLoggingRecordService(inner, debugLogger(&buf)).FindRecordByID(context.Background(), "x")

		assert.Equal(t, blocksearch.ENOTFOUND, blocksearch.ErrorCode(err))
		assert.Contains(t, buf.String(), "find record")
		assert.Contains(t, buf.String(), "id=x")
	})
}
