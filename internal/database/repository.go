package database

import (
	"context"
	"errors"

	"github.com/cinegraph/cinegraph-api/internal/database/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConcurrentUpdate = errors.New("concurrent update detected: version mismatch")
)

// ImportLedger handles import bookkeeping for catalog feed entries. It is
// the dedupe and resume point for the importer: an entry recorded as
// completed is never pushed to the graph again.
type ImportLedger interface {
	CreateRecord(ctx context.Context, rec *models.ImportRecord) (int64, error)
	GetRecordByGUID(ctx context.Context, guid string) (*models.ImportRecord, error)
	UpdateRecordStatus(ctx context.Context, id int64, currentVersion int, status models.ImportStatus, errorMsg string) error

	Watermark(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[models.ImportStatus]int64, error)
}
