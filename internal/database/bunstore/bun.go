package bunstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cinegraph/cinegraph-api/internal/database"
	"github.com/cinegraph/cinegraph-api/internal/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

type BunStore struct {
	db *bun.DB
}

func NewBunStore(db *sql.DB, dialect schema.Dialect) (*BunStore, error) {
	bunDB := bun.NewDB(db, dialect)

	store := &BunStore{db: bunDB}

	// Create tables if they don't exist
	ctx := context.Background()
	if _, err := bunDB.NewCreateTable().Model((*models.ImportRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create import_records table: %w", err)
	}

	return store, nil
}

// ImportLedger Implementation
func (s *BunStore) CreateRecord(ctx context.Context, rec *models.ImportRecord) (int64, error) {
	if _, err := s.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (s *BunStore) GetRecordByGUID(ctx context.Context, guid string) (*models.ImportRecord, error) {
	rec := new(models.ImportRecord)
	if err := s.db.NewSelect().Model(rec).Where("guid = ?", guid).Scan(ctx); err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *BunStore) UpdateRecordStatus(ctx context.Context, id int64, currentVersion int, status models.ImportStatus, errorMsg string) error {
	res, err := s.db.NewUpdate().Model((*models.ImportRecord)(nil)).
		Set("status = ?", status).
		Set("error_message = ?", errorMsg).
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ? AND version = ?", id, currentVersion).
		Exec(ctx)

	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrConcurrentUpdate
	}
	return nil
}

// Watermark returns the newest feed timestamp among completed imports, or
// zero when nothing has been imported yet.
func (s *BunStore) Watermark(ctx context.Context) (int64, error) {
	var mark sql.NullInt64
	err := s.db.NewSelect().Model((*models.ImportRecord)(nil)).
		ColumnExpr("MAX(entry_updated)").
		Where("status = ?", models.ImportStatusCompleted).
		Scan(ctx, &mark)
	if err != nil {
		return 0, err
	}
	if !mark.Valid {
		return 0, nil
	}
	return mark.Int64, nil
}

func (s *BunStore) CountByStatus(ctx context.Context) (map[models.ImportStatus]int64, error) {
	var rows []struct {
		Status models.ImportStatus `bun:"status"`
		Total  int64               `bun:"total"`
	}
	err := s.db.NewSelect().Model((*models.ImportRecord)(nil)).
		Column("status").
		ColumnExpr("COUNT(*) AS total").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ImportStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
