package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ImportStatus represents the state of a feed entry import
type ImportStatus int

const (
	ImportStatusPending    ImportStatus = 0
	ImportStatusProcessing ImportStatus = 1
	ImportStatusCompleted  ImportStatus = 2
	ImportStatusFailed     ImportStatus = 3
)

// ImportRecord tracks a single catalog feed entry through the import pipeline
type ImportRecord struct {
	bun.BaseModel `bun:"table:import_records,alias:ir"`

	ID           int64        `bun:",pk,autoincrement"`
	GUID         string       `bun:",unique,notnull"`
	Title        string       `bun:",notnull"`
	Status       ImportStatus `bun:",notnull"`
	Version      int          `bun:",notnull,default:1"`
	EntryUpdated int64        `bun:",nullzero"` // feed entry timestamp, unix seconds
	ErrorMessage string       `bun:",nullzero"`
	CreatedAt    time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time    `bun:",nullzero,notnull,default:current_timestamp"`
}
