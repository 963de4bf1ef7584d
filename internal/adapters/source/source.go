// Package source loads shot logs into memory.
package source

import (
	"context"

	"github.com/okian/shotzone/internal/domain/model"
)

// Source yields the full, ordered shot log for one report run.
type Source interface {
	// Load reads every shot. It fails before returning any records if the
	// source is missing, unreadable or contains an invalid row.
	Load(ctx context.Context) ([]model.ShotRecord, error)
}

// Static is a Source over records already in memory.
type Static []model.ShotRecord

// Load returns a copy of the records.
func (s Static) Load(ctx context.Context) ([]model.ShotRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.ShotRecord(nil), s...), nil
}
