package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrSlotNotFound is returned when loading a save slot that does not exist.
var ErrSlotNotFound = errors.New("persist: save slot not found")

// SlotInfo describes one stored save slot.
type SlotInfo struct {
	Slot    string
	Size    int
	SavedAt time.Time
}

// SavegameRepo stores encoded save files in Postgres, keyed by slot name.
// The blob is the full save-file container including its checksum, so a
// slot read back goes through the same verification as a file on disk.
type SavegameRepo struct {
	db *DB
}

func NewSavegameRepo(db *DB) *SavegameRepo {
	return &SavegameRepo{db: db}
}

// Put stores (or replaces) a save slot.
func (r *SavegameRepo) Put(ctx context.Context, slot string, data []byte) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO savegames (slot, data, saved_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, saved_at = now()`,
		slot, data,
	)
	if err != nil {
		return fmt.Errorf("put savegame %q: %w", slot, err)
	}
	return nil
}

// Get returns the stored blob for a slot.
func (r *SavegameRepo) Get(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT data FROM savegames WHERE slot = $1`, slot,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("get savegame %q: %w", slot, err)
	}
	return data, nil
}

// List returns all slots, most recently saved first.
func (r *SavegameRepo) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT slot, length(data), saved_at FROM savegames ORDER BY saved_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list savegames: %w", err)
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var info SlotInfo
		if err := rows.Scan(&info.Slot, &info.Size, &info.SavedAt); err != nil {
			return nil, fmt.Errorf("scan savegame row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (r *SavegameRepo) Delete(ctx context.Context, slot string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM savegames WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("delete savegame %q: %w", slot, err)
	}
	return nil
}
