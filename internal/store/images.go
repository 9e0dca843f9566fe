package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pasport/internal/slots"
)

// SetImage upserts the encoded image for one slot of a card, or clears
// the slot when data is nil or empty. The slot write and the card's
// updated_at bump happen in one transaction so neither can land
// without the other.
func (s *Store) SetImage(ctx context.Context, cardID int64, slotKey string, data []byte) error {
	if !slots.Valid(slotKey) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slotKey)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin image write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Check the card first so a missing card surfaces as ErrNotFound
	// rather than as the foreign-key violation from the upsert.
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM cards WHERE id = ?`, cardID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check card: %w", err)
	}

	ts := timestamp()
	if len(data) == 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM images WHERE card_id = ? AND slot_key = ?`,
			cardID, slotKey,
		); err != nil {
			return fmt.Errorf("clear slot image: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO images (card_id, slot_key, png, updated_at)
             VALUES (?, ?, ?, ?)
             ON CONFLICT(card_id, slot_key)
             DO UPDATE SET png = excluded.png, updated_at = excluded.updated_at`,
			cardID, slotKey, data, ts,
		); err != nil {
			return fmt.Errorf("upsert slot image: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE cards SET updated_at = ? WHERE id = ?`, ts, cardID)
	if err != nil {
		return fmt.Errorf("touch card: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("touch card rows: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit image write: %w", err)
	}
	return nil
}

// GetImage returns the stored bytes for one slot, or nil if the slot
// is empty.
func (s *Store) GetImage(ctx context.Context, cardID int64, slotKey string) ([]byte, error) {
	if !slots.Valid(slotKey) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slotKey)
	}
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT png FROM images WHERE card_id = ? AND slot_key = ?`,
		cardID, slotKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot image: %w", err)
	}
	return data, nil
}

// ImagesForCard returns a mapping of slot key to stored bytes. Empty
// slots are simply absent from the map.
func (s *Store) ImagesForCard(ctx context.Context, cardID int64) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot_key, png FROM images WHERE card_id = ?`, cardID)
	if err != nil {
		return nil, fmt.Errorf("list slot images: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var data []byte
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("scan slot image: %w", err)
		}
		out[key] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slot images: %w", err)
	}
	return out, nil
}
