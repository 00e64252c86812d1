package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dronetrack/internal/domain"
)

// CommandLogRepo persists the audit trail of dispatched segment commands.
// The log is append-only; this service is not the owner of order state.
type CommandLogRepo struct{ db *pgxpool.Pool }

// NewCommandLogRepo creates a new CommandLogRepo.
func NewCommandLogRepo(db *pgxpool.Pool) *CommandLogRepo { return &CommandLogRepo{db: db} }

// CommandRecord is one audit entry of the command log.
type CommandRecord struct {
	ID           int64
	OrderID      string
	Kind         string
	SegmentIndex int
	LockerID     string
	DroneID      string
	GCSID        string
	Accepted     bool
	Reason       string
	IssuedAt     time.Time
	CreatedAt    time.Time
}

// Record appends one audit entry for a dispatched command.
func (r *CommandLogRepo) Record(ctx context.Context, cmd domain.Command, accepted bool, reason string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO command_log(order_id, kind, segment_index, locker_id, drone_id, gcs_id, accepted, reason, issued_at)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, cmd.OrderID, string(cmd.Kind), cmd.SegmentIndex, cmd.LockerID, cmd.DroneID, cmd.GCSID, accepted, reason, cmd.IssuedAt)
	if err != nil {
		return fmt.Errorf("record %s command for order %s: %w", cmd.Kind, cmd.OrderID, err)
	}
	return nil
}

// ListByOrder returns the audit entries of one order, newest first.
func (r *CommandLogRepo) ListByOrder(ctx context.Context, orderID string, limit int) ([]CommandRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, kind, segment_index, locker_id, drone_id, gcs_id, accepted, reason, issued_at, created_at
        FROM command_log
        WHERE order_id = $1
        ORDER BY id DESC
        LIMIT $2
    `, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("list commands for order %s: %w", orderID, err)
	}
	defer rows.Close()

	out := make([]CommandRecord, 0, limit)
	for rows.Next() {
		var rec CommandRecord
		if err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.Kind, &rec.SegmentIndex, &rec.LockerID,
			&rec.DroneID, &rec.GCSID, &rec.Accepted, &rec.Reason, &rec.IssuedAt, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
