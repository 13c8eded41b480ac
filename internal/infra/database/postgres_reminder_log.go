package database

import (
	"context"
	"database/sql"
	"fmt"

	"fithub_backoffice/internal/domain/reminder"
)

type PostgresReminderLog struct {
	db *sql.DB
}

func NewPostgresReminderLog(db *sql.DB) *PostgresReminderLog {
	return &PostgresReminderLog{db: db}
}

// Record inserts a delivery record. A conflicting row (same subject, channel
// and trigger offset) is left untouched; recording the same trigger twice is
// not an error.
func (r *PostgresReminderLog) Record(ctx context.Context, rec *reminder.DeliveryRecord) error {
	query := `INSERT INTO reminder_log (kind, subject_id, channel, offset_days, sent_on)
               VALUES ($1, $2, $3, $4, $5)
               ON CONFLICT (kind, subject_id, channel, offset_days) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, rec.Kind, rec.SubjectID, rec.Channel, rec.OffsetDays, rec.SentOn)
	if err != nil {
		return fmt.Errorf("error recording delivery: %w", err)
	}
	return nil
}

func (r *PostgresReminderLog) Exists(ctx context.Context, kind reminder.Kind, subjectID int64, channel reminder.Channel, offsetDays int) (bool, error) {
	query := `SELECT EXISTS (
                 SELECT 1 FROM reminder_log
                 WHERE kind = $1 AND subject_id = $2 AND channel = $3 AND offset_days = $4)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, kind, subjectID, channel, offsetDays).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking delivery record: %w", err)
	}
	return exists, nil
}
