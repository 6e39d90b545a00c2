package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/coursedraft/internal/db"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/google/uuid"
)

// MaxListLimit caps how many history rows a single list returns.
const MaxListLimit = 500

// SQLiteSaveLogRepo implements SaveLogRepo using a SQLite database.
type SQLiteSaveLogRepo struct {
	db db.DBTX
}

func NewSQLiteSaveLogRepo(conn db.DBTX) *SQLiteSaveLogRepo {
	return &SQLiteSaveLogRepo{db: conn}
}

const saveLogColumns = `id, step, course_id, title, outcome, message, latency_ms, created_at`

// Record inserts rec, filling ID and CreatedAt when they are unset.
func (r *SQLiteSaveLogRepo) Record(ctx context.Context, rec *domain.SaveRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}
	query := `INSERT INTO save_log (` + saveLogColumns + `, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM save_log))`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Step.String(),
		rec.CourseID,
		rec.Title,
		string(rec.Outcome),
		rec.Message,
		rec.LatencyMs,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting save record: %w", err)
	}
	return nil
}

func (r *SQLiteSaveLogRepo) GetByID(ctx context.Context, id string) (*domain.SaveRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+saveLogColumns+` FROM save_log WHERE id = ?`, id)
	rec, err := scanSaveRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("save record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning save record: %w", err)
	}
	return rec, nil
}

// ListRecent returns the newest records first.
func (r *SQLiteSaveLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.SaveRecord, error) {
	query := `SELECT ` + saveLogColumns + ` FROM save_log ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, clampLimit(limit, MaxListLimit))
	if err != nil {
		return nil, fmt.Errorf("listing recent saves: %w", err)
	}
	defer rows.Close()
	return scanSaveRecords(rows)
}

func (r *SQLiteSaveLogRepo) ListByCourse(ctx context.Context, courseID string, limit int) ([]*domain.SaveRecord, error) {
	query := `SELECT ` + saveLogColumns + ` FROM save_log WHERE course_id = ? ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, courseID, clampLimit(limit, MaxListLimit))
	if err != nil {
		return nil, fmt.Errorf("listing saves by course: %w", err)
	}
	defer rows.Close()
	return scanSaveRecords(rows)
}

func (r *SQLiteSaveLogRepo) CountByOutcome(ctx context.Context) (map[domain.SaveOutcome]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM save_log GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("counting saves: %w", err)
	}
	defer rows.Close()

	counts := map[domain.SaveOutcome]int{}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning save count: %w", err)
		}
		counts[domain.SaveOutcome(outcome)] = n
	}
	return counts, rows.Err()
}

// Prune keeps the newest keep records and deletes the rest. A keep of zero
// empties the log.
func (r *SQLiteSaveLogRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM save_log WHERE seq NOT IN (SELECT seq FROM save_log ORDER BY seq DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning save log: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaveRecord(row rowScanner) (*domain.SaveRecord, error) {
	var rec domain.SaveRecord
	var step, outcome, createdAt string
	if err := row.Scan(&rec.ID, &step, &rec.CourseID, &rec.Title, &outcome, &rec.Message, &rec.LatencyMs, &createdAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseStep(step)
	if err != nil {
		return nil, err
	}
	rec.Step = parsed
	rec.Outcome = domain.SaveOutcome(outcome)
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

func scanSaveRecords(rows *sql.Rows) ([]*domain.SaveRecord, error) {
	var out []*domain.SaveRecord
	for rows.Next() {
		rec, err := scanSaveRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning save record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
