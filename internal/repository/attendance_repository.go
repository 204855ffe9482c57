package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const attendanceColumns = `id, student_email, student_name, subject, status,
	marked_by, date, session_date`

// AttendanceRepository handles attendance record data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func scanAttendance(row pgx.Row) (*model.AttendanceRecord, error) {
	rec := &model.AttendanceRecord{}
	var sessionDate time.Time
	err := row.Scan(&rec.ID, &rec.StudentEmail, &rec.StudentName, &rec.Subject,
		&rec.Status, &rec.MarkedBy, &rec.Date, &sessionDate)
	if err != nil {
		return nil, err
	}
	rec.SessionDate = sessionDate.Format("2006-01-02")
	return rec, nil
}

// Upsert writes one attendance record keyed by (student_email, subject,
// session_date). An existing record for the key is overwritten: status,
// marked_by, student_name and the marking timestamp are all refreshed, so
// re-marking a session is idempotent rather than duplicating.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	saved, err := scanAttendance(r.pool.QueryRow(ctx,
		`INSERT INTO attendance_records
		   (student_email, student_name, subject, status, marked_by, session_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT ON CONSTRAINT attendance_session_key DO UPDATE SET
		   status       = EXCLUDED.status,
		   marked_by    = EXCLUDED.marked_by,
		   student_name = EXCLUDED.student_name,
		   date         = CURRENT_TIMESTAMP
		 RETURNING `+attendanceColumns,
		rec.StudentEmail, rec.StudentName, rec.Subject, rec.Status,
		rec.MarkedBy, rec.SessionDate))
	if err != nil {
		return err
	}
	*rec = *saved
	return nil
}

// ListByStudent retrieves all records for a student, most recent first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, email string) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+`
		 FROM attendance_records
		 WHERE student_email = LOWER($1)
		 ORDER BY date DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// CountByStatus returns present and absent counts for a student.
func (r *AttendanceRepository) CountByStatus(ctx context.Context, email string) (present, absent int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE status = 'present'),
		   COUNT(*) FILTER (WHERE status = 'absent')
		 FROM attendance_records WHERE student_email = LOWER($1)`, email,
	).Scan(&present, &absent)
	return
}

// Query retrieves records matching the filter, most recent first, capped at
// 100 rows. A date filter expands to the full calendar day.
func (r *AttendanceRepository) Query(ctx context.Context, f model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE 1=1`
	var args []interface{}

	if f.Date != "" {
		day, err := time.Parse("2006-01-02", f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND date >= $1 AND date < $2`
		args = append(args, day, day.AddDate(0, 0, 1))
	}
	if f.Subject != "" {
		query += ` AND subject = $` + strconv.Itoa(len(args)+1)
		args = append(args, f.Subject)
	}
	if f.Status != "" {
		query += ` AND status = $` + strconv.Itoa(len(args)+1)
		args = append(args, f.Status)
	}
	query += ` ORDER BY date DESC LIMIT 100`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// ListAll retrieves every record, most recent first. Used by the full export.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// ListByDateRange retrieves records whose marking timestamp falls inside
// [start, end), most recent first.
func (r *AttendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+`
		 FROM attendance_records
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
