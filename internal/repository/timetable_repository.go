package repository

import (
	"context"
	"errors"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTimetableNotFound = errors.New("timetable entry not found")

// dayOrder sorts weekday names chronologically instead of alphabetically.
const dayOrder = `CASE day
	WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3
	WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6
	ELSE 7 END`

// TimetableRepository handles timetable entry data access.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

// List retrieves all timetable entries ordered by weekday then time slot.
func (r *TimetableRepository) List(ctx context.Context) ([]model.TimetableEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, day, time_slot, subject, class_name, teacher_name, created_by, created_at
		 FROM timetable_entries ORDER BY `+dayOrder+`, time_slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TimetableEntry
	for rows.Next() {
		var e model.TimetableEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.TimeSlot, &e.Subject,
			&e.ClassName, &e.TeacherName, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create inserts a new timetable entry.
func (r *TimetableRepository) Create(ctx context.Context, e *model.TimetableEntry) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO timetable_entries (day, time_slot, subject, class_name, teacher_name, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.Day, e.TimeSlot, e.Subject, e.ClassName, e.TeacherName, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
}

// Update applies a partial merge to an existing entry.
func (r *TimetableRepository) Update(ctx context.Context, id int, req *model.UpdateTimetableRequest) (*model.TimetableEntry, error) {
	e := &model.TimetableEntry{}
	err := r.pool.QueryRow(ctx,
		`UPDATE timetable_entries SET
		   day          = COALESCE($1, day),
		   time_slot    = COALESCE($2, time_slot),
		   subject      = COALESCE($3, subject),
		   class_name   = COALESCE($4, class_name),
		   teacher_name = COALESCE($5, teacher_name)
		 WHERE id = $6
		 RETURNING id, day, time_slot, subject, class_name, teacher_name, created_by, created_at`,
		req.Day, req.Time, req.Subject, req.Class, req.Teacher, id,
	).Scan(&e.ID, &e.Day, &e.TimeSlot, &e.Subject, &e.ClassName,
		&e.TeacherName, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTimetableNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes a timetable entry by ID.
func (r *TimetableRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTimetableNotFound
	}
	return nil
}
