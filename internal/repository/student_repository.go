package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for the student roster and fee ledger.
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrDuplicateMobile       = errors.New("student with this mobile already exists")
	ErrDuplicateEmail        = errors.New("student with this email already exists")
	ErrPaymentExceedsPending = errors.New("payment amount exceeds pending balance")
)

const studentColumns = `id, name, mobile, email, class, board, stream,
	total_fee, fee_paid, fee_discount, parent_name, parent_mobile, address,
	status, created_at, updated_at`

// StudentRepository handles student roster and fee ledger data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Mobile, &s.Email, &s.Class, &s.Board,
		&s.Stream, &s.TotalFee, &s.FeePaid, &s.FeeDiscount, &s.ParentName,
		&s.ParentMobile, &s.Address, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// GetByEmail retrieves a student by their (lowercased) roster email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE LOWER(email) = LOWER($1)`, email))
}

// List retrieves students matching the filter, sorted by class then name.
// Search is a case-insensitive substring match over name, mobile and email.
func (r *StudentRepository) List(ctx context.Context, f model.StudentFilter) ([]model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []interface{}

	if f.Status != "" {
		query += ` AND status = $1`
		args = append(args, f.Status)
	}
	if f.Search != "" {
		query += ` AND (name ILIKE $` + strconv.Itoa(len(args)+1) +
			` OR mobile ILIKE $` + strconv.Itoa(len(args)+1) +
			` OR COALESCE(email, '') ILIKE $` + strconv.Itoa(len(args)+1) + `)`
		args = append(args, "%"+f.Search+"%")
	}
	if f.Class != "" {
		query += ` AND class = $` + strconv.Itoa(len(args)+1)
		args = append(args, f.Class)
	}
	if f.Board != "" {
		query += ` AND board = $` + strconv.Itoa(len(args)+1)
		args = append(args, f.Board)
	}
	query += ` ORDER BY class, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Create inserts a new student with an untouched fee ledger (fee_paid = 0).
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, mobile, email, class, board, stream,
		   total_fee, fee_discount, parent_name, parent_mobile, address, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, fee_paid, created_at, updated_at`,
		s.Name, s.Mobile, s.Email, s.Class, s.Board, s.Stream,
		s.TotalFee, s.FeeDiscount, s.ParentName, s.ParentMobile, s.Address, s.Status,
	).Scan(&s.ID, &s.FeePaid, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return mapStudentConstraint(err)
	}
	return nil
}

// Update applies a partial merge: nil request fields keep their current value.
func (r *StudentRepository) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	s, err := scanStudent(r.pool.QueryRow(ctx,
		`UPDATE students SET
		   name          = COALESCE($1, name),
		   mobile        = COALESCE($2, mobile),
		   email         = COALESCE($3, email),
		   class         = COALESCE($4, class),
		   board         = COALESCE($5, board),
		   stream        = COALESCE($6, stream),
		   total_fee     = COALESCE($7, total_fee),
		   fee_discount  = COALESCE($8, fee_discount),
		   parent_name   = COALESCE($9, parent_name),
		   parent_mobile = COALESCE($10, parent_mobile),
		   address       = COALESCE($11, address),
		   status        = COALESCE($12, status),
		   updated_at    = CURRENT_TIMESTAMP
		 WHERE id = $13
		 RETURNING `+studentColumns,
		req.Name, req.Mobile, req.Email, req.Class, req.Board, req.Stream,
		req.TotalFee, req.FeeDiscount, req.ParentName, req.ParentMobile,
		req.Address, req.Status, id))
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			return nil, err
		}
		return nil, mapStudentConstraint(err)
	}
	return s, nil
}

// Delete removes a student and, via cascade, their payment history.
func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// RecordPayment appends a payment and increments fee_paid in one transaction.
// The student row is locked for the duration, so two concurrent payments can
// never both validate against a stale pending balance. Returns
// ErrPaymentExceedsPending when the amount is larger than the current
// pending balance.
func (r *StudentRepository) RecordPayment(ctx context.Context, studentID int, p *model.Payment) (*model.Student, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var pending int64
	err = tx.QueryRow(ctx,
		`SELECT total_fee - fee_paid - fee_discount
		 FROM students WHERE id = $1 FOR UPDATE`, studentID,
	).Scan(&pending)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if p.Amount > pending {
		return nil, ErrPaymentExceedsPending
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO payments (student_id, amount, payment_date, method,
		   receipt_number, notes, recorded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		studentID, p.Amount, p.PaymentDate, p.Method,
		p.ReceiptNumber, p.Notes, p.RecordedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.StudentID = studentID

	s, err := scanStudent(tx.QueryRow(ctx,
		`UPDATE students
		 SET fee_paid = fee_paid + $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING `+studentColumns,
		p.Amount, studentID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ListPayments retrieves a student's payment history, oldest first.
func (r *StudentRepository) ListPayments(ctx context.Context, studentID int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, amount, payment_date, method, receipt_number,
		   notes, recorded_by, created_at
		 FROM payments WHERE student_id = $1 ORDER BY created_at`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate,
			&p.Method, &p.ReceiptNumber, &p.Notes, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetDefaulters retrieves Active students with a positive pending balance,
// sorted descending by pending amount.
func (r *StudentRepository) GetDefaulters(ctx context.Context) ([]model.Defaulter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, mobile, class, board, total_fee, fee_paid, fee_discount,
		   total_fee - fee_paid - fee_discount AS fee_pending
		 FROM students
		 WHERE status = $1 AND total_fee - fee_paid - fee_discount > 0
		 ORDER BY fee_pending DESC`, model.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defaulters []model.Defaulter
	for rows.Next() {
		var d model.Defaulter
		if err := rows.Scan(&d.ID, &d.Name, &d.Mobile, &d.Class, &d.Board,
			&d.TotalFee, &d.FeePaid, &d.FeeDiscount, &d.FeePending); err != nil {
			return nil, err
		}
		defaulters = append(defaulters, d)
	}
	return defaulters, rows.Err()
}

// GetStatistics aggregates the fee ledger across Active students in one query.
func (r *StudentRepository) GetStatistics(ctx context.Context) (*model.FeeStatistics, error) {
	stats := &model.FeeStatistics{}
	err := r.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*),
		   COALESCE(SUM(fee_paid), 0),
		   COALESCE(SUM(total_fee - fee_paid - fee_discount), 0),
		   COALESCE(SUM(total_fee), 0),
		   COUNT(*) FILTER (WHERE total_fee - fee_paid - fee_discount > 0),
		   COUNT(*) FILTER (WHERE total_fee - fee_paid - fee_discount <= 0)
		 FROM students WHERE status = $1`, model.StatusActive,
	).Scan(&stats.TotalStudents, &stats.TotalFeeCollected, &stats.TotalFeePending,
		&stats.TotalFeeExpected, &stats.DefaulterCount, &stats.FullyPaidCount)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// mapStudentConstraint converts unique violations into the matching sentinel.
func mapStudentConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "students_email_key" {
			return ErrDuplicateEmail
		}
		return ErrDuplicateMobile
	}
	return err
}
