package repository

import (
	"context"
	"errors"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoticeNotFound = errors.New("notice not found")

// NoticeRepository handles notice board data access.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository creates a new NoticeRepository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

// List retrieves notices newest-first. A limit of 0 means no limit.
func (r *NoticeRepository) List(ctx context.Context, limit int) ([]model.Notice, error) {
	query := `SELECT id, title, content, target_class, target_board, priority, posted_by, created_at
		 FROM notices ORDER BY created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.TargetClass,
			&n.TargetBoard, &n.Priority, &n.PostedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// Create inserts a new notice.
func (r *NoticeRepository) Create(ctx context.Context, n *model.Notice) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO notices (title, content, target_class, target_board, priority, posted_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		n.Title, n.Content, n.TargetClass, n.TargetBoard, n.Priority, n.PostedBy,
	).Scan(&n.ID, &n.CreatedAt)
}

// Update applies a partial merge to an existing notice.
func (r *NoticeRepository) Update(ctx context.Context, id int, req *model.UpdateNoticeRequest) (*model.Notice, error) {
	n := &model.Notice{}
	err := r.pool.QueryRow(ctx,
		`UPDATE notices SET
		   title        = COALESCE($1, title),
		   content      = COALESCE($2, content),
		   target_class = COALESCE($3, target_class),
		   target_board = COALESCE($4, target_board),
		   priority     = COALESCE($5, priority)
		 WHERE id = $6
		 RETURNING id, title, content, target_class, target_board, priority, posted_by, created_at`,
		req.Title, req.Content, req.TargetClass, req.TargetBoard, req.Priority, id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.TargetClass, &n.TargetBoard,
		&n.Priority, &n.PostedBy, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return n, nil
}

// Delete removes a notice by ID.
func (r *NoticeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoticeNotFound
	}
	return nil
}
