package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/metrics"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrNoAttendanceRecords is returned when a student has no records at all.
var ErrNoAttendanceRecords = errors.New("no attendance records found")

// AttendanceStore is the attendance persistence the service depends on.
type AttendanceStore interface {
	Upsert(ctx context.Context, rec *model.AttendanceRecord) error
	ListByStudent(ctx context.Context, email string) ([]model.AttendanceRecord, error)
	CountByStatus(ctx context.Context, email string) (present, absent int, err error)
	Query(ctx context.Context, f model.AttendanceFilter) ([]model.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]model.AttendanceRecord, error)
}

// StudentDirectory resolves display names for attendance snapshots.
type StudentDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
}

// AttendanceService handles marking and reporting of attendance.
type AttendanceService struct {
	records  AttendanceStore
	students StudentDirectory
	log      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(records AttendanceStore, students StudentDirectory, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		records:  records,
		students: students,
		log:      log.With().Str("component", "attendance_service").Logger(),
	}
}

// MarkBulk upserts one record per request entry, keyed by (studentEmail,
// subject, sessionDate). Emails are lowercased; display names come from the
// roster with the email itself as fallback. Re-running the same request is
// idempotent: existing records are overwritten, not duplicated.
func (s *AttendanceService) MarkBulk(ctx context.Context, req *model.BulkMarkRequest) ([]model.AttendanceRecord, error) {
	sessionDate := req.SessionDate
	if sessionDate == "" {
		sessionDate = time.Now().Format("2006-01-02")
	}

	markedBy := req.MarkedBy
	if markedBy == "" {
		markedBy = "admin"
	}

	saved := make([]model.AttendanceRecord, 0, len(req.Records))
	for _, entry := range req.Records {
		email := strings.ToLower(strings.TrimSpace(entry.StudentEmail))

		name := email
		if student, err := s.students.GetByEmail(ctx, email); err == nil {
			name = student.Name
		}

		rec := model.AttendanceRecord{
			StudentEmail: email,
			StudentName:  name,
			Subject:      req.Subject,
			Status:       entry.Status,
			MarkedBy:     markedBy,
			SessionDate:  sessionDate,
		}
		if err := s.records.Upsert(ctx, &rec); err != nil {
			return nil, err
		}
		metrics.AttendanceUpserts.Inc()
		saved = append(saved, rec)
	}

	s.log.Info().
		Str("subject", req.Subject).
		Str("session_date", sessionDate).
		Int("count", len(saved)).
		Msg("Bulk attendance saved")

	return saved, nil
}

// GetByStudent retrieves a student's records, most recent first. Returns
// ErrNoAttendanceRecords when none exist.
func (s *AttendanceService) GetByStudent(ctx context.Context, email string) ([]model.AttendanceRecord, error) {
	records, err := s.records.ListByStudent(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoAttendanceRecords
	}
	return records, nil
}

// GetStatistics computes a student's present/absent counts and attendance
// percentage (present / total * 100, rounded to two decimals). Returns
// ErrNoAttendanceRecords when the student has no records.
func (s *AttendanceService) GetStatistics(ctx context.Context, email string) (*model.AttendanceStats, error) {
	present, absent, err := s.records.CountByStatus(ctx, email)
	if err != nil {
		return nil, err
	}

	total := present + absent
	if total == 0 {
		return nil, ErrNoAttendanceRecords
	}

	return &model.AttendanceStats{
		StudentEmail:         strings.ToLower(email),
		TotalRecords:         total,
		PresentCount:         present,
		AbsentCount:          absent,
		AttendancePercentage: Percentage(present, total),
	}, nil
}

// QueryAll retrieves records matching the filter for the teacher register
// view. A date filter covers the whole calendar day.
func (s *AttendanceService) QueryAll(ctx context.Context, f model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	records, err := s.records.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	return records, nil
}

// ListAll retrieves every record for the full export.
func (s *AttendanceService) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	return s.records.ListAll(ctx)
}

// ListRange retrieves records between two calendar dates, end inclusive.
func (s *AttendanceService) ListRange(ctx context.Context, startDate, endDate string) ([]model.AttendanceRecord, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}
	// End bound covers the whole last day.
	return s.records.ListByDateRange(ctx, start, end.AddDate(0, 0, 1))
}

// Percentage returns part/total*100 rounded to two decimals.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
