package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

// fakeAttendanceStore upserts on (email, subject, sessionDate) like the
// database constraint does.
type fakeAttendanceStore struct {
	records []model.AttendanceRecord
	nextID  int
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, rec *model.AttendanceRecord) error {
	for i, existing := range f.records {
		if existing.StudentEmail == rec.StudentEmail &&
			existing.Subject == rec.Subject &&
			existing.SessionDate == rec.SessionDate {
			rec.ID = existing.ID
			rec.Date = time.Now()
			f.records[i] = *rec
			return nil
		}
	}
	f.nextID++
	rec.ID = f.nextID
	rec.Date = time.Now()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeAttendanceStore) ListByStudent(_ context.Context, email string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range f.records {
		if rec.StudentEmail == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) CountByStatus(_ context.Context, email string) (int, int, error) {
	present, absent := 0, 0
	for _, rec := range f.records {
		if rec.StudentEmail != email {
			continue
		}
		if rec.Status == model.AttendancePresent {
			present++
		} else {
			absent++
		}
	}
	return present, absent, nil
}

func (f *fakeAttendanceStore) Query(_ context.Context, _ model.AttendanceFilter) ([]model.AttendanceRecord, error) {
	return f.records, nil
}

func (f *fakeAttendanceStore) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	return f.records, nil
}

func (f *fakeAttendanceStore) ListByDateRange(_ context.Context, _, _ time.Time) ([]model.AttendanceRecord, error) {
	return f.records, nil
}

// fakeDirectory resolves names for known emails only.
type fakeDirectory struct {
	names map[string]string
}

func (f *fakeDirectory) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	name, ok := f.names[email]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &model.Student{Name: name}, nil
}

func newAttendanceFixture(names map[string]string) (*AttendanceService, *fakeAttendanceStore) {
	store := &fakeAttendanceStore{}
	if names == nil {
		names = map[string]string{}
	}
	svc := NewAttendanceService(store, &fakeDirectory{names: names}, zerolog.Nop())
	return svc, store
}

func TestMarkBulkResolvesNamesAndDefaults(t *testing.T) {
	svc, _ := newAttendanceFixture(map[string]string{"ravi@example.com": "Ravi Kumar"})

	saved, err := svc.MarkBulk(context.Background(), &model.BulkMarkRequest{
		Subject: "Physics",
		Records: []model.BulkMarkEntry{
			{StudentEmail: "  RAVI@Example.COM ", Status: model.AttendancePresent},
			{StudentEmail: "unknown@example.com", Status: model.AttendanceAbsent},
		},
	})
	if err != nil {
		t.Fatalf("mark bulk: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("saved %d records, want 2", len(saved))
	}

	if saved[0].StudentEmail != "ravi@example.com" {
		t.Errorf("email not normalized: %q", saved[0].StudentEmail)
	}
	if saved[0].StudentName != "Ravi Kumar" {
		t.Errorf("name not resolved from roster: %q", saved[0].StudentName)
	}
	// Unknown emails fall back to the email itself.
	if saved[1].StudentName != "unknown@example.com" {
		t.Errorf("fallback name = %q", saved[1].StudentName)
	}

	today := time.Now().Format("2006-01-02")
	if saved[0].SessionDate != today {
		t.Errorf("sessionDate defaulted to %q, want %q", saved[0].SessionDate, today)
	}
	if saved[0].MarkedBy != "admin" {
		t.Errorf("markedBy defaulted to %q, want admin", saved[0].MarkedBy)
	}
}

func TestMarkBulkIsIdempotentPerSession(t *testing.T) {
	svc, store := newAttendanceFixture(nil)
	ctx := context.Background()

	req := &model.BulkMarkRequest{
		Subject:     "Maths",
		SessionDate: "2026-08-20",
		MarkedBy:    "teacher@example.com",
		Records: []model.BulkMarkEntry{
			{StudentEmail: "a@example.com", Status: model.AttendanceAbsent},
		},
	}
	if _, err := svc.MarkBulk(ctx, req); err != nil {
		t.Fatalf("first mark: %v", err)
	}

	// Correcting the same session must overwrite, not duplicate.
	req.Records[0].Status = model.AttendancePresent
	if _, err := svc.MarkBulk(ctx, req); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(store.records))
	}
	if store.records[0].Status != model.AttendancePresent {
		t.Errorf("status = %q, want present after correction", store.records[0].Status)
	}

	// Same student, same date, different subject is a distinct session.
	if _, err := svc.MarkBulk(ctx, &model.BulkMarkRequest{
		Subject:     "Physics",
		SessionDate: "2026-08-20",
		Records:     []model.BulkMarkEntry{{StudentEmail: "a@example.com", Status: model.AttendanceAbsent}},
	}); err != nil {
		t.Fatalf("other subject: %v", err)
	}
	if len(store.records) != 2 {
		t.Errorf("store has %d records, want 2", len(store.records))
	}
}

func TestGetStatistics(t *testing.T) {
	svc, _ := newAttendanceFixture(nil)
	ctx := context.Background()

	// 3 present, 1 absent across four session dates.
	for i, status := range []model.AttendanceStatus{
		model.AttendancePresent, model.AttendancePresent, model.AttendancePresent, model.AttendanceAbsent,
	} {
		if _, err := svc.MarkBulk(ctx, &model.BulkMarkRequest{
			Subject:     "Maths",
			SessionDate: time.Date(2026, 8, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Records:     []model.BulkMarkEntry{{StudentEmail: "a@example.com", Status: status}},
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := svc.GetStatistics(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalRecords != 4 || stats.PresentCount != 3 || stats.AbsentCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 4/3/1", stats.TotalRecords, stats.PresentCount, stats.AbsentCount)
	}
	if stats.AttendancePercentage != 75 {
		t.Errorf("percentage = %v, want 75", stats.AttendancePercentage)
	}
}

func TestGetStatisticsNoRecords(t *testing.T) {
	svc, _ := newAttendanceFixture(nil)

	if _, err := svc.GetStatistics(context.Background(), "ghost@example.com"); !errors.Is(err, ErrNoAttendanceRecords) {
		t.Errorf("got %v, want ErrNoAttendanceRecords", err)
	}
}

func TestGetByStudentNoRecords(t *testing.T) {
	svc, _ := newAttendanceFixture(nil)

	if _, err := svc.GetByStudent(context.Background(), "ghost@example.com"); !errors.Is(err, ErrNoAttendanceRecords) {
		t.Errorf("got %v, want ErrNoAttendanceRecords", err)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{3, 4, 75},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{0, 5, 0},
		{5, 5, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.part, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestListRangeRejectsBadDates(t *testing.T) {
	svc, _ := newAttendanceFixture(nil)

	if _, err := svc.ListRange(context.Background(), "20-08-2026", "2026-08-21"); err == nil {
		t.Error("malformed start date accepted")
	}
	if _, err := svc.ListRange(context.Background(), "2026-08-20", "not-a-date"); err == nil {
		t.Error("malformed end date accepted")
	}
}
