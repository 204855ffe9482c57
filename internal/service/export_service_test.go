package service

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

func exportFixture(t *testing.T) *ExportService {
	t.Helper()
	cfg := &config.Config{ExportDir: t.TempDir()}
	return NewExportService(cfg, zerolog.Nop())
}

func sampleRecords() []model.AttendanceRecord {
	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	return []model.AttendanceRecord{
		{StudentEmail: "a@example.com", Subject: "Maths", Status: model.AttendancePresent, MarkedBy: "teacher@example.com", Date: day, SessionDate: "2026-08-20"},
		{StudentEmail: "b@example.com", Subject: "Maths", Status: model.AttendanceAbsent, MarkedBy: "teacher@example.com", Date: day, SessionDate: "2026-08-20"},
		{StudentEmail: "a@example.com", Subject: "Physics", Status: model.AttendanceAbsent, MarkedBy: "", Date: day.AddDate(0, 0, 1), SessionDate: "2026-08-21"},
	}
}

func TestBuildReportGroupsByStudent(t *testing.T) {
	svc := exportFixture(t)

	report := svc.BuildReport(sampleRecords(), "")

	if !strings.Contains(report, "STUDENT ATTENDANCE REPORT") {
		t.Error("header missing")
	}
	if !strings.Contains(report, "END OF REPORT") {
		t.Error("footer missing")
	}
	if !strings.Contains(report, "Student Email: a@example.com") {
		t.Error("student group header missing")
	}
	if !strings.Contains(report, "Student Email: b@example.com") {
		t.Error("second student group missing")
	}

	// Both of a@'s records land under one group header.
	if strings.Count(report, "Student Email: a@example.com") != 1 {
		t.Error("records for one student split across groups")
	}

	// Dates are rendered dd/mm/yyyy; blank marked-by falls back to Unknown.
	if !strings.Contains(report, "20/08/2026") {
		t.Error("record date not rendered as dd/mm/yyyy")
	}
	if !strings.Contains(report, "Unknown") {
		t.Error("empty markedBy should render as Unknown")
	}

	// Plain export carries no range header or subtotals.
	if strings.Contains(report, "Date Range:") {
		t.Error("unexpected date range header")
	}
	if strings.Contains(report, "Statistics:") {
		t.Error("unexpected per-student subtotals")
	}
}

func TestBuildReportDateRangeSubtotals(t *testing.T) {
	svc := exportFixture(t)

	report := svc.BuildReport(sampleRecords(), "2026-08-20 to 2026-08-21")

	if !strings.Contains(report, "Date Range: 2026-08-20 to 2026-08-21") {
		t.Error("range header missing")
	}
	if !strings.Contains(report, "Statistics: Present: 1, Absent: 1") {
		t.Error("subtotals for a@example.com missing")
	}
	if !strings.Contains(report, "Statistics: Present: 0, Absent: 1") {
		t.Error("subtotals for b@example.com missing")
	}
}

func TestWriteReportFileAndCleanup(t *testing.T) {
	svc := exportFixture(t)

	path, err := svc.WriteReportFile("report body")
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "report body" {
		t.Errorf("content = %q", data)
	}
	if !strings.HasSuffix(path, ".txt") {
		t.Errorf("path %q should end in .txt", path)
	}

	svc.Cleanup(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after cleanup: %v", err)
	}

	// Cleaning an already-removed file must not panic or log-fatal.
	svc.Cleanup(path)
}

func TestWriteReportFileUniqueNames(t *testing.T) {
	svc := exportFixture(t)

	p1, err := svc.WriteReportFile("one")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	p2, err := svc.WriteReportFile("two")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if p1 == p2 {
		t.Error("concurrent exports would collide on the same path")
	}
}
