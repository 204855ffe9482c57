package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/config"
	"github.com/coachdesk/coachdesk-backend/internal/metrics"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const reportRule = "===================================="

// ExportService renders attendance records into fixed-width text reports and
// manages their transient files. Report files live only for the duration of
// one download response; the handler removes them on every exit path.
type ExportService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(cfg *config.Config, log zerolog.Logger) *ExportService {
	return &ExportService{
		cfg: cfg,
		log: log.With().Str("component", "export_service").Logger(),
	}
}

// BuildReport renders records grouped by student into a columnar text report.
// rangeLabel, when non-empty, is printed in the header and switches on the
// per-student present/absent subtotals.
func (s *ExportService) BuildReport(records []model.AttendanceRecord, rangeLabel string) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	if rangeLabel != "" {
		b.WriteString("  STUDENT ATTENDANCE REPORT (DATE RANGE)\n")
	} else {
		b.WriteString("      STUDENT ATTENDANCE REPORT\n")
	}
	b.WriteString(reportRule + "\n\n")
	if rangeLabel != "" {
		b.WriteString("Date Range: " + rangeLabel + "\n")
	}
	b.WriteString("Generated on: " + time.Now().Format("02/01/2006 15:04:05") + "\n\n")

	for _, email := range groupOrder(records) {
		group := recordsFor(records, email)

		b.WriteString("\nStudent Email: " + email + "\n")
		if rangeLabel != "" {
			present, absent := 0, 0
			for _, rec := range group {
				if rec.Status == model.AttendancePresent {
					present++
				} else {
					absent++
				}
			}
			fmt.Fprintf(&b, "Statistics: Present: %d, Absent: %d\n", present, absent)
		}
		b.WriteString(strings.Repeat("-", 50) + "\n")
		fmt.Fprintf(&b, "%-20s%-15s%-12s%s\n", "Date", "Subject", "Status", "Marked By")
		b.WriteString(strings.Repeat("-", 50) + "\n")

		for _, rec := range group {
			markedBy := rec.MarkedBy
			if markedBy == "" {
				markedBy = "Unknown"
			}
			fmt.Fprintf(&b, "%-20s%-15s%-12s%s\n",
				rec.Date.Format("02/01/2006"), rec.Subject, rec.Status, markedBy)
		}
	}

	b.WriteString("\n\n" + reportRule + "\n")
	b.WriteString("          END OF REPORT\n")
	b.WriteString(reportRule + "\n")

	return b.String()
}

// WriteReportFile writes the report under the configured export directory
// with a unique name and returns its path. The caller owns the file and must
// remove it once the response completes.
func (s *ExportService) WriteReportFile(content string) (string, error) {
	if err := os.MkdirAll(s.cfg.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := "attendance_report_" + uuid.New().String() + ".txt"
	path := filepath.Join(s.cfg.ExportDir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	metrics.ExportsGenerated.Inc()
	s.log.Debug().Str("path", path).Int("bytes", len(content)).Msg("Report file written")

	return path, nil
}

// Cleanup removes a report file, logging rather than failing on error; a
// leftover file is a disk-usage bug, not a request failure.
func (s *ExportService) Cleanup(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("Failed to remove report file")
	}
}

// groupOrder returns student emails in order of first appearance.
func groupOrder(records []model.AttendanceRecord) []string {
	seen := make(map[string]bool, len(records))
	var order []string
	for _, rec := range records {
		if !seen[rec.StudentEmail] {
			seen[rec.StudentEmail] = true
			order = append(order, rec.StudentEmail)
		}
	}
	return order
}

func recordsFor(records []model.AttendanceRecord, email string) []model.AttendanceRecord {
	var group []model.AttendanceRecord
	for _, rec := range records {
		if rec.StudentEmail == email {
			group = append(group, rec)
		}
	}
	return group
}
