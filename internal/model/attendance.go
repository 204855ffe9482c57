package model

import "time"

// AttendanceStatus is a student's presence in one class session.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is one student's attendance for one subject on one session
// date. Exactly one record exists per (studentEmail, subject, sessionDate);
// re-marking a session overwrites the existing record.
//
// SessionDate is the logical calendar date of the class ("2006-01-02" form),
// distinct from Date, which is the timestamp of the last marking.
type AttendanceRecord struct {
	ID           int              `json:"id"`
	StudentEmail string           `json:"studentEmail"`
	StudentName  string           `json:"studentName"`
	Subject      string           `json:"subject"`
	Status       AttendanceStatus `json:"status"`
	MarkedBy     string           `json:"markedBy"`
	Date         time.Time        `json:"date"`
	SessionDate  string           `json:"sessionDate"`
}

// BulkMarkEntry is one student's status within a bulk marking request.
type BulkMarkEntry struct {
	StudentEmail string           `json:"studentEmail" binding:"required,email"`
	Status       AttendanceStatus `json:"status" binding:"required,oneof=present absent"`
}

// BulkMarkRequest marks a whole class session in one call. SessionDate
// defaults to today when omitted.
type BulkMarkRequest struct {
	Records     []BulkMarkEntry `json:"records" binding:"required,min=1,dive"`
	Subject     string          `json:"subject" binding:"required,max=50"`
	MarkedBy    string          `json:"markedBy" binding:"omitempty,max=100"`
	SessionDate string          `json:"sessionDate" binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceStats summarizes one student's attendance.
type AttendanceStats struct {
	StudentEmail         string  `json:"studentEmail"`
	TotalRecords         int     `json:"totalRecords"`
	PresentCount         int     `json:"presentCount"`
	AbsentCount          int     `json:"absentCount"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// AttendanceFilter narrows attendance queries. Date ("2006-01-02") expands to
// the full calendar day.
type AttendanceFilter struct {
	Date    string
	Subject string
	Status  AttendanceStatus
}

// DateRangeExportRequest bounds an attendance export. The end date is
// inclusive of the whole day.
type DateRangeExportRequest struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}
