package model

import "time"

// TimetableEntry is one recurring slot in the weekly class schedule.
type TimetableEntry struct {
	ID          int       `json:"id"`
	Day         string    `json:"day"`
	TimeSlot    string    `json:"time"`
	Subject     string    `json:"subject"`
	ClassName   string    `json:"class,omitempty"`
	TeacherName string    `json:"teacher"`
	CreatedBy   int       `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateTimetableRequest is the payload for adding a timetable slot.
type CreateTimetableRequest struct {
	Day     string `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Time    string `json:"time" binding:"required,max=30"`
	Subject string `json:"subject" binding:"required,max=50"`
	Class   string `json:"class" binding:"omitempty,max=20"`
	Teacher string `json:"teacher" binding:"omitempty,max=100"`
}

// UpdateTimetableRequest is the payload for a partial timetable edit.
type UpdateTimetableRequest struct {
	Day     *string `json:"day" binding:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Time    *string `json:"time" binding:"omitempty,max=30"`
	Subject *string `json:"subject" binding:"omitempty,max=50"`
	Class   *string `json:"class" binding:"omitempty,max=20"`
	Teacher *string `json:"teacher" binding:"omitempty,max=100"`
}
