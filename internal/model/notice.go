package model

import "time"

// StudentNoticeFeedLimit caps the student-facing notice feed.
const StudentNoticeFeedLimit = 10

// NoticePriority orders notices on the board.
type NoticePriority string

const (
	PriorityNormal NoticePriority = "Normal"
	PriorityHigh   NoticePriority = "High"
	PriorityUrgent NoticePriority = "Urgent"
)

// Notice is an announcement posted by a teacher, optionally targeted at one
// class or board.
type Notice struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	TargetClass string         `json:"targetClass,omitempty"`
	TargetBoard string         `json:"targetBoard,omitempty"`
	Priority    NoticePriority `json:"priority"`
	PostedBy    int            `json:"postedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// CreateNoticeRequest is the payload for posting a notice.
type CreateNoticeRequest struct {
	Title       string         `json:"title" binding:"required,min=2,max=200"`
	Content     string         `json:"content" binding:"required,max=5000"`
	TargetClass string         `json:"targetClass" binding:"omitempty,max=20"`
	TargetBoard string         `json:"targetBoard" binding:"omitempty,max=20"`
	Priority    NoticePriority `json:"priority" binding:"omitempty,oneof=Normal High Urgent"`
}

// UpdateNoticeRequest is the payload for a partial notice edit.
type UpdateNoticeRequest struct {
	Title       *string         `json:"title" binding:"omitempty,min=2,max=200"`
	Content     *string         `json:"content" binding:"omitempty,max=5000"`
	TargetClass *string         `json:"targetClass" binding:"omitempty,max=20"`
	TargetBoard *string         `json:"targetBoard" binding:"omitempty,max=20"`
	Priority    *NoticePriority `json:"priority" binding:"omitempty,oneof=Normal High Urgent"`
}
