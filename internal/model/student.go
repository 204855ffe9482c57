package model

import (
	"encoding/json"
	"time"
)

// StudentStatus is the enrollment lifecycle state of a student.
type StudentStatus string

const (
	StatusActive    StudentStatus = "Active"
	StatusInactive  StudentStatus = "Inactive"
	StatusSuspended StudentStatus = "Suspended"
	StatusGraduated StudentStatus = "Graduated"
)

// FeeStatus classifies a student's outstanding balance.
type FeeStatus string

const (
	FeePaidUp  FeeStatus = "Paid"
	FeePartial FeeStatus = "Partial"
	FeeUnpaid  FeeStatus = "Pending"
)

// Student represents an enrolled student and their fee ledger head.
// FeePaid is maintained exclusively by recorded payments and always equals
// the sum of the student's payment amounts.
type Student struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Mobile       string        `json:"mobile"`
	Email        *string       `json:"email,omitempty"`
	Class        string        `json:"class"`
	Board        string        `json:"board"`
	Stream       string        `json:"stream,omitempty"`
	TotalFee     int64         `json:"totalFee"`
	FeePaid      int64         `json:"feePaid"`
	FeeDiscount  int64         `json:"feeDiscount"`
	ParentName   string        `json:"parentName,omitempty"`
	ParentMobile string        `json:"parentMobile,omitempty"`
	Address      string        `json:"address,omitempty"`
	Status       StudentStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// FeePending returns the outstanding balance: totalFee - feePaid - feeDiscount.
func (s *Student) FeePending() int64 {
	return s.TotalFee - s.FeePaid - s.FeeDiscount
}

// FeeStatus classifies the balance: Paid when nothing is pending, Pending
// when nothing has been paid, Partial otherwise.
func (s *Student) FeeStatus() FeeStatus {
	switch {
	case s.FeePending() <= 0:
		return FeePaidUp
	case s.FeePaid == 0:
		return FeeUnpaid
	default:
		return FeePartial
	}
}

// MarshalJSON includes the derived feePending and feeStatus fields so API
// consumers never recompute them.
func (s Student) MarshalJSON() ([]byte, error) {
	type alias Student
	return json.Marshal(struct {
		alias
		FeePending int64     `json:"feePending"`
		FeeStatus  FeeStatus `json:"feeStatus"`
	}{
		alias:      alias(s),
		FeePending: s.FeePending(),
		FeeStatus:  s.FeeStatus(),
	})
}

// CreateStudentRequest is the payload for enrolling a new student.
type CreateStudentRequest struct {
	Name         string        `json:"name" binding:"required,min=2,max=100"`
	Mobile       string        `json:"mobile" binding:"required,mobile"`
	Email        string        `json:"email" binding:"omitempty,email"`
	Class        string        `json:"class" binding:"required,max=20"`
	Board        string        `json:"board" binding:"required,max=20"`
	Stream       string        `json:"stream" binding:"omitempty,max=50"`
	TotalFee     int64         `json:"totalFee" binding:"required,gt=0"`
	FeeDiscount  int64         `json:"feeDiscount" binding:"omitempty,gte=0"`
	ParentName   string        `json:"parentName" binding:"omitempty,max=100"`
	ParentMobile string        `json:"parentMobile" binding:"omitempty,mobile"`
	Address      string        `json:"address" binding:"omitempty,max=300"`
	Status       StudentStatus `json:"status" binding:"omitempty,oneof=Active Inactive Suspended Graduated"`
}

// UpdateStudentRequest is the payload for a partial student edit. Nil fields
// are left unchanged. Fee paid is deliberately absent: it only moves through
// recorded payments.
type UpdateStudentRequest struct {
	Name         *string        `json:"name" binding:"omitempty,min=2,max=100"`
	Mobile       *string        `json:"mobile" binding:"omitempty,mobile"`
	Email        *string        `json:"email" binding:"omitempty,email"`
	Class        *string        `json:"class" binding:"omitempty,max=20"`
	Board        *string        `json:"board" binding:"omitempty,max=20"`
	Stream       *string        `json:"stream" binding:"omitempty,max=50"`
	TotalFee     *int64         `json:"totalFee" binding:"omitempty,gt=0"`
	FeeDiscount  *int64         `json:"feeDiscount" binding:"omitempty,gte=0"`
	ParentName   *string        `json:"parentName" binding:"omitempty,max=100"`
	ParentMobile *string        `json:"parentMobile" binding:"omitempty,mobile"`
	Address      *string        `json:"address" binding:"omitempty,max=300"`
	Status       *StudentStatus `json:"status" binding:"omitempty,oneof=Active Inactive Suspended Graduated"`
}

// StudentFilter narrows roster listings. Search is a case-insensitive
// substring match over name, mobile and email; Status defaults to Active.
type StudentFilter struct {
	Search string
	Class  string
	Board  string
	Status StudentStatus
}

// FeeStatistics aggregates the ledger across Active students. Always computed
// fresh from the current student set.
type FeeStatistics struct {
	TotalStudents     int   `json:"totalStudents"`
	TotalFeeCollected int64 `json:"totalFeeCollected"`
	TotalFeePending   int64 `json:"totalFeePending"`
	TotalFeeExpected  int64 `json:"totalFeeExpected"`
	DefaulterCount    int   `json:"studentsWithPending"`
	FullyPaidCount    int   `json:"fullyPaidStudents"`
}

// Defaulter is an Active student with a positive pending balance.
type Defaulter struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Class       string `json:"class"`
	Board       string `json:"board"`
	TotalFee    int64  `json:"totalFee"`
	FeePaid     int64  `json:"feePaid"`
	FeeDiscount int64  `json:"feeDiscount"`
	FeePending  int64  `json:"feePending"`
}
