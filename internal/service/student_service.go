package service

import (
	"context"
	"strings"

	"github.com/coachdesk/coachdesk-backend/internal/model"
)

// StudentStore is the roster persistence the student service depends on.
type StudentStore interface {
	List(ctx context.Context, f model.StudentFilter) ([]model.Student, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error)
	Delete(ctx context.Context, id int) error
}

// StudentService handles roster business logic.
type StudentService struct {
	students StudentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

// List retrieves students matching the filter. Status defaults to Active;
// "all" lifts the status filter entirely.
func (s *StudentService) List(ctx context.Context, f model.StudentFilter) ([]model.Student, error) {
	switch f.Status {
	case "":
		f.Status = model.StatusActive
	case "all":
		f.Status = ""
	}

	students, err := s.students.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

// Create enrolls a new student with a zeroed payment ledger.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	status := req.Status
	if status == "" {
		status = model.StatusActive
	}

	student := &model.Student{
		Name:         strings.TrimSpace(req.Name),
		Mobile:       req.Mobile,
		Class:        req.Class,
		Board:        req.Board,
		Stream:       req.Stream,
		TotalFee:     req.TotalFee,
		FeeDiscount:  req.FeeDiscount,
		ParentName:   req.ParentName,
		ParentMobile: req.ParentMobile,
		Address:      req.Address,
		Status:       status,
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		student.Email = &email
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update applies a partial edit; nil fields keep their current value.
func (s *StudentService) Update(ctx context.Context, id int, req *model.UpdateStudentRequest) (*model.Student, error) {
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}
	return s.students.Update(ctx, id, req)
}

// Delete removes a student and their payment history.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.students.Delete(ctx, id)
}
