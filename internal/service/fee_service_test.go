package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

var receiptPattern = regexp.MustCompile(`^RCP\d{13,}$`)

// fakeLedger mimics the repository's payment transaction: validate against
// the pending balance, append, bump fee_paid.
type fakeLedger struct {
	students map[int]*model.Student
	payments map[int][]model.Payment
}

func newFakeLedger(students ...*model.Student) *fakeLedger {
	f := &fakeLedger{
		students: make(map[int]*model.Student),
		payments: make(map[int][]model.Payment),
	}
	for _, s := range students {
		f.students[s.ID] = s
	}
	return f
}

func (f *fakeLedger) GetByID(_ context.Context, id int) (*model.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeLedger) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range f.students {
		if s.Email != nil && *s.Email == email {
			return s, nil
		}
	}
	return nil, repository.ErrStudentNotFound
}

func (f *fakeLedger) RecordPayment(_ context.Context, studentID int, p *model.Payment) (*model.Student, error) {
	s, ok := f.students[studentID]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	if p.Amount > s.FeePending() {
		return nil, repository.ErrPaymentExceedsPending
	}
	p.ID = len(f.payments[studentID]) + 1
	p.StudentID = studentID
	f.payments[studentID] = append(f.payments[studentID], *p)
	s.FeePaid += p.Amount
	return s, nil
}

func (f *fakeLedger) ListPayments(_ context.Context, studentID int) ([]model.Payment, error) {
	return f.payments[studentID], nil
}

func (f *fakeLedger) GetDefaulters(_ context.Context) ([]model.Defaulter, error) {
	return nil, nil
}

func (f *fakeLedger) GetStatistics(_ context.Context) (*model.FeeStatistics, error) {
	return &model.FeeStatistics{}, nil
}

func TestRecordPaymentLedgerFlow(t *testing.T) {
	student := &model.Student{ID: 1, Name: "Ravi", TotalFee: 50000, Status: model.StatusActive}
	ledger := newFakeLedger(student)
	svc := NewFeeService(ledger, zerolog.Nop())
	ctx := context.Background()

	// First payment.
	payment, updated, err := svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: 20000}, "teacher@example.com")
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if !receiptPattern.MatchString(payment.ReceiptNumber) {
		t.Errorf("receipt %q does not match RCP<millis> format", payment.ReceiptNumber)
	}
	if payment.Method != model.MethodCash {
		t.Errorf("method defaulted to %q, want Cash", payment.Method)
	}
	if updated.FeePaid != 20000 || updated.FeePending() != 30000 {
		t.Errorf("after first payment: paid=%d pending=%d", updated.FeePaid, updated.FeePending())
	}
	if updated.FeeStatus() != model.FeePartial {
		t.Errorf("status = %q, want Partial", updated.FeeStatus())
	}

	// Overpayment is rejected and the ledger stays untouched.
	if _, _, err := svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: 30001}, "teacher@example.com"); !errors.Is(err, repository.ErrPaymentExceedsPending) {
		t.Errorf("overpayment: got %v, want ErrPaymentExceedsPending", err)
	}
	if student.FeePaid != 20000 {
		t.Errorf("rejected payment mutated ledger: paid=%d", student.FeePaid)
	}

	// Settling the balance exactly.
	_, updated, err = svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: 30000}, "teacher@example.com")
	if err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	if updated.FeeStatus() != model.FeePaidUp {
		t.Errorf("status = %q, want Paid", updated.FeeStatus())
	}

	// Nothing pending: even one rupee must be rejected.
	if _, _, err := svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: 1}, "teacher@example.com"); !errors.Is(err, repository.ErrPaymentExceedsPending) {
		t.Errorf("payment on settled ledger: got %v, want ErrPaymentExceedsPending", err)
	}
}

func TestRecordPaymentRejectsNonPositiveAmounts(t *testing.T) {
	svc := NewFeeService(newFakeLedger(), zerolog.Nop())
	ctx := context.Background()

	for _, amount := range []int64{0, -500} {
		if _, _, err := svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: amount}, ""); !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Errorf("amount %d: got %v, want ErrInvalidPaymentAmount", amount, err)
		}
	}
}

func TestRecordPaymentUnknownStudent(t *testing.T) {
	svc := NewFeeService(newFakeLedger(), zerolog.Nop())

	if _, _, err := svc.RecordPayment(context.Background(), 99, &model.RecordPaymentRequest{Amount: 100}, ""); !errors.Is(err, repository.ErrStudentNotFound) {
		t.Errorf("got %v, want ErrStudentNotFound", err)
	}
}

func TestMyFees(t *testing.T) {
	email := "ravi@example.com"
	student := &model.Student{
		ID:       1,
		Name:     "Ravi",
		Email:    &email,
		Class:    "10",
		Board:    "CBSE",
		TotalFee: 50000,
		Status:   model.StatusActive,
	}
	ledger := newFakeLedger(student)
	svc := NewFeeService(ledger, zerolog.Nop())
	ctx := context.Background()

	if _, _, err := svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: 10000}, "t"); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	last, _, err := svc.RecordPayment(ctx, 1, &model.RecordPaymentRequest{Amount: 15000}, "t")
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	summary, err := svc.MyFees(ctx, email)
	if err != nil {
		t.Fatalf("my fees: %v", err)
	}

	if summary.FeePaid != 25000 || summary.FeePending != 25000 {
		t.Errorf("paid=%d pending=%d, want 25000/25000", summary.FeePaid, summary.FeePending)
	}
	if summary.PercentagePaid != 50 {
		t.Errorf("percentagePaid = %v, want 50", summary.PercentagePaid)
	}
	if summary.Status != model.FeePartial {
		t.Errorf("status = %q, want Partial", summary.Status)
	}
	if summary.LastPayment == nil || summary.LastPayment.Amount != last.Amount {
		t.Errorf("lastPayment = %+v, want the most recent payment", summary.LastPayment)
	}
}

func TestMyFeesUnknownEmail(t *testing.T) {
	svc := NewFeeService(newFakeLedger(), zerolog.Nop())

	if _, err := svc.MyFees(context.Background(), "nobody@example.com"); !errors.Is(err, repository.ErrStudentNotFound) {
		t.Errorf("got %v, want ErrStudentNotFound", err)
	}
}
