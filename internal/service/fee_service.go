package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/coachdesk/coachdesk-backend/internal/metrics"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrInvalidPaymentAmount is returned for non-positive payment amounts.
var ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

// FeeLedger is the ledger persistence the fee service depends on.
type FeeLedger interface {
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	RecordPayment(ctx context.Context, studentID int, p *model.Payment) (*model.Student, error)
	ListPayments(ctx context.Context, studentID int) ([]model.Payment, error)
	GetDefaulters(ctx context.Context) ([]model.Defaulter, error)
	GetStatistics(ctx context.Context) (*model.FeeStatistics, error)
}

// FeeService handles payment recording and ledger reporting.
type FeeService struct {
	ledger FeeLedger
	log    zerolog.Logger
}

// NewFeeService creates a new FeeService.
func NewFeeService(ledger FeeLedger, log zerolog.Logger) *FeeService {
	return &FeeService{
		ledger: ledger,
		log:    log.With().Str("component", "fee_service").Logger(),
	}
}

// RecordPayment appends a payment to a student's ledger. The amount must be
// positive and no larger than the current pending balance; the append and the
// fee_paid increment happen atomically in the repository. Returns the payment
// (with its generated receipt number) and the updated student.
func (s *FeeService) RecordPayment(ctx context.Context, studentID int, req *model.RecordPaymentRequest, recordedBy string) (*model.Payment, *model.Student, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidPaymentAmount
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		d, err := time.Parse("2006-01-02", req.PaymentDate)
		if err == nil {
			paymentDate = d
		}
	}

	method := req.PaymentMethod
	if method == "" {
		method = model.MethodCash
	}

	payment := &model.Payment{
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		Method:        method,
		ReceiptNumber: newReceiptNumber(),
		Notes:         req.Notes,
		RecordedBy:    recordedBy,
	}

	student, err := s.ledger.RecordPayment(ctx, studentID, payment)
	if err != nil {
		return nil, nil, err
	}

	metrics.PaymentsRecorded.Inc()
	s.log.Info().
		Int("student_id", studentID).
		Int64("amount", payment.Amount).
		Str("receipt", payment.ReceiptNumber).
		Msg("Payment recorded")

	return payment, student, nil
}

// PaymentHistory retrieves a student's payments together with the student.
func (s *FeeService) PaymentHistory(ctx context.Context, studentID int) (*model.Student, []model.Payment, error) {
	student, err := s.ledger.GetByID(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	payments, err := s.ledger.ListPayments(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return student, payments, nil
}

// MyFees builds a student's own fee summary, matched by their login email.
func (s *FeeService) MyFees(ctx context.Context, email string) (*model.FeeSummary, error) {
	student, err := s.ledger.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	var percentagePaid float64
	if student.TotalFee > 0 {
		percentagePaid = math.Round(float64(student.FeePaid)/float64(student.TotalFee)*1000) / 10
	}

	summary := &model.FeeSummary{
		Name:           student.Name,
		Class:          student.Class,
		Board:          student.Board,
		TotalFee:       student.TotalFee,
		FeePaid:        student.FeePaid,
		FeeDiscount:    student.FeeDiscount,
		FeePending:     student.FeePending(),
		PercentagePaid: percentagePaid,
		Status:         student.FeeStatus(),
	}

	payments, err := s.ledger.ListPayments(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if len(payments) > 0 {
		summary.LastPayment = &payments[len(payments)-1]
	}
	return summary, nil
}

// Defaulters retrieves Active students with a pending balance, largest first.
func (s *FeeService) Defaulters(ctx context.Context) ([]model.Defaulter, error) {
	defaulters, err := s.ledger.GetDefaulters(ctx)
	if err != nil {
		return nil, err
	}
	if defaulters == nil {
		defaulters = []model.Defaulter{}
	}
	return defaulters, nil
}

// Statistics aggregates the ledger across Active students, computed fresh on
// every call.
func (s *FeeService) Statistics(ctx context.Context) (*model.FeeStatistics, error) {
	return s.ledger.GetStatistics(ctx)
}

// newReceiptNumber derives a receipt number from the current timestamp,
// matching the RCP<millis> format printed on paper receipts.
func newReceiptNumber() string {
	return fmt.Sprintf("RCP%d", time.Now().UnixMilli())
}
