package model

import "time"

// PaymentMethod is how a fee payment was made.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodOnline PaymentMethod = "Online"
	MethodCheque PaymentMethod = "Cheque"
	MethodCard   PaymentMethod = "Card"
)

// Payment is one entry in a student's payment sub-ledger. Payments are
// append-only and never edited in place.
type Payment struct {
	ID            int           `json:"id"`
	StudentID     int           `json:"studentId"`
	Amount        int64         `json:"amount"`
	PaymentDate   time.Time     `json:"paymentDate"`
	Method        PaymentMethod `json:"paymentMethod"`
	ReceiptNumber string        `json:"receiptNumber"`
	Notes         string        `json:"notes,omitempty"`
	RecordedBy    string        `json:"recordedBy"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// RecordPaymentRequest is the payload for recording a fee payment.
type RecordPaymentRequest struct {
	Amount        int64         `json:"amount" binding:"required,gt=0"`
	PaymentDate   string        `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=Cash Online Cheque Card"`
	Notes         string        `json:"notes" binding:"omitempty,max=300"`
}

// FeeSummary is a student's own view of their ledger.
type FeeSummary struct {
	Name           string    `json:"name"`
	Class          string    `json:"class"`
	Board          string    `json:"board"`
	TotalFee       int64     `json:"totalFee"`
	FeePaid        int64     `json:"feePaid"`
	FeeDiscount    int64     `json:"feeDiscount"`
	FeePending     int64     `json:"feePending"`
	PercentagePaid float64   `json:"percentagePaid"`
	Status         FeeStatus `json:"status"`
	LastPayment    *Payment  `json:"lastPayment"`
}
