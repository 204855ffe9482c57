package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFeePending(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		paid     int64
		discount int64
		want     int64
	}{
		{"untouched ledger", 50000, 0, 0, 50000},
		{"partial payment", 50000, 20000, 0, 30000},
		{"discount counts as settled", 50000, 40000, 10000, 0},
		{"fully paid", 50000, 50000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Student{TotalFee: tt.total, FeePaid: tt.paid, FeeDiscount: tt.discount}
			if got := s.FeePending(); got != tt.want {
				t.Errorf("FeePending() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFeeStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		paid     int64
		discount int64
		want     FeeStatus
	}{
		{"nothing paid", 50000, 0, 0, FeeUnpaid},
		{"partially paid", 50000, 20000, 0, FeePartial},
		{"fully paid", 50000, 50000, 0, FeePaidUp},
		{"settled by discount alone", 50000, 0, 50000, FeePaidUp},
		{"one rupee short stays partial", 50000, 49999, 0, FeePartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Student{TotalFee: tt.total, FeePaid: tt.paid, FeeDiscount: tt.discount}
			if got := s.FeeStatus(); got != tt.want {
				t.Errorf("FeeStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStudentMarshalIncludesDerivedFields(t *testing.T) {
	s := Student{
		Name:     "Asha Verma",
		Mobile:   "9876543210",
		Class:    "10",
		Board:    "CBSE",
		TotalFee: 50000,
		FeePaid:  20000,
		Status:   StatusActive,
	}

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, `"feePending":30000`) {
		t.Errorf("feePending missing or wrong: %s", body)
	}
	if !strings.Contains(body, `"feeStatus":"Partial"`) {
		t.Errorf("feeStatus missing or wrong: %s", body)
	}
}

func TestStudentMarshalOmitsEmptyEmail(t *testing.T) {
	s := Student{Name: "No Email", Mobile: "9876543211", TotalFee: 1000, Status: StatusActive}

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"email"`) {
		t.Errorf("nil email should be omitted: %s", raw)
	}
}
