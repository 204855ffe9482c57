package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/coachdesk/coachdesk-backend/internal/middleware"
	"github.com/coachdesk/coachdesk-backend/internal/model"
	"github.com/coachdesk/coachdesk-backend/internal/repository"
	"github.com/coachdesk/coachdesk-backend/internal/response"
	"github.com/coachdesk/coachdesk-backend/internal/service"
	"github.com/coachdesk/coachdesk-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// FeeHandler handles the fee ledger endpoints.
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// RecordPayment godoc
// POST /api/fee/payment/:studentId
// Appends a payment to the student's ledger and returns the receipt plus the
// refreshed student. A payment larger than the pending balance is rejected.
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecordPaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	recordedBy := "admin"
	if claims := middleware.GetClaims(c); claims != nil {
		recordedBy = claims.Email
	}

	payment, student, err := h.feeService.RecordPayment(c.Request.Context(), studentID, &req, recordedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentAmount):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPaymentAmount)
		case errors.Is(err, repository.ErrStudentNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrPaymentExceedsPending):
			response.Fail(c, http.StatusBadRequest, response.ErrPaymentExceedsDue)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"receiptNumber": payment.ReceiptNumber,
		"payment":       payment,
		"student":       student,
	})
}

// PaymentHistory godoc
// GET /api/fee/payment-history/:studentId
// Returns the student's payments, oldest first.
func (h *FeeHandler) PaymentHistory(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, payments, err := h.feeService.PaymentHistory(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student":  student,
		"payments": payments,
	})
}

// MyFees godoc
// GET /api/fee/my-fees
// Returns the authenticated student's own ledger view, resolved by the email
// in their token.
func (h *FeeHandler) MyFees(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	summary, err := h.feeService.MyFees(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"fees": summary})
}

// Statistics godoc
// GET /api/fee/statistics
// Aggregates the ledger across Active students, always computed fresh.
func (h *FeeHandler) Statistics(c *gin.Context) {
	stats, err := h.feeService.Statistics(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statistics": stats})
}

// Defaulters godoc
// GET /api/fee/defaulters
// Lists Active students with a positive pending balance, largest first.
func (h *FeeHandler) Defaulters(c *gin.Context) {
	defaulters, err := h.feeService.Defaulters(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"defaulters": defaulters,
		"count":      len(defaulters),
	})
}
