package handlers

import (
	"errors"
	"log"
	"net/http"

	request "escrowpay/internal/adapter/http/dto/request"
	response "escrowpay/internal/adapter/http/dto/response"
	"escrowpay/internal/usecase"
	"escrowpay/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// PaymentHandler handles HTTP requests for payments and escrow operations.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// InitiatePayment opens a payment attempt and persists the pending row that
// later provider notifications will complete or fail.
//
// @Summary      Initiate payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body  request.InitiatePaymentRequest  true  "Payment to initiate"
// @Success      200  {object}  response.PaymentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Router       /payments [post]
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var payload request.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] initiate start payer_id=%s amount=%.2f", payload.PayerID, payload.Amount)

	created, err := h.usecase.Initiate(c.Request.Context(), usecase.InitiatePaymentCommand{
		PayerID:       payload.PayerID,
		BeneficiaryID: payload.BeneficiaryID,
		Amount:        payload.Amount,
		Description:   payload.ResolveDescription(),
	})
	if err != nil {
		log.Printf("[payment][handler] initiate failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] initiate success payment_id=%s", created.ID)

	c.JSON(http.StatusOK, response.FromPayment(created))
}

// GetPayment returns a payment by id.
//
// @Summary      Get payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment id (provider reference number)"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	p, err := h.usecase.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(p))
}

// GetEscrow returns the escrow record held for a payment.
//
// @Summary      Get escrow record
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment id"
// @Success      200  {object}  response.EscrowResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/escrow [get]
func (h *PaymentHandler) GetEscrow(c *gin.Context) {
	paymentID := c.Param("payment_id")

	e, err := h.usecase.GetEscrowByPaymentID(c.Request.Context(), paymentID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEscrowRecord(e))
}

// ReleaseEscrow releases held funds for a completed payment.
//
// @Summary      Release escrow
// @Tags         payments
// @Produce      json
// @Param        payment_id  path  string  true  "Payment id"
// @Success      200  {object}  response.EscrowResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/escrow/release [post]
func (h *PaymentHandler) ReleaseEscrow(c *gin.Context) {
	paymentID := c.Param("payment_id")
	log.Printf("[payment][handler] escrow release start payment_id=%s", paymentID)

	released, err := h.usecase.ReleaseEscrow(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] escrow release failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] escrow release success payment_id=%s", paymentID)

	c.JSON(http.StatusOK, response.FromEscrowRecord(released))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPayerID),
		errors.Is(err, usecase.ErrInvalidBeneficiaryID),
		errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotCompleted), errors.Is(err, usecase.ErrEscrowNotHeld):
		return pkg.NewDomainErrorSimple("ESCROW_NOT_RELEASABLE", "Escrow is not in a releasable state", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
