package handlers

import (
	"errors"
	"log"
	"net/http"

	response "escrowpay/internal/adapter/http/dto/response"
	"escrowpay/internal/usecase"
	"escrowpay/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderWebhookSignature = "X-Signature"
	HeaderWebhookTimestamp = "X-Signature-Timestamp"
)

// WebhookHandler handles inbound provider payment notifications.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// ReceiveProviderNotification ingests one provider webhook delivery.
//
// The raw body is passed through untouched: signature verification runs over
// the exact bytes the provider signed. Re-deliveries are safe — the ledger is
// the idempotency authority, and this service's own reconciliation retries
// independently of the provider's redelivery policy.
//
// @Summary      Provider payment notification
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Signature            header  string  false  "HMAC-SHA256 signature of timestamp.body"
// @Param        X-Signature-Timestamp  header  string  false  "Signature timestamp"
// @Success      200  {object}  response.WebhookAckResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /webhooks/payments [post]
func (h *WebhookHandler) ReceiveProviderNotification(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	signature := c.GetHeader(HeaderWebhookSignature)
	timestamp := c.GetHeader(HeaderWebhookTimestamp)
	log.Printf("[webhook][handler] notification received payload_len=%d signed=%t", len(raw), signature != "")

	if err := h.usecase.Ingest(c.Request.Context(), raw, signature, timestamp); err != nil {
		log.Printf("[webhook][handler] ingest failed err=%v", err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.WebhookAckResponse{Status: "received"})
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidSignature):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Webhook signature verification failed", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrMissingReferenceNo), errors.Is(err, usecase.ErrInvalidWebhookBody):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid webhook payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "No payment found for this reference number", http.StatusNotFound)
	default:
		return pkg.NewDomainError("PROCESSING_FAILED", "Notification accepted but processing failed; it will be retried", err, http.StatusInternalServerError)
	}
}
