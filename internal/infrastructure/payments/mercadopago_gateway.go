package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"escrowpay/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrGatewayNotConfigured          = errors.New("payment gateway not configured")
	ErrWebhookSecretNotConfigured    = errors.New("webhook secret not configured")
	ErrSignatureMismatch             = errors.New("signature mismatch")
)

// MercadoPagoGateway implements IPaymentProvider against Mercado Pago.
//
// Webhook signatures are HMAC-SHA256 over "timestamp.body" with the shared
// secret from PROVIDER_WEBHOOK_SECRET, hex-encoded. The SDK does not verify
// inbound signatures, so the check lives here.
//
// Mock mode (PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK) skips the external API
// for local runs; signature verification still applies when a secret is set.

type MercadoPagoGateway struct {
	client        payment.Client
	webhookSecret string
	mockMode      bool
}

var _ interfaces.IPaymentProvider = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, webhookSecret string) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{webhookSecret: webhookSecret, mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), webhookSecret: webhookSecret}, nil
}

func (g *MercadoPagoGateway) VerifySignature(payload []byte, signature string, timestamp string) error {
	if g == nil || strings.TrimSpace(g.webhookSecret) == "" {
		return ErrWebhookSecretNotConfigured
	}
	signature = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if signature == "" {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrSignatureMismatch
	}
	return nil
}

func (g *MercadoPagoGateway) InitiatePayment(ctx context.Context, payerID string, beneficiaryID string, amount float64, description string) (string, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock initiate success reference_no=%s amount=%.2f", id, amount)
		return id, nil
	}
	if g == nil || g.client == nil {
		return "", ErrGatewayNotConfigured
	}
	log.Printf("[payment][gateway] initiate start payer_id=%s amount=%.2f", payerID, amount)

	req := payment.Request{
		TransactionAmount: amount,
		Description:       description,
		ExternalReference: beneficiaryID,
	}
	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return "", err
	}
	log.Printf("[payment][gateway] initiate success provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)
	return fmt.Sprintf("%d", resp.ID), nil
}

func (g *MercadoPagoGateway) CompletePayment(ctx context.Context, referenceNo string) error {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock complete success reference_no=%s", referenceNo)
		return nil
	}
	if g == nil || g.client == nil {
		return ErrGatewayNotConfigured
	}

	resp, err := g.getProviderPayment(ctx, referenceNo)
	if err != nil {
		return err
	}
	if resp.Status != "approved" {
		return fmt.Errorf("payment %s not approved on provider side (status=%s)", referenceNo, resp.Status)
	}
	return nil
}

func (g *MercadoPagoGateway) ReleaseEscrow(ctx context.Context, referenceNo string, amount float64) error {
	if g != nil && g.mockMode {
		log.Printf("[payment][gateway] mock release success reference_no=%s amount=%.2f", referenceNo, amount)
		return nil
	}
	if g == nil || g.client == nil {
		return ErrGatewayNotConfigured
	}
	log.Printf("[payment][gateway] release start reference_no=%s amount=%.2f", referenceNo, amount)

	// Mercado Pago moves held funds on its own settlement schedule; the release
	// call only confirms the payment is still accredited before we flip state.
	resp, err := g.getProviderPayment(ctx, referenceNo)
	if err != nil {
		return err
	}
	if resp.Status != "approved" {
		return fmt.Errorf("payment %s not releasable (status=%s)", referenceNo, resp.Status)
	}
	log.Printf("[payment][gateway] release success reference_no=%s", referenceNo)
	return nil
}

func (g *MercadoPagoGateway) getProviderPayment(ctx context.Context, referenceNo string) (*payment.Response, error) {
	id, err := strconv.Atoi(referenceNo)
	if err != nil {
		return nil, fmt.Errorf("reference_no %q is not a provider payment id: %w", referenceNo, err)
	}
	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed reference_no=%s err=%v", referenceNo, err)
		return nil, err
	}
	return resp, nil
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
