package pix

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/pontocerto/pontocerto-backend-go/internal/config"
)

// Client wraps the PIX payment provider's REST API (Mercado Pago
// compatible). Charges are created with a copy-paste code and QR code
// and later polled for approval; no webhook is required.
type Client struct {
	http        *resty.Client
	webhookURL  string
	environment string
}

func NewClient(cfg config.PixConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		http:        http,
		webhookURL:  cfg.WebhookURL,
		environment: cfg.Environment,
	}
}

// APIError represents a provider API error.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pix API error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// IsSandbox returns true if running in sandbox mode.
func (c *Client) IsSandbox() bool {
	return c.environment == "sandbox"
}

type CreateChargeRequest struct {
	ExternalReference string
	Amount            decimal.Decimal
	Description       string
	PayerEmail        string
	ExpiresAt         time.Time
}

type ChargeResponse struct {
	ID                string
	Status            string // pending, approved, cancelled, expired
	Amount            decimal.Decimal
	QRCodeBase64      string
	CopyPasteCode     string
	ExternalReference string
	ExpiresAt         time.Time
}

type paymentRequest struct {
	TransactionAmount float64      `json:"transaction_amount"`
	Description       string       `json:"description"`
	PaymentMethodID   string       `json:"payment_method_id"`
	ExternalReference string       `json:"external_reference"`
	DateOfExpiration  string       `json:"date_of_expiration"`
	NotificationURL   string       `json:"notification_url,omitempty"`
	Payer             paymentPayer `json:"payer"`
}

type paymentPayer struct {
	Email string `json:"email"`
}

type paymentResponse struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	TransactionAmount float64 `json:"transaction_amount"`
	ExternalReference string  `json:"external_reference"`
	DateOfExpiration  string  `json:"date_of_expiration"`

	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateCharge creates a PIX charge and returns the payable codes.
func (c *Client) CreateCharge(ctx context.Context, req CreateChargeRequest) (*ChargeResponse, error) {
	amount, _ := req.Amount.Float64()

	body := paymentRequest{
		TransactionAmount: amount,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.ExternalReference,
		DateOfExpiration:  req.ExpiresAt.Format("2006-01-02T15:04:05.000-07:00"),
		NotificationURL:   c.webhookURL,
		Payer:             paymentPayer{Email: req.PayerEmail},
	}

	var result paymentResponse
	var apiErr errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Idempotency-Key", req.ExternalReference).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/payments")
	if err != nil {
		return nil, fmt.Errorf("failed to create pix charge: %w", err)
	}

	if resp.IsError() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			ErrorCode:  apiErr.Error,
			Message:    apiErr.Message,
		}
	}

	return toChargeResponse(result), nil
}

// GetCharge fetches the current state of a charge for status polling.
func (c *Client) GetCharge(ctx context.Context, providerChargeID string) (*ChargeResponse, error) {
	var result paymentResponse
	var apiErr errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		Get(fmt.Sprintf("/v1/payments/%s", providerChargeID))
	if err != nil {
		return nil, fmt.Errorf("failed to get pix charge: %w", err)
	}

	if resp.IsError() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			ErrorCode:  apiErr.Error,
			Message:    apiErr.Message,
		}
	}

	return toChargeResponse(result), nil
}

func toChargeResponse(p paymentResponse) *ChargeResponse {
	expiresAt, _ := time.Parse("2006-01-02T15:04:05.000-07:00", p.DateOfExpiration)

	return &ChargeResponse{
		ID:                fmt.Sprintf("%d", p.ID),
		Status:            p.Status,
		Amount:            decimal.NewFromFloat(p.TransactionAmount),
		QRCodeBase64:      p.PointOfInteraction.TransactionData.QRCodeBase64,
		CopyPasteCode:     p.PointOfInteraction.TransactionData.QRCode,
		ExternalReference: p.ExternalReference,
		ExpiresAt:         expiresAt,
	}
}
