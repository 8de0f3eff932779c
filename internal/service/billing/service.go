package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pontocerto/pontocerto-backend-go/internal/config"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/billing"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/company"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/pix"
)

type BillingServiceImpl struct {
	billing.ChargeRepository
	companyRepo company.CompanyRepository
	pixClient   *pix.Client
	chargeTTL   time.Duration
}

func NewBillingService(
	repo billing.ChargeRepository,
	companyRepo company.CompanyRepository,
	pixClient *pix.Client,
	cfg config.PixConfig,
) billing.BillingService {
	return &BillingServiceImpl{
		ChargeRepository: repo,
		companyRepo:      companyRepo,
		pixClient:        pixClient,
		chargeTTL:        time.Duration(cfg.ChargeTTL) * time.Second,
	}
}

func claims(ctx context.Context) (companyID string, email string, err error) {
	_, tokenClaims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := tokenClaims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	email, _ = tokenClaims["email"].(string)
	return companyID, email, nil
}

// CreateCharge implements billing.BillingService.
func (s *BillingServiceImpl) CreateCharge(ctx context.Context, req billing.CreateChargeRequest) (billing.ChargeResponse, error) {
	if err := req.Validate(); err != nil {
		return billing.ChargeResponse{}, err
	}

	companyID, payerEmail, err := claims(ctx)
	if err != nil {
		return billing.ChargeResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return billing.ChargeResponse{}, fmt.Errorf("failed to generate charge ID: %w", err)
	}

	amount := billing.PricePerSeat.Mul(decimal.NewFromInt(int64(req.Seats)))
	expiresAt := time.Now().Add(s.chargeTTL)

	providerCharge, err := s.pixClient.CreateCharge(ctx, pix.CreateChargeRequest{
		ExternalReference: id.String(),
		Amount:            amount,
		Description:       fmt.Sprintf("%d vaga(s) de funcionario - 30 dias", req.Seats),
		PayerEmail:        payerEmail,
		ExpiresAt:         expiresAt,
	})
	if err != nil {
		slog.Error("pix charge creation failed", "company_id", companyID, "error", err)
		return billing.ChargeResponse{}, billing.ErrProvider
	}

	created, err := s.ChargeRepository.Create(ctx, billing.Charge{
		ID:               id.String(),
		CompanyID:        companyID,
		ProviderChargeID: providerCharge.ID,
		Seats:            req.Seats,
		Amount:           amount,
		Currency:         "BRL",
		Status:           billing.ChargePending,
		QRCode:           providerCharge.QRCodeBase64,
		CopyPasteCode:    providerCharge.CopyPasteCode,
		ExpiresAt:        expiresAt,
	})
	if err != nil {
		return billing.ChargeResponse{}, fmt.Errorf("failed to persist charge: %w", err)
	}

	return toChargeResponse(created), nil
}

// GetCharge implements billing.BillingService.
func (s *BillingServiceImpl) GetCharge(ctx context.Context, id string) (billing.ChargeResponse, error) {
	companyID, _, err := claims(ctx)
	if err != nil {
		return billing.ChargeResponse{}, err
	}

	found, err := s.ChargeRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.ChargeResponse{}, billing.ErrChargeNotFound
		}
		return billing.ChargeResponse{}, fmt.Errorf("failed to get charge by ID: %w", err)
	}

	return toChargeResponse(found), nil
}

// ListCharges implements billing.BillingService.
func (s *BillingServiceImpl) ListCharges(ctx context.Context) ([]billing.ChargeResponse, error) {
	companyID, _, err := claims(ctx)
	if err != nil {
		return nil, err
	}

	charges, err := s.ChargeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}

	responses := make([]billing.ChargeResponse, 0, len(charges))
	for _, c := range charges {
		responses = append(responses, toChargeResponse(c))
	}
	return responses, nil
}

// PollPending implements billing.BillingService. One provider failure
// does not stop the sweep; the charge is retried on the next run.
func (s *BillingServiceImpl) PollPending(ctx context.Context) error {
	pending, err := s.ChargeRepository.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending charges: %w", err)
	}

	for _, charge := range pending {
		if err := s.refresh(ctx, charge); err != nil {
			slog.Warn("failed to refresh pix charge",
				"charge_id", charge.ID,
				"company_id", charge.CompanyID,
				"error", err,
			)
		}
	}
	return nil
}

func (s *BillingServiceImpl) refresh(ctx context.Context, charge billing.Charge) error {
	providerCharge, err := s.pixClient.GetCharge(ctx, charge.ProviderChargeID)
	if err != nil {
		return err
	}

	var status billing.ChargeStatus
	switch providerCharge.Status {
	case "approved":
		status = billing.ChargeApproved
	case "cancelled", "rejected":
		status = billing.ChargeCancelled
	case "expired":
		status = billing.ChargeExpired
	default:
		if time.Now().After(charge.ExpiresAt) {
			status = billing.ChargeExpired
		} else {
			return nil
		}
	}

	charge.Status = status
	if status == billing.ChargeApproved {
		now := time.Now()
		charge.ApprovedAt = &now
	}

	if err := s.ChargeRepository.UpdateStatus(ctx, charge); err != nil {
		// Lost the race against a concurrent poller; the winner already
		// applied the transition.
		if errors.Is(err, billing.ErrChargeProcessed) {
			return nil
		}
		return err
	}

	if status == billing.ChargeApproved {
		expiresAt := time.Now().AddDate(0, 0, billing.SubscriptionPeriodDays)
		if err := s.companyRepo.ExtendSubscription(ctx, charge.CompanyID, charge.Seats, expiresAt); err != nil {
			return fmt.Errorf("failed to extend subscription: %w", err)
		}
		slog.Info("subscription extended",
			"company_id", charge.CompanyID,
			"seats", charge.Seats,
			"expires_at", expiresAt,
		)
	}
	return nil
}

func toChargeResponse(c billing.Charge) billing.ChargeResponse {
	response := billing.ChargeResponse{
		ID:            c.ID,
		Seats:         c.Seats,
		Amount:        c.Amount.StringFixed(2),
		Currency:      c.Currency,
		Status:        string(c.Status),
		QRCode:        c.QRCode,
		CopyPasteCode: c.CopyPasteCode,
		ExpiresAt:     c.ExpiresAt.Format(time.RFC3339),
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.ApprovedAt != nil {
		approvedAt := c.ApprovedAt.Format(time.RFC3339)
		response.ApprovedAt = &approvedAt
	}
	return response
}
