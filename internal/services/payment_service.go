package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"flower-backend/internal/apperr"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

// PaymentService issues Razorpay payment links to recover dues from farmers
// whose settlement closed with a negative net payable. Collected payments are
// recorded in online_transactions only; the ledger balance is never written
// here.
type PaymentService struct {
	Client         *razorpay.Client
	WebhookSecret  string
	TxRepo         *repositories.OnlineTransactionRepository
	SettlementRepo *repositories.SettlementRepository
	FarmerRepo     *repositories.FarmerRepository
}

func NewPaymentService(client *razorpay.Client, webhookSecret string, txRepo *repositories.OnlineTransactionRepository, settlementRepo *repositories.SettlementRepository, farmerRepo *repositories.FarmerRepository) *PaymentService {
	return &PaymentService{
		Client:         client,
		WebhookSecret:  webhookSecret,
		TxRepo:         txRepo,
		SettlementRepo: settlementRepo,
		FarmerRepo:     farmerRepo,
	}
}

// CreateDuesLink creates a payment link for the dues of a settlement whose
// net payable is negative.
func (s *PaymentService) CreateDuesLink(ctx context.Context, settlementID int) (*models.OnlineTransaction, string, error) {
	if s.Client == nil {
		return nil, "", apperr.New(http.StatusServiceUnavailable, "VALIDATION", "online payments are not configured")
	}

	settlement, err := s.SettlementRepo.Get(ctx, settlementID)
	if err != nil {
		return nil, "", err
	}
	if settlement == nil {
		return nil, "", apperr.NotFound("SETTLEMENT_NOT_FOUND", "settlement not found")
	}
	if !settlement.NetPayable.IsNegative() {
		return nil, "", apperr.BadRequest("VALIDATION", "settlement has no dues to recover")
	}
	if settlement.Status != models.SettlementApproved && settlement.Status != models.SettlementPaid {
		return nil, "", apperr.BadRequest("INVALID_STATUS", "dues can only be recovered from approved or paid settlements")
	}

	farmer, err := s.FarmerRepo.Get(ctx, settlement.FarmerID)
	if err != nil {
		return nil, "", err
	}
	if farmer == nil {
		return nil, "", apperr.BadRequest("INVALID_FARMER", "farmer not found")
	}

	dues := settlement.NetPayable.Neg()
	// Razorpay wants paise.
	amountPaise := dues.Mul(decimal.NewFromInt(100)).IntPart()

	link, err := s.Client.PaymentLink.Create(map[string]interface{}{
		"amount":      amountPaise,
		"currency":    "INR",
		"description": fmt.Sprintf("Dues for settlement %s", settlement.SettlementNumber),
		"customer": map[string]interface{}{
			"name":    farmer.Name,
			"contact": farmer.Phone,
		},
		"notify": map[string]interface{}{
			"sms": true,
		},
	}, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment link: %w", err)
	}

	linkID, _ := link["id"].(string)
	shortURL, _ := link["short_url"].(string)
	if linkID == "" {
		return nil, "", fmt.Errorf("payment link response missing id")
	}

	tx := &models.OnlineTransaction{
		FarmerID:       settlement.FarmerID,
		SettlementID:   &settlement.ID,
		RazorpayLinkID: linkID,
		Amount:         dues,
		Status:         "CREATED",
	}
	if err := s.TxRepo.Create(ctx, tx); err != nil {
		return nil, "", err
	}
	return tx, shortURL, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature HMAC over the raw
// body.
func (s *PaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment_link"`
		Payment struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook processes a verified Razorpay event. Unknown events and
// unknown links are ignored; webhooks retry and must stay idempotent.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte) error {
	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperr.BadRequest("VALIDATION", "malformed webhook payload")
	}

	if event.Event != "payment_link.paid" {
		return nil
	}

	linkID := event.Payload.PaymentLink.Entity.ID
	tx, err := s.TxRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return err
	}
	if tx == nil {
		log.Printf("[Payments] Webhook for unknown link %s, ignoring", linkID)
		return nil
	}
	if tx.Status == "PAID" {
		return nil
	}

	return s.TxRepo.MarkPaid(ctx, linkID, event.Payload.Payment.Entity.ID)
}
