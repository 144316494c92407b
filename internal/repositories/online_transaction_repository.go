package repositories

import (
	"context"
	"errors"

	"flower-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, t *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions (farmer_id, settlement_id, razorpay_link_id, amount, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.FarmerID, t.SettlementID, t.RazorpayLinkID, t.Amount, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *OnlineTransactionRepository) GetByLinkID(ctx context.Context, linkID string) (*models.OnlineTransaction, error) {
	var t models.OnlineTransaction
	err := r.DB.QueryRow(ctx,
		`SELECT id, farmer_id, settlement_id, razorpay_link_id, razorpay_payment_id,
		        amount, status, created_at, updated_at
		 FROM online_transactions WHERE razorpay_link_id = $1`, linkID,
	).Scan(&t.ID, &t.FarmerID, &t.SettlementID, &t.RazorpayLinkID, &t.RazorpayPaymentID,
		&t.Amount, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *OnlineTransactionRepository) MarkPaid(ctx context.Context, linkID, paymentID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions
		 SET status = 'PAID', razorpay_payment_id = $1, updated_at = NOW()
		 WHERE razorpay_link_id = $2`, paymentID, linkID)
	return err
}
