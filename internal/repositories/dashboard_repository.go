package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DashboardRepository serves the live market dashboard aggregates.
type DashboardRepository struct {
	DB *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

type DashboardSnapshot struct {
	Date            string               `json:"date"`
	EntryCount      int                  `json:"entry_count"`
	TotalQuantity   decimal.Decimal      `json:"total_quantity"`
	GrossAmount     decimal.Decimal      `json:"gross_amount"`
	NetAmount       decimal.Decimal      `json:"net_amount"`
	PendingAdvances int                  `json:"pending_advances"`
	AdvancesPaidOut decimal.Decimal      `json:"advances_paid_out"`
	ByFlowerType    []FlowerTypeActivity `json:"by_flower_type"`
	GeneratedAt     time.Time            `json:"generated_at"`
}

type FlowerTypeActivity struct {
	FlowerTypeName string          `json:"flower_type_name"`
	EntryCount     int             `json:"entry_count"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
}

// Snapshot aggregates the given day's entries and advances.
func (r *DashboardRepository) Snapshot(ctx context.Context, day time.Time) (*DashboardSnapshot, error) {
	snap := &DashboardSnapshot{
		Date:        day.Format("2006-01-02"),
		GeneratedAt: time.Now(),
	}

	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total_amount), 0),
		        COALESCE(SUM(net_amount), 0)
		 FROM daily_entries
		 WHERE entry_date = $1 AND deleted_at IS NULL`, day,
	).Scan(&snap.EntryCount, &snap.TotalQuantity, &snap.GrossAmount, &snap.NetAmount)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'PENDING'),
		        COALESCE(SUM(amount) FILTER (WHERE status IN ('APPROVED', 'SETTLED') AND advance_date = $1), 0)
		 FROM cash_advances
		 WHERE deleted_at IS NULL`, day,
	).Scan(&snap.PendingAdvances, &snap.AdvancesPaidOut)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT COALESCE(ft.name, ''), COUNT(*), COALESCE(SUM(de.quantity), 0),
		        COALESCE(SUM(de.total_amount), 0)
		 FROM daily_entries de
		 LEFT JOIN flower_types ft ON ft.id = de.flower_type_id
		 WHERE de.entry_date = $1 AND de.deleted_at IS NULL
		 GROUP BY ft.name
		 ORDER BY SUM(de.total_amount) DESC`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a FlowerTypeActivity
		if err := rows.Scan(&a.FlowerTypeName, &a.EntryCount, &a.TotalQuantity, &a.GrossAmount); err != nil {
			return nil, err
		}
		snap.ByFlowerType = append(snap.ByFlowerType, a)
	}
	return snap, rows.Err()
}
