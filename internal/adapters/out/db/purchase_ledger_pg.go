// internal/adapters/out/db/purchase_ledger_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"stocklot/internal/application/usecase"
)

// PurchaseLedgerPG is the Postgres adapter for the purchase_ledger
// reporting mirror. Firestore stays the source of truth; rows here are
// append-only and exist for SQL reporting.
type PurchaseLedgerPG struct {
	DB *sql.DB
}

func NewPurchaseLedgerPG(db *sql.DB) *PurchaseLedgerPG {
	return &PurchaseLedgerPG{DB: db}
}

// Compile-time check
var _ usecase.PurchaseLedgerPort = (*PurchaseLedgerPG)(nil)

// EnsureSchema creates the ledger table when missing. Called once at
// boot; safe to call repeatedly.
func (r *PurchaseLedgerPG) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("purchase ledger: db is nil")
	}
	const ddl = `
CREATE TABLE IF NOT EXISTS purchase_ledger (
  id          BIGSERIAL PRIMARY KEY,
  purchase_id TEXT        NOT NULL,
  offer_id    TEXT        NOT NULL,
  seller_id   TEXT        NOT NULL,
  buyer_id    TEXT        NOT NULL,
  quantity    INTEGER     NOT NULL,
  amount      BIGINT      NOT NULL,
  status      TEXT        NOT NULL,
  recorded_at TIMESTAMPTZ NOT NULL,
  CONSTRAINT purchase_ledger_purchase_status_uq UNIQUE (purchase_id, status)
);
CREATE INDEX IF NOT EXISTS idx_purchase_ledger_recorded_at
  ON purchase_ledger (recorded_at DESC);
`
	_, err := r.DB.ExecContext(ctx, ddl)
	return err
}

// =======================
// Mutations
// =======================

func (r *PurchaseLedgerPG) Record(ctx context.Context, e usecase.LedgerEntry) error {
	if r.DB == nil {
		return errors.New("purchase ledger: db is nil")
	}

	const q = `
INSERT INTO purchase_ledger (
  purchase_id, offer_id, seller_id, buyer_id,
  quantity, amount, status, recorded_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`
	recordedAt := e.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := r.DB.ExecContext(ctx, q,
		strings.TrimSpace(e.PurchaseID),
		strings.TrimSpace(e.OfferID),
		strings.TrimSpace(e.SellerID),
		strings.TrimSpace(e.BuyerID),
		e.Quantity,
		e.Amount,
		strings.TrimSpace(e.Status),
		recordedAt.UTC(),
	)
	// A retried terminal transition hits the (purchase_id, status)
	// constraint; the row is already there, so this is not a failure.
	if IsUniqueViolation(err) {
		return nil
	}
	return err
}

// =======================
// Queries
// =======================

func (r *PurchaseLedgerPG) ListRecent(ctx context.Context, limit int) ([]usecase.LedgerEntry, error) {
	if r.DB == nil {
		return nil, errors.New("purchase ledger: db is nil")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	const q = `
SELECT
  purchase_id, offer_id, seller_id, buyer_id,
  quantity, amount, status, recorded_at
FROM purchase_ledger
ORDER BY recorded_at DESC, id DESC
LIMIT $1
`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// =======================
// Helpers
// =======================

func scanLedgerEntry(s RowScanner) (usecase.LedgerEntry, error) {
	var (
		e          usecase.LedgerEntry
		recordedAt time.Time
	)
	if err := s.Scan(
		&e.PurchaseID, &e.OfferID, &e.SellerID, &e.BuyerID,
		&e.Quantity, &e.Amount, &e.Status, &recordedAt,
	); err != nil {
		return usecase.LedgerEntry{}, err
	}
	e.RecordedAt = recordedAt.UTC()
	return e, nil
}
