package postgres

import (
	"context"
	"database/sql"
	"errors"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type payoutRepository struct {
	db querier
}

func NewPayoutRepository(db querier) repository.PayoutRepository {
	return &payoutRepository{db: db}
}

const payoutColumns = `l.id, l.membership_id, l.payment_method, l.amount_cents, l.payout_date, l.reference, COALESCE(l.proof_ref, ''), l.status, l.created_by, l.created_on`

const payoutFrom = ` FROM payouts l JOIN memberships m ON l.membership_id = m.id`

func (r *payoutRepository) Create(ctx context.Context, p *domain.Payout) error {
	query := `INSERT INTO payouts (membership_id, payment_method, amount_cents, payout_date, reference, proof_ref, status, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		p.MembershipID, p.PaymentMethod, p.AmountCents, p.PayoutDate,
		p.Reference, p.ProofRef, p.Status, p.CreatedBy, p.CreatedOn,
	).Scan(&p.ID, &p.CreatedOn)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create payout")
	}
	return nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id int64) (*domain.Payout, error) {
	p := &domain.Payout{}
	query := `SELECT ` + payoutColumns + payoutFrom + ` WHERE l.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.MembershipID, &p.PaymentMethod, &p.AmountCents, &p.PayoutDate,
		&p.Reference, &p.ProofRef, &p.Status, &p.CreatedBy, &p.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("payout not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get payout")
	}
	return p, nil
}

func (r *payoutRepository) List(ctx context.Context, q domain.LedgerQuery) ([]domain.Payout, error) {
	where, args := ledgerWhere(q, "payout_date")
	query := `SELECT ` + payoutColumns + payoutFrom + where + ` ORDER BY l.payout_date, l.id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list payouts")
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		var p domain.Payout
		if err := rows.Scan(
			&p.ID, &p.MembershipID, &p.PaymentMethod, &p.AmountCents, &p.PayoutDate,
			&p.Reference, &p.ProofRef, &p.Status, &p.CreatedBy, &p.CreatedOn,
		); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan payout")
		}
		payouts = append(payouts, p)
	}
	return payouts, nil
}

// Sum totals payout amounts over the query. Without an explicit status
// filter only successful payouts count, mirroring contribution sums.
func (r *payoutRepository) Sum(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	if q.NormalizedStatus() == "" {
		q.Status = string(domain.PaymentStatusSuccess)
	}
	where, args := ledgerWhere(q, "payout_date")
	query := `SELECT COALESCE(SUM(l.amount_cents), 0)` + payoutFrom + where
	var sum int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, domain.WrapPersistence(err, "failed to sum payouts")
	}
	return sum, nil
}
