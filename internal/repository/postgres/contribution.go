package postgres

import (
	"context"
	"database/sql"
	"errors"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type contributionRepository struct {
	db querier
}

func NewContributionRepository(db querier) repository.ContributionRepository {
	return &contributionRepository{db: db}
}

const contributionColumns = `l.id, l.membership_id, l.payment_method, l.amount_cents, l.penalty_cents, l.total_cents, l.transaction_date, l.reference, COALESCE(l.proof_ref, ''), l.status, l.created_by, l.created_on`

const contributionFrom = ` FROM contributions l JOIN memberships m ON l.membership_id = m.id`

func (r *contributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	query := `INSERT INTO contributions (membership_id, payment_method, amount_cents, penalty_cents, total_cents, transaction_date, reference, proof_ref, status, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		c.MembershipID, c.PaymentMethod, c.AmountCents, c.PenaltyCents, c.TotalCents,
		c.TransactionDate, c.Reference, c.ProofRef, c.Status, c.CreatedBy, c.CreatedOn,
	).Scan(&c.ID, &c.CreatedOn)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create contribution")
	}
	return nil
}

func (r *contributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	c := &domain.Contribution{}
	query := `SELECT ` + contributionColumns + contributionFrom + ` WHERE l.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.MembershipID, &c.PaymentMethod, &c.AmountCents, &c.PenaltyCents, &c.TotalCents,
		&c.TransactionDate, &c.Reference, &c.ProofRef, &c.Status, &c.CreatedBy, &c.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("contribution not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get contribution")
	}
	return c, nil
}

func (r *contributionRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	query := `UPDATE contributions SET status = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return domain.WrapPersistence(err, "failed to update contribution status")
	}
	return nil
}

func (r *contributionRepository) List(ctx context.Context, q domain.LedgerQuery) ([]domain.Contribution, error) {
	where, args := ledgerWhere(q, "transaction_date")
	query := `SELECT ` + contributionColumns + contributionFrom + where + ` ORDER BY l.transaction_date, l.id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list contributions")
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(
			&c.ID, &c.MembershipID, &c.PaymentMethod, &c.AmountCents, &c.PenaltyCents, &c.TotalCents,
			&c.TransactionDate, &c.Reference, &c.ProofRef, &c.Status, &c.CreatedBy, &c.CreatedOn,
		); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan contribution")
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

// Sum totals contribution amounts (excluding penalties) over the query.
// Without an explicit status filter only successful contributions count.
func (r *contributionRepository) Sum(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	if q.NormalizedStatus() == "" {
		q.Status = string(domain.PaymentStatusSuccess)
	}
	where, args := ledgerWhere(q, "transaction_date")
	query := `SELECT COALESCE(SUM(l.amount_cents), 0)` + contributionFrom + where
	var sum int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, domain.WrapPersistence(err, "failed to sum contributions")
	}
	return sum, nil
}

// CountMissed counts penalized rows in the window; with an explicit status
// filter it instead counts rows of exactly that status.
func (r *contributionRepository) CountMissed(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	var extra []string
	if q.NormalizedStatus() == "" {
		extra = append(extra, "l.penalty_cents > 0")
	}
	where, args := ledgerWhere(q, "transaction_date", extra...)
	query := `SELECT count(*)` + contributionFrom + where
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, domain.WrapPersistence(err, "failed to count missed payments")
	}
	return count, nil
}

func (r *contributionRepository) CountPenalties(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	where, args := ledgerWhere(q, "transaction_date", "l.penalty_cents > 0")
	query := `SELECT count(*)` + contributionFrom + where
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, domain.WrapPersistence(err, "failed to count penalties")
	}
	return count, nil
}
