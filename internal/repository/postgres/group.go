package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type groupRepository struct {
	db querier
}

func NewGroupRepository(db querier) repository.GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = `id, name, contribution_cents, member_limit, currency, payout_type, frequency, duration, start_date, cycles, status, created_on`

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (name, contribution_cents, member_limit, currency, payout_type, frequency, duration, start_date, cycles, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		g.Name, g.ContributionCents, g.MemberLimit, g.Currency, g.PayoutType,
		g.Frequency, g.Duration, g.StartDate, g.Cycles, g.Status, time.Now().UTC(),
	).Scan(&g.ID, &g.CreatedOn)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create group")
	}
	return nil
}

func (r *groupRepository) CreateSettings(ctx context.Context, s *domain.GroupSettings) error {
	query := `INSERT INTO group_settings (group_id, penalty_cents, penalty_grace_days, allow_deferrals)
	          VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, s.GroupID, s.PenaltyCents, s.PenaltyGraceDays, s.AllowDeferrals); err != nil {
		return domain.WrapPersistence(err, "failed to create group settings")
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	return r.getOne(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
}

func (r *groupRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Group, error) {
	return r.getOne(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1 FOR UPDATE`, id)
}

func (r *groupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	return r.getOne(ctx, `SELECT `+groupColumns+` FROM groups WHERE name = $1`, name)
}

func (r *groupRepository) getOne(ctx context.Context, query string, arg any) (*domain.Group, error) {
	g := &domain.Group{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&g.ID, &g.Name, &g.ContributionCents, &g.MemberLimit, &g.Currency, &g.PayoutType,
		&g.Frequency, &g.Duration, &g.StartDate, &g.Cycles, &g.Status, &g.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("group not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get group")
	}
	return g, nil
}

func (r *groupRepository) GetSettings(ctx context.Context, groupID int64) (*domain.GroupSettings, error) {
	s := &domain.GroupSettings{}
	query := `SELECT group_id, penalty_cents, penalty_grace_days, allow_deferrals FROM group_settings WHERE group_id = $1`
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(&s.GroupID, &s.PenaltyCents, &s.PenaltyGraceDays, &s.AllowDeferrals)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("group settings not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get group settings")
	}
	return s, nil
}

func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list groups")
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(
			&g.ID, &g.Name, &g.ContributionCents, &g.MemberLimit, &g.Currency, &g.PayoutType,
			&g.Frequency, &g.Duration, &g.StartDate, &g.Cycles, &g.Status, &g.CreatedOn,
		); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan group")
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET name = $1, contribution_cents = $2, member_limit = $3, currency = $4,
	          payout_type = $5, frequency = $6, duration = $7, start_date = $8, status = $9 WHERE id = $10`
	if _, err := r.db.ExecContext(ctx, query,
		g.Name, g.ContributionCents, g.MemberLimit, g.Currency, g.PayoutType,
		g.Frequency, g.Duration, g.StartDate, g.Status, g.ID,
	); err != nil {
		return domain.WrapPersistence(err, "failed to update group")
	}
	return nil
}

func (r *groupRepository) UpdateSettings(ctx context.Context, s *domain.GroupSettings) error {
	query := `UPDATE group_settings SET penalty_cents = $1, penalty_grace_days = $2, allow_deferrals = $3 WHERE group_id = $4`
	if _, err := r.db.ExecContext(ctx, query, s.PenaltyCents, s.PenaltyGraceDays, s.AllowDeferrals, s.GroupID); err != nil {
		return domain.WrapPersistence(err, "failed to update group settings")
	}
	return nil
}

func (r *groupRepository) SetCycles(ctx context.Context, groupID int64, cycles int32) error {
	query := `UPDATE groups SET cycles = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, cycles, groupID); err != nil {
		return domain.WrapPersistence(err, "failed to update group cycles")
	}
	return nil
}
