package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type membershipRepository struct {
	db querier
}

func NewMembershipRepository(db querier) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipColumns = `id, member_id, group_id, role, created_on`

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (member_id, group_id, role, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, m.MemberID, m.GroupID, m.Role, time.Now().UTC()).Scan(&m.ID, &m.CreatedOn)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create membership")
	}
	return nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id int64) (*domain.Membership, error) {
	return r.getOne(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id)
}

func (r *membershipRepository) GetByMemberAndGroup(ctx context.Context, memberID, groupID int64) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1 AND group_id = $2`
	err := r.db.QueryRowContext(ctx, query, memberID, groupID).Scan(&m.ID, &m.MemberID, &m.GroupID, &m.Role, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("membership not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get membership")
	}
	return m, nil
}

func (r *membershipRepository) getOne(ctx context.Context, query string, arg any) (*domain.Membership, error) {
	m := &domain.Membership{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&m.ID, &m.MemberID, &m.GroupID, &m.Role, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("membership not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get membership")
	}
	return m, nil
}

func (r *membershipRepository) ListByGroup(ctx context.Context, groupID int64) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE group_id = $1 ORDER BY created_on, id`
	return r.list(ctx, query, groupID)
}

func (r *membershipRepository) ListByMember(ctx context.Context, memberID int64) ([]domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1 ORDER BY created_on, id`
	return r.list(ctx, query, memberID)
}

func (r *membershipRepository) list(ctx context.Context, query string, arg any) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list memberships")
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.MemberID, &m.GroupID, &m.Role, &m.CreatedOn); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan membership")
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}

func (r *membershipRepository) CountByGroup(ctx context.Context, groupID int64) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM memberships WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&count); err != nil {
		return 0, domain.WrapPersistence(err, "failed to count memberships")
	}
	return count, nil
}

func (r *membershipRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM memberships WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.WrapPersistence(err, "failed to delete membership")
	}
	return nil
}
