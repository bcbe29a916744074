package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type memberRepository struct {
	db querier
}

func NewMemberRepository(db querier) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, first_name, last_name, national_id, email, phone, registered_on, status`

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (first_name, last_name, national_id, email, phone, registered_on, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, registered_on`
	err := r.db.QueryRowContext(ctx, query,
		m.FirstName, m.LastName, m.NationalID, m.Email, m.Phone, time.Now().UTC(), m.Status,
	).Scan(&m.ID, &m.RegisteredOn)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create member")
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
}

func (r *memberRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE national_id = $1`, nationalID)
}

func (r *memberRepository) getOne(ctx context.Context, query string, arg any) (*domain.Member, error) {
	m := &domain.Member{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.NationalID, &m.Email, &m.Phone, &m.RegisteredOn, &m.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("member not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get member")
	}
	return m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list members")
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.NationalID, &m.Email, &m.Phone, &m.RegisteredOn, &m.Status); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan member")
		}
		members = append(members, m)
	}
	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET first_name = $1, last_name = $2, email = $3, phone = $4, status = $5 WHERE id = $6`
	if _, err := r.db.ExecContext(ctx, query, m.FirstName, m.LastName, m.Email, m.Phone, m.Status, m.ID); err != nil {
		return domain.WrapPersistence(err, "failed to update member")
	}
	return nil
}
