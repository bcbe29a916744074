package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type joinRequestRepository struct {
	db querier
}

func NewJoinRequestRepository(db querier) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

const joinRequestColumns = `id, member_id, group_id, status, requested_on`

func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	query := `INSERT INTO join_requests (member_id, group_id, status, requested_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.MemberID, req.GroupID, req.Status, req.RequestedOn).Scan(&req.ID)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create join request")
	}
	return nil
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.MemberID, &req.GroupID, &req.Status, &req.RequestedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("join request not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get join request")
	}
	return req, nil
}

func (r *joinRequestRepository) GetPending(ctx context.Context, memberID, groupID int64) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE member_id = $1 AND group_id = $2 AND status = $3`
	err := r.db.QueryRowContext(ctx, query, memberID, groupID, domain.RequestStatusPending).
		Scan(&req.ID, &req.MemberID, &req.GroupID, &req.Status, &req.RequestedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("pending join request not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get pending join request")
	}
	return req, nil
}

// UpdateStatus transitions the request out of PENDING. The status predicate
// makes the transition a compare-and-swap: a concurrent decision that already
// moved the row leaves zero rows affected, and the caller's transaction rolls
// back instead of double-applying the decision.
func (r *joinRequestRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	query := `UPDATE join_requests SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, status, id, domain.RequestStatusPending)
	if err != nil {
		return domain.WrapPersistence(err, "failed to update join request status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapPersistence(err, "failed to update join request status")
	}
	if n == 0 {
		return domain.NewState("join request is no longer pending")
	}
	return nil
}

func (r *joinRequestRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM join_requests WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.WrapPersistence(err, "failed to delete join request")
	}
	return nil
}

func (r *joinRequestRepository) ListByGroup(ctx context.Context, groupID int64, status domain.RequestStatus) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE group_id = $1`
	args := []any{groupID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY requested_on, id`
	return r.list(ctx, query, args...)
}

func (r *joinRequestRepository) ListByGroupAndMember(ctx context.Context, groupID, memberID int64, status domain.RequestStatus) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE group_id = $1 AND member_id = $2`
	args := []any{groupID, memberID}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY requested_on, id`
	return r.list(ctx, query, args...)
}

func (r *joinRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.JoinRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list join requests")
	}
	defer rows.Close()

	var reqs []domain.JoinRequest
	for rows.Next() {
		var req domain.JoinRequest
		if err := rows.Scan(&req.ID, &req.MemberID, &req.GroupID, &req.Status, &req.RequestedOn); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan join request")
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (r *joinRequestRepository) DeleteStalePending(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM join_requests WHERE status = $1 AND requested_on < $2`
	res, err := r.db.ExecContext(ctx, query, domain.RequestStatusPending, before)
	if err != nil {
		return 0, domain.WrapPersistence(err, "failed to delete stale join requests")
	}
	n, _ := res.RowsAffected()
	return n, nil
}
