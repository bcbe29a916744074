package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

type leaveRequestRepository struct {
	db querier
}

func NewLeaveRequestRepository(db querier) repository.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `id, member_id, group_id, status, requested_on`

func (r *leaveRequestRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	query := `INSERT INTO leave_requests (member_id, group_id, status, requested_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, req.MemberID, req.GroupID, req.Status, req.RequestedOn).Scan(&req.ID)
	if err != nil {
		return domain.WrapPersistence(err, "failed to create leave request")
	}
	return nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	req := &domain.LeaveRequest{}
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.MemberID, &req.GroupID, &req.Status, &req.RequestedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("leave request not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get leave request")
	}
	return req, nil
}

func (r *leaveRequestRepository) GetPending(ctx context.Context, memberID, groupID int64) (*domain.LeaveRequest, error) {
	req := &domain.LeaveRequest{}
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE member_id = $1 AND group_id = $2 AND status = $3`
	err := r.db.QueryRowContext(ctx, query, memberID, groupID, domain.RequestStatusPending).
		Scan(&req.ID, &req.MemberID, &req.GroupID, &req.Status, &req.RequestedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("pending leave request not found")
	}
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to get pending leave request")
	}
	return req, nil
}

// UpdateStatus transitions the request out of PENDING as a compare-and-swap,
// mirroring the join request repository: zero rows affected means another
// decision won the race and the caller gets a state error.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	query := `UPDATE leave_requests SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, status, id, domain.RequestStatusPending)
	if err != nil {
		return domain.WrapPersistence(err, "failed to update leave request status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.WrapPersistence(err, "failed to update leave request status")
	}
	if n == 0 {
		return domain.NewState("leave request is no longer pending")
	}
	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM leave_requests WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return domain.WrapPersistence(err, "failed to delete leave request")
	}
	return nil
}

func (r *leaveRequestRepository) ListByGroup(ctx context.Context, groupID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE group_id = $1`
	args := []any{groupID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY requested_on, id`
	return r.list(ctx, query, args...)
}

func (r *leaveRequestRepository) ListByGroupAndMember(ctx context.Context, groupID, memberID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE group_id = $1 AND member_id = $2`
	args := []any{groupID, memberID}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY requested_on, id`
	return r.list(ctx, query, args...)
}

func (r *leaveRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.LeaveRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapPersistence(err, "failed to list leave requests")
	}
	defer rows.Close()

	var reqs []domain.LeaveRequest
	for rows.Next() {
		var req domain.LeaveRequest
		if err := rows.Scan(&req.ID, &req.MemberID, &req.GroupID, &req.Status, &req.RequestedOn); err != nil {
			return nil, domain.WrapPersistence(err, "failed to scan leave request")
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (r *leaveRequestRepository) DeleteStalePending(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM leave_requests WHERE status = $1 AND requested_on < $2`
	res, err := r.db.ExecContext(ctx, query, domain.RequestStatusPending, before)
	if err != nil {
		return 0, domain.WrapPersistence(err, "failed to delete stale leave requests")
	}
	n, _ := res.RowsAffected()
	return n, nil
}
