package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stokvel-backend/internal/domain"
)

func TestJoinRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJoinRequestRepository(db)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	req := &domain.JoinRequest{MemberID: 7, GroupID: 3, Status: domain.RequestStatusPending, RequestedOn: now}

	mock.ExpectQuery("INSERT INTO join_requests").
		WithArgs(int64(7), int64(3), domain.RequestStatusPending, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	err = repo.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepository_GetPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJoinRequestRepository(db)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE member_id = $1 AND group_id = $2 AND status = $3`)).
			WithArgs(int64(7), int64(3), domain.RequestStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "group_id", "status", "requested_on"}).
				AddRow(int64(9), int64(7), int64(3), "PENDING", now))

		req, err := repo.GetPending(context.Background(), 7, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE member_id = $1 AND group_id = $2 AND status = $3`)).
			WithArgs(int64(8), int64(3), domain.RequestStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetPending(context.Background(), 8, 3)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJoinRequestRepository(db)

	t.Run("TransitionsPendingRow", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE join_requests SET status = $1 WHERE id = $2 AND status = $3`)).
			WithArgs(domain.RequestStatusAccepted, int64(9), domain.RequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 9, domain.RequestStatusAccepted)
		assert.NoError(t, err)
	})

	t.Run("DecidedRowFailsWithStateError", func(t *testing.T) {
		// A concurrent decision already moved the row out of PENDING; the
		// guarded update matches nothing and the transition must not apply.
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE join_requests SET status = $1 WHERE id = $2 AND status = $3`)).
			WithArgs(domain.RequestStatusRejected, int64(9), domain.RequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 9, domain.RequestStatusRejected)
		assert.True(t, domain.IsKind(err, domain.KindState))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepository_ListByGroup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJoinRequestRepository(db)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("StatusFilterOptional", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE group_id = $1 ORDER BY requested_on, id`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "group_id", "status", "requested_on"}).
				AddRow(int64(9), int64(7), int64(3), "PENDING", now).
				AddRow(int64(10), int64(8), int64(3), "ACCEPTED", now))

		reqs, err := repo.ListByGroup(context.Background(), 3, "")
		assert.NoError(t, err)
		assert.Len(t, reqs, 2)
	})

	t.Run("WithStatus", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE group_id = $1 AND status = $2`)).
			WithArgs(int64(3), domain.RequestStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "group_id", "status", "requested_on"}).
				AddRow(int64(9), int64(7), int64(3), "PENDING", now))

		reqs, err := repo.ListByGroup(context.Background(), 3, domain.RequestStatusPending)
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRequestRepository_DeleteStalePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJoinRequestRepository(db)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM join_requests WHERE status = $1 AND requested_on < $2`)).
		WithArgs(domain.RequestStatusPending, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteStalePending(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
