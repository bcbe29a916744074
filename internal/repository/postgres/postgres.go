package postgres

import (
	"context"
	"database/sql"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"

	_ "github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx so every repository can be
// rebound onto a transaction by a unit of work.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Store bundles the postgres repositories and implements
// repository.UnitOfWork.
type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(q querier) repository.Repositories {
	return repository.Repositories{
		Groups:        NewGroupRepository(q),
		Members:       NewMemberRepository(q),
		Memberships:   NewMembershipRepository(q),
		JoinRequests:  NewJoinRequestRepository(q),
		LeaveRequests: NewLeaveRequestRepository(q),
		Contributions: NewContributionRepository(q),
		Payouts:       NewPayoutRepository(q),
	}
}

// WithinTx runs fn against repositories bound to a single transaction.
// A nil return commits; any error rolls the whole unit back.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.WrapPersistence(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.WrapPersistence(err, "failed to commit transaction")
	}
	return nil
}
