package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"stokvel-backend/internal/domain"
	"stokvel-backend/internal/repository"
)

// MockGroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) CreateSettings(ctx context.Context, settings *domain.GroupSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) GetSettings(ctx context.Context, groupID int64) (*domain.GroupSettings, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupSettings), args.Error(1)
}
func (m *MockGroupRepo) List(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}
func (m *MockGroupRepo) Update(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) UpdateSettings(ctx context.Context, settings *domain.GroupSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
func (m *MockGroupRepo) SetCycles(ctx context.Context, groupID int64, cycles int32) error {
	args := m.Called(ctx, groupID, cycles)
	return args.Error(0)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByNationalID(ctx context.Context, nationalID string) (*domain.Member, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockMembershipRepo) GetByID(ctx context.Context, id int64) (*domain.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) GetByMemberAndGroup(ctx context.Context, memberID, groupID int64) (*domain.Membership, error) {
	args := m.Called(ctx, memberID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) ListByGroup(ctx context.Context, groupID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) ListByMember(ctx context.Context, memberID int64) ([]domain.Membership, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) CountByGroup(ctx context.Context, groupID int64) (int32, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMembershipRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetPending(ctx context.Context, memberID, groupID int64) (*domain.JoinRequest, error) {
	args := m.Called(ctx, memberID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListByGroup(ctx context.Context, groupID int64, status domain.RequestStatus) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) ListByGroupAndMember(ctx context.Context, groupID, memberID int64, status domain.RequestStatus) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, memberID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) DeleteStalePending(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockLeaveRequestRepo
type MockLeaveRequestRepo struct {
	mock.Mock
}

func (m *MockLeaveRequestRepo) Create(ctx context.Context, req *domain.LeaveRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockLeaveRequestRepo) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}
func (m *MockLeaveRequestRepo) GetPending(ctx context.Context, memberID, groupID int64) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, memberID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}
func (m *MockLeaveRequestRepo) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockLeaveRequestRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLeaveRequestRepo) ListByGroup(ctx context.Context, groupID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, groupID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}
func (m *MockLeaveRequestRepo) ListByGroupAndMember(ctx context.Context, groupID, memberID int64, status domain.RequestStatus) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, groupID, memberID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}
func (m *MockLeaveRequestRepo) DeleteStalePending(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockContributionRepo
type MockContributionRepo struct {
	mock.Mock
}

func (m *MockContributionRepo) Create(ctx context.Context, c *domain.Contribution) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContributionRepo) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}
func (m *MockContributionRepo) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockContributionRepo) List(ctx context.Context, q domain.LedgerQuery) ([]domain.Contribution, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contribution), args.Error(1)
}
func (m *MockContributionRepo) Sum(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockContributionRepo) CountMissed(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockContributionRepo) CountPenalties(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockPayoutRepo
type MockPayoutRepo struct {
	mock.Mock
}

func (m *MockPayoutRepo) Create(ctx context.Context, p *domain.Payout) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPayoutRepo) GetByID(ctx context.Context, id int64) (*domain.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}
func (m *MockPayoutRepo) List(ctx context.Context, q domain.LedgerQuery) ([]domain.Payout, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payout), args.Error(1)
}
func (m *MockPayoutRepo) Sum(ctx context.Context, q domain.LedgerQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) JoinRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error {
	args := m.Called(ctx, member, groupName, accepted)
	return args.Error(0)
}
func (m *MockNotifier) LeaveRequestDecided(ctx context.Context, member *domain.Member, groupName string, accepted bool) error {
	args := m.Called(ctx, member, groupName, accepted)
	return args.Error(0)
}

// stubUnitOfWork runs the callback directly against the given repositories,
// standing in for a real transaction in unit tests.
type stubUnitOfWork struct {
	repos repository.Repositories
}

func (u *stubUnitOfWork) WithinTx(_ context.Context, fn func(repository.Repositories) error) error {
	return fn(u.repos)
}

// testRepos bundles one mock per repository for convenience.
type testRepos struct {
	groups        *MockGroupRepo
	members       *MockMemberRepo
	memberships   *MockMembershipRepo
	joinRequests  *MockJoinRequestRepo
	leaveRequests *MockLeaveRequestRepo
	contributions *MockContributionRepo
	payouts       *MockPayoutRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		groups:        new(MockGroupRepo),
		members:       new(MockMemberRepo),
		memberships:   new(MockMembershipRepo),
		joinRequests:  new(MockJoinRequestRepo),
		leaveRequests: new(MockLeaveRequestRepo),
		contributions: new(MockContributionRepo),
		payouts:       new(MockPayoutRepo),
	}
}

func (tr *testRepos) bundle() repository.Repositories {
	return repository.Repositories{
		Groups:        tr.groups,
		Members:       tr.members,
		Memberships:   tr.memberships,
		JoinRequests:  tr.joinRequests,
		LeaveRequests: tr.leaveRequests,
		Contributions: tr.contributions,
		Payouts:       tr.payouts,
	}
}

func (tr *testRepos) uow() repository.UnitOfWork {
	return &stubUnitOfWork{repos: tr.bundle()}
}
