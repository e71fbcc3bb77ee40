package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// MockRepository implements repository.Ledger for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) AddCoins(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) DebitIfSufficient(ctx context.Context, userID string, amount int64) (bool, int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) ConfiscateUpTo(ctx context.Context, userID string, amount int64) (int64, int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Transfer(ctx context.Context, senderID, recipientID string, amount int64) (*domain.TransferResult, error) {
	args := m.Called(ctx, senderID, recipientID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

func (m *MockRepository) TopBalances(ctx context.Context, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func TestGetBalance(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetBalance", mock.Anything, "user-1").Return(int64(42), nil)

	svc := NewService(repo)
	balance, err := svc.GetBalance(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(42), balance)
	repo.AssertExpectations(t)
}

func TestGrant(t *testing.T) {
	repo := new(MockRepository)
	repo.On("AddCoins", mock.Anything, "user-1", int64(100)).Return(int64(150), nil)

	svc := NewService(repo)
	balance, err := svc.Grant(context.Background(), "user-1", 100)

	require.NoError(t, err)
	assert.Equal(t, int64(150), balance)
	repo.AssertExpectations(t)
}

func TestGrant_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	for _, amount := range []int64{0, -10} {
		_, err := svc.Grant(context.Background(), "user-1", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
	repo.AssertNotCalled(t, "AddCoins")
}

func TestConfiscate_SeizedCappedByRepository(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ConfiscateUpTo", mock.Anything, "user-1", int64(500)).Return(int64(120), int64(0), nil)

	svc := NewService(repo)
	seized, balance, err := svc.Confiscate(context.Background(), "user-1", 500)

	require.NoError(t, err)
	assert.Equal(t, int64(120), seized)
	assert.Equal(t, int64(0), balance)
	repo.AssertExpectations(t)
}

func TestConfiscate_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, _, err := svc.Confiscate(context.Background(), "user-1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	repo.AssertNotCalled(t, "ConfiscateUpTo")
}

func TestTransfer(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Transfer", mock.Anything, "sender", "recipient", int64(50)).
		Return(&domain.TransferResult{OK: true, SenderBalance: 10}, nil)

	svc := NewService(repo)
	result, err := svc.Transfer(context.Background(), "sender", "recipient", 50)

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, int64(10), result.SenderBalance)
	repo.AssertExpectations(t)
}

func TestTransfer_InsufficientFundsIsNotAnError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Transfer", mock.Anything, "sender", "recipient", int64(50)).
		Return(&domain.TransferResult{OK: false, SenderBalance: 20}, nil)

	svc := NewService(repo)
	result, err := svc.Transfer(context.Background(), "sender", "recipient", 50)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, int64(20), result.SenderBalance)
}

func TestTransfer_RejectsNonPositiveAmount(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Transfer(context.Background(), "sender", "recipient", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	repo.AssertNotCalled(t, "Transfer")
}

func TestTransfer_PropagatesRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Transfer", mock.Anything, "sender", "recipient", int64(50)).
		Return(nil, errors.New("connection reset"))

	svc := NewService(repo)
	_, err := svc.Transfer(context.Background(), "sender", "recipient", 50)
	assert.Error(t, err)
}

func TestLeaderboard_LimitDefaults(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero uses default", 0, DefaultLeaderboardLimit},
		{"negative uses default", -3, DefaultLeaderboardLimit},
		{"in range passes through", 25, 25},
		{"above max is clamped", 5000, MaxLeaderboardLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("TopBalances", mock.Anything, tt.wantLimit).
				Return([]domain.Account{}, nil)

			svc := NewService(repo)
			_, err := svc.Leaderboard(context.Background(), tt.limit)

			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
