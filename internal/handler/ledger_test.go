package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// MockLedgerService implements ledger.Service for testing
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Grant(ctx context.Context, userID string, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Confiscate(ctx context.Context, userID string, amount int64) (int64, int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) Transfer(ctx context.Context, senderID, recipientID string, amount int64) (*domain.TransferResult, error) {
	args := m.Called(ctx, senderID, recipientID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

func (m *MockLedgerService) Leaderboard(ctx context.Context, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestHandleGetBalance(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockLedgerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			url:  "/ledger/balance?user_id=user-1",
			setupMock: func(m *MockLedgerService) {
				m.On("GetBalance", mock.Anything, "user-1").Return(int64(42), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"balance":42`,
		},
		{
			name:           "Missing user_id",
			url:            "/ledger/balance",
			setupMock:      func(m *MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Missing user_id",
		},
		{
			name: "Service Error",
			url:  "/ledger/balance?user_id=user-1",
			setupMock: func(m *MockLedgerService) {
				m.On("GetBalance", mock.Anything, "user-1").Return(int64(0), errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			tt.setupMock(svc)

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			HandleGetBalance(svc)(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGrant(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockLedgerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: GrantRequest{UserID: "user-1", Amount: 100},
			setupMock: func(m *MockLedgerService) {
				m.On("Grant", mock.Anything, "user-1", int64(100)).Return(int64(150), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"balance":150`,
		},
		{
			name:           "Invalid - Missing UserID",
			requestBody:    GrantRequest{Amount: 100},
			setupMock:      func(m *MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name:           "Invalid - Non-positive Amount",
			requestBody:    GrantRequest{UserID: "user-1", Amount: -5},
			setupMock:      func(m *MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			tt.setupMock(svc)

			w := postJSON(t, HandleGrant(svc), "/ledger/grant", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleConfiscate(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("Confiscate", mock.Anything, "user-1", int64(500)).Return(int64(120), int64(0), nil)

	w := postJSON(t, HandleConfiscate(svc), "/ledger/confiscate",
		ConfiscateRequest{UserID: "user-1", Amount: 500})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"seized":120`)
	assert.Contains(t, w.Body.String(), `"balance":0`)
	svc.AssertExpectations(t)
}

func TestHandleTransfer(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockLedgerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: TransferRequest{SenderID: "a", RecipientID: "b", Amount: 50},
			setupMock: func(m *MockLedgerService) {
				m.On("Transfer", mock.Anything, "a", "b", int64(50)).
					Return(&domain.TransferResult{OK: true, SenderBalance: 10}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"ok":true`,
		},
		{
			name:        "Insufficient Funds",
			requestBody: TransferRequest{SenderID: "a", RecipientID: "b", Amount: 50},
			setupMock: func(m *MockLedgerService) {
				m.On("Transfer", mock.Anything, "a", "b", int64(50)).
					Return(&domain.TransferResult{OK: false, SenderBalance: 20}, nil)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   `"ok":false`,
		},
		{
			name:           "Invalid - Self Transfer",
			requestBody:    TransferRequest{SenderID: "a", RecipientID: "a", Amount: 50},
			setupMock:      func(m *MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedgerService)
			tt.setupMock(svc)

			w := postJSON(t, HandleTransfer(svc), "/ledger/transfer", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleLeaderboard(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("Leaderboard", mock.Anything, 5).Return([]domain.Account{
		{UserID: "rich", Balance: 900},
		{UserID: "poor", Balance: 1},
	}, nil)

	req := httptest.NewRequest("GET", "/ledger/leaderboard?limit=5", nil)
	w := httptest.NewRecorder()
	HandleLeaderboard(svc)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"rich"`)
	svc.AssertExpectations(t)
}

func TestHandleLeaderboard_InvalidLimit(t *testing.T) {
	svc := new(MockLedgerService)

	req := httptest.NewRequest("GET", "/ledger/leaderboard?limit=abc", nil)
	w := httptest.NewRecorder()
	HandleLeaderboard(svc)(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Leaderboard")
}
