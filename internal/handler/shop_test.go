package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// MockShopService implements shop.Service for testing
type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) AddItem(ctx context.Context, guildID, name string, cost int64, rewardRoleID string, imageURL *string, unique bool) (*domain.ShopItem, error) {
	args := m.Called(ctx, guildID, name, cost, rewardRoleID, imageURL, unique)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopItem), args.Error(1)
}

func (m *MockShopService) RemoveItem(ctx context.Context, guildID, name string) (bool, error) {
	args := m.Called(ctx, guildID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopService) GetItem(ctx context.Context, guildID, name string) (*domain.ShopItem, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopItem), args.Error(1)
}

func (m *MockShopService) ListItems(ctx context.Context, guildID string) ([]domain.ShopItem, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}

func (m *MockShopService) Purchase(ctx context.Context, guildID, name, userID string, grant domain.RewardGranter) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, guildID, name, userID, grant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockShopService) Refund(ctx context.Context, guildID, name, userID string) (*domain.RefundResult, error) {
	args := m.Called(ctx, guildID, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundResult), args.Error(1)
}

func TestHandleAddItem(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockShopService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: AddItemRequest{GuildID: "g1", Name: "crown", Cost: 500, RewardRoleID: "r1", Unique: true},
			setupMock: func(m *MockShopService) {
				m.On("AddItem", mock.Anything, "g1", "crown", int64(500), "r1", (*string)(nil), true).
					Return(&domain.ShopItem{ID: 1, GuildID: "g1", Name: "crown", Cost: 500, RewardRoleID: "r1", Unique: true}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"name":"crown"`,
		},
		{
			name:        "Duplicate Name",
			requestBody: AddItemRequest{GuildID: "g1", Name: "crown", Cost: 500, RewardRoleID: "r1"},
			setupMock: func(m *MockShopService) {
				m.On("AddItem", mock.Anything, "g1", "crown", int64(500), "r1", (*string)(nil), false).
					Return(nil, domain.ErrItemExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   domain.ErrMsgItemExists,
		},
		{
			name:           "Invalid - Non-positive Cost",
			requestBody:    AddItemRequest{GuildID: "g1", Name: "crown", Cost: -1, RewardRoleID: "r1"},
			setupMock:      func(m *MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockShopService)
			tt.setupMock(svc)

			w := postJSON(t, HandleAddItem(svc), "/shop/item", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleRemoveItem(t *testing.T) {
	t.Run("Removed", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("RemoveItem", mock.Anything, "g1", "crown").Return(true, nil)

		w := postJSON(t, HandleRemoveItem(svc), "/shop/item/remove",
			RemoveItemRequest{GuildID: "g1", Name: "crown"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("RemoveItem", mock.Anything, "g1", "crown").Return(false, nil)

		w := postJSON(t, HandleRemoveItem(svc), "/shop/item/remove",
			RemoveItemRequest{GuildID: "g1", Name: "crown"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGetItem(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("GetItem", mock.Anything, "g1", "crown").
			Return(&domain.ShopItem{ID: 1, GuildID: "g1", Name: "crown", Cost: 500}, nil)

		req := httptest.NewRequest("GET", "/shop/item?guild_id=g1&name=crown", nil)
		w := httptest.NewRecorder()
		HandleGetItem(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"cost":500`)
	})

	t.Run("Absent", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("GetItem", mock.Anything, "g1", "ghost").Return(nil, nil)

		req := httptest.NewRequest("GET", "/shop/item?guild_id=g1&name=ghost", nil)
		w := httptest.NewRecorder()
		HandleGetItem(svc)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleListItems(t *testing.T) {
	svc := new(MockShopService)
	svc.On("ListItems", mock.Anything, "g1").Return([]domain.ShopItem{
		{ID: 1, GuildID: "g1", Name: "banner", Cost: 50},
		{ID: 2, GuildID: "g1", Name: "crown", Cost: 500},
	}, nil)

	req := httptest.NewRequest("GET", "/shop/items?guild_id=g1", nil)
	w := httptest.NewRecorder()
	HandleListItems(svc)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"banner"`)
	assert.Contains(t, w.Body.String(), `"name":"crown"`)
}

func TestHandlePurchase_OutcomeStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		result         *domain.PurchaseResult
		expectedStatus int
	}{
		{"Purchased", &domain.PurchaseResult{Outcome: domain.OutcomePurchased, NewBalance: 10}, http.StatusOK},
		{"Item Not Found", &domain.PurchaseResult{Outcome: domain.OutcomeItemNotFound}, http.StatusNotFound},
		{"Already Claimed", &domain.PurchaseResult{Outcome: domain.OutcomeAlreadyClaimed}, http.StatusConflict},
		{"Insufficient Funds", &domain.PurchaseResult{Outcome: domain.OutcomeInsufficientFunds, NewBalance: 3}, http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockShopService)
			svc.On("Purchase", mock.Anything, "g1", "crown", "buyer", mock.Anything).
				Return(tt.result, nil)

			w := postJSON(t, HandlePurchase(svc), "/shop/purchase",
				PurchaseRequest{GuildID: "g1", Name: "crown", UserID: "buyer"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), string(tt.result.Outcome))
		})
	}
}

func TestHandlePurchase_ServiceError(t *testing.T) {
	svc := new(MockShopService)
	svc.On("Purchase", mock.Anything, "g1", "crown", "buyer", mock.Anything).
		Return(nil, errors.New("db down"))

	w := postJSON(t, HandlePurchase(svc), "/shop/purchase",
		PurchaseRequest{GuildID: "g1", Name: "crown", UserID: "buyer"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleRefund(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("Refund", mock.Anything, "g1", "crown", "buyer").
			Return(&domain.RefundResult{Refunded: 500, NewBalance: 500, ClaimReleased: true}, nil)

		w := postJSON(t, HandleRefund(svc), "/shop/refund",
			RefundRequest{GuildID: "g1", Name: "crown", UserID: "buyer"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"claim_released":true`)
	})

	t.Run("Item Not Found", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("Refund", mock.Anything, "g1", "ghost", "buyer").
			Return(nil, domain.ErrItemNotFound)

		w := postJSON(t, HandleRefund(svc), "/shop/refund",
			RefundRequest{GuildID: "g1", Name: "ghost", UserID: "buyer"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
