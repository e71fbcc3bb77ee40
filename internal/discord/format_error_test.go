package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Insufficient Funds",
			input:    "purchase item: insufficient funds",
			expected: MsgInsufficientFunds,
		},
		{
			name:     "Item Not Found",
			input:    "purchase item: item not found",
			expected: MsgItemNotFound,
		},
		{
			name:     "Item Exists",
			input:    "add item: item already exists",
			expected: MsgItemExists,
		},
		{
			name:     "Item Claimed",
			input:    "purchase item: item already claimed",
			expected: MsgItemClaimed,
		},
		{
			name:     "Invalid Amount",
			input:    "grant coins: amount must be positive",
			expected: MsgInvalidAmount,
		},
		{
			name:     "Generic Error",
			input:    "some random error",
			expected: "❌ some random error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "1,234,567 SSC", formatCoins(1234567))
	assert.Equal(t, "0 SSC", formatCoins(0))
}

func TestFormatBalanceLine(t *testing.T) {
	top := formatBalanceLine(1, "user-7", 100)
	assert.Contains(t, top, "🥇")

	line := formatBalanceLine(4, "user-42", 9000)
	assert.Contains(t, line, "**4.**")
	assert.Contains(t, line, "<@user-42>")
	assert.Contains(t, line, "9,000 SSC")
}
