package discord

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// coinPrinter renders amounts with thousands separators (1,234,567).
var coinPrinter = message.NewPrinter(language.English)

// formatCoins renders an amount with the currency suffix.
func formatCoins(amount int64) string {
	return coinPrinter.Sprintf("%d SSC", amount)
}

// leaderboard medals for the top three ranks
var medals = []string{"🥇", "🥈", "🥉"}

// formatBalanceLine renders a leaderboard row.
func formatBalanceLine(rank int, userID string, balance int64) string {
	prefix := fmt.Sprintf("**%d.**", rank)
	if rank >= 1 && rank <= len(medals) {
		prefix = medals[rank-1]
	}
	return fmt.Sprintf("%s <@%s> · %s", prefix, userID, formatCoins(balance))
}
