package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// BalanceCommand returns the balance command definition and handler
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "Check a Starstream Coin balance",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to check (default: yourself)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		target := getInteractionUser(i)
		if options := getOptions(i); len(options) > 0 {
			target = options[0].UserValue(s)
		}

		ctx := context.Background()
		balance, err := b.Ledger.GetBalance(ctx, target.ID)
		if err != nil {
			slog.Error("Failed to get balance", "error", err, "user_id", target.ID)
			respondError(s, i, MsgGenericError)
			return
		}

		embed := createEmbed("🌟 Balance",
			fmt.Sprintf("<@%s> has **%s**", target.ID, formatCoins(balance)),
			0x3498db, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// PayCommand returns the pay command definition and handler
func PayCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "pay",
		Description: "Send Starstream Coins to another user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Recipient",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to send",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		sender := getInteractionUser(i)
		options := getOptions(i)
		recipient := options[0].UserValue(s)
		amount := options[1].IntValue()

		if recipient.ID == sender.ID {
			respondError(s, i, "You can't pay yourself.")
			return
		}
		if recipient.Bot {
			respondError(s, i, "Bots have no use for Starstream Coins.")
			return
		}

		ctx := context.Background()
		result, err := b.Ledger.Transfer(ctx, sender.ID, recipient.ID, amount)
		if err != nil {
			slog.Error("Failed to transfer coins", "error", err,
				"sender_id", sender.ID, "recipient_id", recipient.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		if !result.OK {
			respondError(s, i, fmt.Sprintf("%s\nYou have **%s**.",
				MsgInsufficientFunds, formatCoins(result.SenderBalance)))
			return
		}

		embed := createEmbed("💸 Payment Sent",
			fmt.Sprintf("<@%s> sent **%s** to <@%s>.\nYour new balance: **%s**",
				sender.ID, formatCoins(amount), recipient.ID, formatCoins(result.SenderBalance)),
			0x2ecc71, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// LeaderboardCommand returns the leaderboard command definition and handler
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Show the richest users",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "How many entries to show (default: 10)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		limit := 0
		if options := getOptions(i); len(options) > 0 {
			limit = int(options[0].IntValue())
		}

		ctx := context.Background()
		accounts, err := b.Ledger.Leaderboard(ctx, limit)
		if err != nil {
			slog.Error("Failed to get leaderboard", "error", err)
			respondError(s, i, MsgGenericError)
			return
		}

		if len(accounts) == 0 {
			respondError(s, i, "Nobody has any Starstream Coins yet.")
			return
		}

		var sb strings.Builder
		for idx, acct := range accounts {
			sb.WriteString(formatBalanceLine(idx+1, acct.UserID, acct.Balance))
			sb.WriteString("\n")
		}

		embed := createEmbed("🏆 Starstream Leaderboard", sb.String(), 0xf1c40f, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
