package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// grantCooldown spaces out /grant invocations per admin so a misfiring
// macro or double-click cannot mint twice.
const grantCooldown = 60 * time.Second

// grantTracker remembers the last grant time per admin user.
type grantTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

var grants = &grantTracker{last: make(map[string]time.Time)}

// tryAcquire returns the remaining wait when the admin is still cooling
// down, or records the grant and returns zero.
func (g *grantTracker) tryAcquire(adminID string, now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.last[adminID]; ok {
		if remaining := grantCooldown - now.Sub(last); remaining > 0 {
			return remaining
		}
	}
	g.last[adminID] = now
	return 0
}

var adminPermission = int64(discordgo.PermissionAdministrator)

// GrantCommand returns the grant command definition and handler (admin only)
func GrantCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "grant",
		Description: "[ADMIN] Mint Starstream Coins for a user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to grant coins to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to grant",
				Required:    true,
			},
		},
		DefaultMemberPermissions: &adminPermission,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		admin := getInteractionUser(i)
		if !b.isAdmin(i) {
			respondError(s, i, MsgNotAdmin)
			return
		}

		if remaining := grants.tryAcquire(admin.ID, time.Now()); remaining > 0 {
			respondError(s, i, fmt.Sprintf("%s\nWait for: **%s**",
				MsgCooldownActive, remaining.Round(time.Second)))
			return
		}

		options := getOptions(i)
		target := options[0].UserValue(s)
		amount := options[1].IntValue()

		ctx := context.Background()
		balance, err := b.Ledger.Grant(ctx, target.ID, amount)
		if err != nil {
			slog.Error("Failed to grant coins", "error", err,
				"admin_id", admin.ID, "target_id", target.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := createEmbed("✨ Coins Granted",
			fmt.Sprintf("Granted **%s** to <@%s>.\nTheir new balance: **%s**",
				formatCoins(amount), target.ID, formatCoins(balance)),
			0x2ecc71, FooterStarstreamAdmin)
		sendEmbed(s, i, embed)

		b.auditLog(s, "Grant",
			fmt.Sprintf("<@%s> granted **%s** to <@%s>", admin.ID, formatCoins(amount), target.ID))
	}

	return cmd, handler
}

// ConfiscateCommand returns the confiscate command definition and handler (admin only)
func ConfiscateCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "confiscate",
		Description: "[ADMIN] Remove Starstream Coins from a user",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to confiscate coins from",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Amount to confiscate (capped at their balance)",
				Required:    true,
			},
		},
		DefaultMemberPermissions: &adminPermission,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if !deferResponse(s, i) {
			return
		}

		admin := getInteractionUser(i)
		if !b.isAdmin(i) {
			respondError(s, i, MsgNotAdmin)
			return
		}

		options := getOptions(i)
		target := options[0].UserValue(s)
		amount := options[1].IntValue()

		ctx := context.Background()
		seized, balance, err := b.Ledger.Confiscate(ctx, target.ID, amount)
		if err != nil {
			slog.Error("Failed to confiscate coins", "error", err,
				"admin_id", admin.ID, "target_id", target.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := fmt.Sprintf("Confiscated **%s** from <@%s>.\nTheir new balance: **%s**",
			formatCoins(seized), target.ID, formatCoins(balance))
		if seized < amount {
			description += fmt.Sprintf("\nOnly %s was available.", formatCoins(seized))
		}

		embed := createEmbed("🪙 Coins Confiscated", description, 0xe74c3c, FooterStarstreamAdmin)
		sendEmbed(s, i, embed)

		b.auditLog(s, "Confiscate",
			fmt.Sprintf("<@%s> confiscated **%s** from <@%s>", admin.ID, formatCoins(seized), target.ID))
	}

	return cmd, handler
}
