package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// ShopCommand returns the shop command group definition and handler.
// add and remove are admin only; view and buy are open to everyone.
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "The Starstream item shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "Browse this server's shop",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "buy",
				Description: "Buy an item from the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         "item",
						Description:  "Item name to buy",
						Required:     true,
						Autocomplete: true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "[ADMIN] Add an item to the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Item name",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "cost",
						Description: "Cost in Starstream Coins",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "reward_role",
						Description: "Role awarded on purchase",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "unique",
						Description: "Only one user may ever own it (default: false)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "image_url",
						Description: "Image shown in the shop listing",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "[ADMIN] Remove an item from the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         "item",
						Description:  "Item name to remove",
						Required:     true,
						Autocomplete: true,
					},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
		if i.GuildID == "" {
			if deferResponse(s, i) {
				respondError(s, i, "The shop only works inside a server.")
			}
			return
		}

		options := getOptions(i)
		if len(options) == 0 {
			return
		}

		switch options[0].Name {
		case "view":
			handleShopView(s, i, b)
		case "buy":
			handleShopBuy(s, i, b, options[0].Options)
		case "add":
			handleShopAdd(s, i, b, options[0].Options)
		case "remove":
			handleShopRemove(s, i, b, options[0].Options)
		}
	}

	return cmd, handler
}

func handleShopView(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot) {
	if !deferResponse(s, i) {
		return
	}

	items, err := b.Shop.ListItems(context.Background(), i.GuildID)
	if err != nil {
		slog.Error("Failed to list shop items", "error", err, "guild_id", i.GuildID)
		respondError(s, i, MsgGenericError)
		return
	}

	if len(items) == 0 {
		respondError(s, i, "The shop is empty. Admins can stock it with `/shop add`.")
		return
	}

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("**%s** · %s · <@&%s>", item.Name, formatCoins(item.Cost), item.RewardRoleID))
		if item.Unique {
			if item.Claimed() {
				sb.WriteString(fmt.Sprintf(" · ~~unique~~ claimed by <@%s>", *item.PurchasedBy))
			} else {
				sb.WriteString(" · unique")
			}
		}
		sb.WriteString("\n")
	}

	embed := createEmbed("🛒 Starstream Shop", sb.String(), 0x3498db, "")
	sendEmbed(s, i, embed)
}

func handleShopBuy(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	buyer := getInteractionUser(i)
	itemName := opts[0].StringValue()

	// The role is granted mid-purchase so a Discord failure rolls the
	// debit back instead of leaving a paid-but-rewardless buyer.
	granter := func(ctx context.Context, rewardRoleID, userID string) error {
		return s.GuildMemberRoleAdd(i.GuildID, userID, rewardRoleID)
	}

	result, err := b.Shop.Purchase(context.Background(), i.GuildID, itemName, buyer.ID, granter)
	if err != nil {
		slog.Error("Purchase failed", "error", err,
			"guild_id", i.GuildID, "item", itemName, "user_id", buyer.ID)
		respondFriendlyError(s, i, err.Error())
		return
	}

	switch result.Outcome {
	case domain.OutcomePurchased:
		description := fmt.Sprintf("<@%s> bought **%s** for %s and received <@&%s>.\nNew balance: **%s**",
			buyer.ID, result.Item.Name, formatCoins(result.Item.Cost),
			result.Item.RewardRoleID, formatCoins(result.NewBalance))
		embed := createEmbed("💰 Purchase Complete", description, 0x2ecc71, "")
		if result.Item.ImageURL != nil {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *result.Item.ImageURL}
		}
		sendEmbed(s, i, embed)
	case domain.OutcomeItemNotFound:
		respondError(s, i, MsgItemNotFound)
	case domain.OutcomeAlreadyClaimed:
		respondError(s, i, MsgItemClaimed)
	case domain.OutcomeInsufficientFunds:
		respondError(s, i, fmt.Sprintf("%s\nYou have **%s**.",
			MsgInsufficientFunds, formatCoins(result.NewBalance)))
	case domain.OutcomeGrantFailed:
		msg := "I couldn't give you the reward role, so your coins were not taken."
		if !result.Refunded {
			msg = "I couldn't give you the reward role or refund your coins. Please contact an admin."
		}
		respondError(s, i, "⚠️ "+msg)
	}
}

func handleShopAdd(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	admin := getInteractionUser(i)
	if !b.isAdmin(i) {
		respondError(s, i, MsgNotAdmin)
		return
	}

	name := opts[0].StringValue()
	cost := opts[1].IntValue()
	role := opts[2].RoleValue(s, i.GuildID)

	unique := false
	var imageURL *string
	for _, opt := range opts[3:] {
		switch opt.Name {
		case "unique":
			unique = opt.BoolValue()
		case "image_url":
			url := opt.StringValue()
			imageURL = &url
		}
	}

	item, err := b.Shop.AddItem(context.Background(), i.GuildID, name, cost, role.ID, imageURL, unique)
	if err != nil {
		slog.Error("Failed to add shop item", "error", err, "guild_id", i.GuildID, "item", name)
		respondFriendlyError(s, i, err.Error())
		return
	}

	description := fmt.Sprintf("**%s** is now for sale at %s, rewarding <@&%s>.",
		item.Name, formatCoins(item.Cost), item.RewardRoleID)
	if item.Unique {
		description += "\nOnly one user may ever own it."
	}

	embed := createEmbed("📦 Item Added", description, 0x2ecc71, FooterStarstreamAdmin)
	sendEmbed(s, i, embed)

	b.auditLog(s, "Shop Add",
		fmt.Sprintf("<@%s> added **%s** (%s) to the shop", admin.ID, item.Name, formatCoins(item.Cost)))
}

func handleShopRemove(s *discordgo.Session, i *discordgo.InteractionCreate, b *Bot, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if !deferResponse(s, i) {
		return
	}

	admin := getInteractionUser(i)
	if !b.isAdmin(i) {
		respondError(s, i, MsgNotAdmin)
		return
	}

	name := opts[0].StringValue()

	removed, err := b.Shop.RemoveItem(context.Background(), i.GuildID, name)
	if err != nil {
		slog.Error("Failed to remove shop item", "error", err, "guild_id", i.GuildID, "item", name)
		respondFriendlyError(s, i, err.Error())
		return
	}
	if !removed {
		respondError(s, i, MsgItemNotFound)
		return
	}

	embed := createEmbed("🗑️ Item Removed",
		fmt.Sprintf("**%s** is no longer for sale.", name), 0xe74c3c, FooterStarstreamAdmin)
	sendEmbed(s, i, embed)

	b.auditLog(s, "Shop Remove",
		fmt.Sprintf("<@%s> removed **%s** from the shop", admin.ID, name))
}
