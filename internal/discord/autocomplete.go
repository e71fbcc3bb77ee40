package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// handleAutocomplete routes autocomplete interactions to the appropriate handler
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "shop":
		b.handleItemAutocomplete(s, i)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
	}
}

// handleItemAutocomplete suggests item names from the guild's shop. The
// listing comes from the service cache, so these lookups stay cheap even
// while a user is typing.
func (b *Bot) handleItemAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respondAutocomplete(s, i, nil)
		return
	}

	focusedValue := getFocusedOptionValue(getOptions(i))

	items, err := b.Shop.ListItems(context.Background(), i.GuildID)
	if err != nil {
		slog.Error("Failed to list items for autocomplete", "error", err, "guild_id", i.GuildID)
		respondAutocomplete(s, i, nil)
		return
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, item := range items {
		if focusedValue == "" || strings.Contains(strings.ToLower(item.Name), focusedValue) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  item.Name,
				Value: item.Name,
			})
		}
		if len(choices) >= 25 {
			break
		}
	}

	if len(choices) == 0 {
		choices = []*discordgo.ApplicationCommandOptionChoice{
			{Name: "No matching items", Value: "none"},
		}
	}

	respondAutocomplete(s, i, choices)
}

// getFocusedOptionValue finds the focused option, descending into
// subcommands.
func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return strings.ToLower(opt.StringValue())
		}
		if len(opt.Options) > 0 {
			if v := getFocusedOptionValue(opt.Options); v != "" {
				return v
			}
		}
	}
	return ""
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
