package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/wrenfall/StarstreamBot_Go/internal/bootstrap"
	"github.com/wrenfall/StarstreamBot_Go/internal/config"
	"github.com/wrenfall/StarstreamBot_Go/internal/discord"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.InitLogger(cfg, "starstream-bot")

	if err := cfg.RequireDiscord(); err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, services, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	bot, err := discord.New(discord.Config{
		Token:             cfg.DiscordToken,
		AppID:             cfg.DiscordAppID,
		AdminUserIDs:      cfg.AdminUserIDs,
		AdminRoleIDs:      cfg.AdminRoleIDs,
		AdminLogChannelID: cfg.AdminLogChannelID,
	}, services.Ledger, services.Shop)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	registerCommands(bot, getCommandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// getCommandFactories returns a list of all available Discord command factories.
// This provides a single place to see and manage all registered commands.
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		// Core commands
		discord.PingCommand,

		// Economy commands
		discord.BalanceCommand,
		discord.PayCommand,
		discord.LeaderboardCommand,

		// Shop commands
		discord.ShopCommand,

		// Admin commands
		discord.GrantCommand,
		discord.ConfiscateCommand,
	}
}

// registerCommands registers all command factories with the bot's registry.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
