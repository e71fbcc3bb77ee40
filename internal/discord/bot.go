package discord

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/wrenfall/StarstreamBot_Go/internal/ledger"
	"github.com/wrenfall/StarstreamBot_Go/internal/shop"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry

	Ledger ledger.Service
	Shop   shop.Service

	adminUserIDs      map[string]struct{}
	adminRoleIDs      map[string]struct{}
	adminLogChannelID string
}

// Config holds the bot configuration
type Config struct {
	Token string
	AppID string

	// AdminUserIDs and AdminRoleIDs gate the privileged commands
	// beyond Discord's own permission checks.
	AdminUserIDs []string
	AdminRoleIDs []string

	// AdminLogChannelID receives an audit embed for every privileged
	// action when set.
	AdminLogChannelID string
}

// New creates a new Discord bot
func New(cfg Config, ledgerService ledger.Service, shopService shop.Service) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	b := &Bot{
		Session:           s,
		AppID:             cfg.AppID,
		Registry:          NewCommandRegistry(),
		Ledger:            ledgerService,
		Shop:              shopService,
		adminUserIDs:      make(map[string]struct{}, len(cfg.AdminUserIDs)),
		adminRoleIDs:      make(map[string]struct{}, len(cfg.AdminRoleIDs)),
		adminLogChannelID: cfg.AdminLogChannelID,
	}
	for _, id := range cfg.AdminUserIDs {
		b.adminUserIDs[id] = struct{}{}
	}
	for _, id := range cfg.AdminRoleIDs {
		b.adminRoleIDs[id] = struct{}{}
	}

	return b, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	// Guild membership and role data are needed for the admin checks.
	b.Session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.Session.Close()
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if b.Registry != nil {
			b.Registry.Handle(s, i, b)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

// isAdmin reports whether the invoking member may run privileged
// commands. DMs are never privileged.
func (b *Bot) isAdmin(i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Member.User == nil {
		return false
	}
	if _, ok := b.adminUserIDs[i.Member.User.ID]; ok {
		return true
	}
	for _, role := range i.Member.Roles {
		if _, ok := b.adminRoleIDs[role]; ok {
			return true
		}
	}
	return false
}

// auditLog posts an embed describing a privileged action to the
// configured admin channel. Failures are logged and swallowed so an
// unavailable channel never blocks the action itself.
func (b *Bot) auditLog(s *discordgo.Session, title, description string) {
	if b.adminLogChannelID == "" {
		return
	}

	embed := createEmbed(title, description, 0x95a5a6, FooterStarstreamAdmin)
	if _, err := s.ChannelMessageSendEmbed(b.adminLogChannelID, embed); err != nil {
		slog.Error("Failed to send audit log", "error", err, "channel_id", b.adminLogChannelID)
	}
}
