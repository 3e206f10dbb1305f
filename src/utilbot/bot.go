package utilbot

import (
	"context"
	"database/sql"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/simple-utils/src/utilbot/db"
	"go.uber.org/zap"
)

type Config struct {
	Token        string
	Prefix       string
	DefaultFlags db.ConfigFlag
	DBPath       string

	Debug bool
}

func (c Config) String() string {
	return fmt.Sprintf("\tPrefix: %s\n\tDefaultFlags: %s\n\tDBPath: %s\n\tDebug: %t\n",
		c.Prefix, c.DefaultFlags, c.DBPath, c.Debug)
}

type UtilBot struct {
	session *discordgo.Session
	db      *sql.DB
	logger  *zap.Logger

	config Config

	cacheMu      sync.Mutex
	channelCache map[string]*discordgo.Channel
}

func NewUtilBot(config Config, logger *zap.Logger) *UtilBot {
	logger.Info("util bot config", zap.Stringer("config", config))
	return &UtilBot{
		config:       config,
		logger:       logger,
		channelCache: make(map[string]*discordgo.Channel),
	}
}

func (u *UtilBot) Open() error {
	var err error
	u.db, err = db.Open(u.config.DBPath, u.logger)
	if err != nil {
		u.logger.Error("could not open database", zap.String("path", u.config.DBPath), zap.Error(err))
		return err
	}

	u.session, err = discordgo.New("Bot " + u.config.Token)
	if err != nil {
		u.logger.Error("error creating Discord session", zap.Error(err))
		return err
	}

	if u.config.Debug {
		u.session.LogLevel = discordgo.LogDebug
	}

	u.session.AddHandler(u.ReceiveNewMessage)
	u.session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	err = u.session.Open()
	if err != nil {
		u.logger.Error("error opening connection", zap.Error(err))
		return err
	}
	return nil
}

func (u *UtilBot) Close() error {
	var err error
	if u.session != nil {
		err = u.session.Close()
	}
	if u.db != nil {
		if dbErr := u.db.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	return err
}

func (u *UtilBot) ReceiveNewMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("recovered from panic while handling message",
				zap.String("content", oneLine(m.Content)), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()
	if m.Author == nil || m.Author.Bot { // don't talk to bots
		return
	}
	content, ok := u.stripPrefix(m.Content)
	if !ok {
		return
	}
	cmd, err := ParseCommand(content)
	if err != nil {
		u.reply(s, m.Message, err.Error())
		return
	}
	if cmd.Operation.IsAdmin() {
		u.HandleAdminCommand(s, m.Message, cmd)
		return
	}
	reply, ok := u.answer(context.Background(), m.Message, cmd)
	if ok {
		u.reply(s, m.Message, reply)
	}
}

func (u *UtilBot) stripPrefix(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, u.config.Prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(trimmed, u.config.Prefix)
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\n") && !strings.HasPrefix(rest, "\t") {
		return "", false // e.g. "!utility" when the prefix is "!util"
	}
	return rest, true
}

// answer handles the non-admin commands. The second return is false if the command should be ignored.
func (u *UtilBot) answer(ctx context.Context, m *discordgo.Message, cmd Command) (string, bool) {
	if cmd.Operation == OpHelp {
		return helpText(u.config.Prefix), true
	}
	guildID, channelID := parseIDs(m)
	if cmd.Operation == OpStats {
		if m.GuildID == "" {
			return statsOnlyInGuild, true
		}
		stats, err := u.stats(ctx, guildID)
		if err != nil {
			u.logger.Error("could not read stats", zap.Int("guild_id", guildID), zap.Error(err))
			return "", false
		}
		return stats, true
	}

	flags, err := db.LookupFlags(ctx, u.db, guildID, channelID, u.config.DefaultFlags)
	if err != nil {
		u.logger.Error("could not look up feature flags", zap.Int("guild_id", guildID), zap.Int("channel_id", channelID), zap.Error(err))
		return "", false
	}
	if flags&cmd.Operation.Feature() == 0 {
		if u.config.Debug {
			u.logger.Debug("feature disabled, ignoring command", zap.String("command", cmd.Operation.Name()), zap.Stringer("flags", flags))
		}
		return "", false
	}

	reply, err := Respond(cmd)
	if err != nil {
		u.logger.Error("could not respond to command", zap.String("command", cmd.Operation.Name()), zap.Error(err))
		return "", false
	}

	if flags.RecordHistory() {
		u.record(ctx, m, cmd, reply)
	}
	return reply, true
}

func (u *UtilBot) record(ctx context.Context, m *discordgo.Message, cmd Command, reply string) {
	guildID, channelID := parseIDs(m)
	messageID, err := strconv.Atoi(m.ID)
	if err != nil {
		u.logger.Warn("could not parse message ID, not recording request", zap.String("message_id", m.ID))
		return
	}
	authorID := ""
	if m.Author != nil {
		authorID = m.Author.ID
	}
	_, err = db.RequestDAO.Upsert(ctx, u.db, db.Request{
		GuildID:   guildID,
		ChannelID: channelID,
		MessageID: messageID,
		AuthorID:  authorID,
		Command:   cmd.Operation.Name(),
		Input:     cmd.Input,
		Output:    reply,
	})
	if err != nil {
		u.logger.Error("could not record request", zap.Int("message_id", messageID), zap.Error(err))
	}
}

const statsOnlyInGuild = "Stats are only available inside a guild."

func (u *UtilBot) stats(ctx context.Context, guildID int) (string, error) {
	var lines []string
	for _, op := range UtilityOps {
		count, err := db.RequestDAO.CountByCommand(ctx, u.db, guildID, op.Name())
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("%s: %d", op.Name(), count))
	}
	return strings.Join(lines, "\n"), nil
}

func (u *UtilBot) reply(s *discordgo.Session, m *discordgo.Message, content string) {
	_, err := s.ChannelMessageSendReply(m.ChannelID, content, &discordgo.MessageReference{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
	})
	if err != nil {
		u.logger.Error("could not send reply", zap.String("channel_id", m.ChannelID), zap.Error(err))
	}
}

func (u *UtilBot) lookupChannel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	u.cacheMu.Lock()
	c, ok := u.channelCache[channelID]
	u.cacheMu.Unlock()
	if ok {
		return c, nil
	}
	c, err := s.Channel(channelID)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("looked up channel", zap.String("channel_id", channelID))
	u.cacheMu.Lock()
	u.channelCache[channelID] = c
	u.cacheMu.Unlock()
	return c, nil
}

// parseIDs returns the numeric guild and channel IDs of m. DMs have no guild and map to guild 0.
func parseIDs(m *discordgo.Message) (int, int) {
	guildID, _ := strconv.Atoi(m.GuildID)
	channelID, _ := strconv.Atoi(m.ChannelID)
	return guildID, channelID
}

func oneLine(str string) string {
	return strings.ReplaceAll(str, "\n", "\\n")
}
