package utilbot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/kalexmills/simple-utils/src/utilbot/db"
	"go.uber.org/zap"
)

// adminCommandPerms is a bitmask for the min permissions required to send admin commands. If any flag is set, the
// user can send admin commands.
const adminCommandPerms = discordgo.PermissionAdministrator | discordgo.PermissionManageChannels | discordgo.PermissionManageServer

func (u *UtilBot) HandleAdminCommand(s *discordgo.Session, m *discordgo.Message, cmd Command) {
	if m.GuildID == "" {
		u.reply(s, m, "Admin commands must be sent from within a guild.")
		return
	}
	perms, err := u.Permissions(s, m)
	if err != nil {
		u.logger.Error("could not retrieve permissions for user, ignoring admin command", zap.Error(err))
		return
	}
	if perms&adminCommandPerms == 0 {
		u.logger.Debug("could not verify admin permissions", zap.Int64("found", perms), zap.Int64("expected", adminCommandPerms))
		u.reply(s, m, fmt.Sprintf("You do not have permissions to manage features in <#%s>", m.ChannelID))
		return
	}
	if cmd.Target != "global" {
		c, err := u.lookupChannel(s, cmd.Target)
		if err != nil || c.GuildID != m.GuildID {
			u.reply(s, m, fmt.Sprintf("Could not find channel %s in this guild", cmd.MentionTarget()))
			return
		}
	}

	gid, err := strconv.Atoi(m.GuildID)
	if err != nil {
		u.logger.Warn("could not parse guildID as integer", zap.String("guild_id", m.GuildID))
		return
	}
	reply, err := u.applyAdmin(context.Background(), gid, cmd)
	if err != nil {
		u.logger.Error("could not apply admin command", zap.String("command", cmd.Operation.Name()), zap.Error(err))
		u.reply(s, m, "Something went wrong while updating features; please try again later.")
		return
	}
	u.reply(s, m, reply)
}

func (u *UtilBot) Permissions(s *discordgo.Session, m *discordgo.Message) (int64, error) {
	g, err := s.Guild(m.GuildID)
	if err != nil {
		return 0, err
	}
	if g.OwnerID == m.Author.ID {
		return discordgo.PermissionAll, nil
	}
	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil {
		return 0, err
	}
	roles, err := s.GuildRoles(m.GuildID)
	if err != nil {
		return 0, err
	}
	roleMap := make(map[string]int64)
	for _, role := range roles {
		roleMap[role.ID] = role.Permissions
	}
	permissions := roleMap[m.GuildID] // @everyone shares the guild's ID
	for _, role := range member.Roles {
		permissions |= roleMap[role]
	}
	if permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return discordgo.PermissionAll, nil
	}
	return permissions, nil
}

// applyAdmin runs a feature command against the database and returns the reply.
func (u *UtilBot) applyAdmin(ctx context.Context, guildID int, cmd Command) (string, error) {
	switch cmd.Operation {
	case OpFeatureOn:
		if err := u.updateFeatures(ctx, guildID, cmd, EnableFeatures); err != nil {
			return "", err
		}
		return fmt.Sprintf("Enabled features %s for target %s", cmd.Features, cmd.MentionTarget()), nil
	case OpFeatureOff:
		if err := u.updateFeatures(ctx, guildID, cmd, DisableFeatures); err != nil {
			return "", err
		}
		return fmt.Sprintf("Disabled features %s for target %s", cmd.Features, cmd.MentionTarget()), nil
	case OpFeatureList:
		flags, err := u.currentFlags(ctx, guildID, cmd.Target)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Features enabled for target %s: %s", cmd.MentionTarget(), flags), nil
	}
	return "", fmt.Errorf("%s is not an admin command", cmd.Operation.Name())
}

type featureMutator func(db.ConfigFlag, db.ConfigFlag) db.ConfigFlag

func EnableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.Or(feats)
}

func DisableFeatures(current db.ConfigFlag, feats db.ConfigFlag) db.ConfigFlag {
	return current.And(^feats)
}

// currentFlags reads the flags in effect for target, falling back from channel to guild to defaults the same
// way LookupFlags does.
func (u *UtilBot) currentFlags(ctx context.Context, guildID int, target string) (db.ConfigFlag, error) {
	if target == "global" {
		conf, err := db.GuildConfigDAO.FindByID(ctx, u.db, guildID)
		if err != nil {
			return 0, fmt.Errorf("could not read guild config: %w", err)
		}
		if conf.GuildID == 0 {
			return u.config.DefaultFlags, nil
		}
		return conf.Flags, nil
	}
	cid, err := strconv.Atoi(target)
	if err != nil {
		return 0, fmt.Errorf("could not parse channelID %s as integer: %w", target, err)
	}
	flags, err := db.LookupFlags(ctx, u.db, guildID, cid, u.config.DefaultFlags)
	if err != nil {
		return 0, fmt.Errorf("could not read channel config: %w", err)
	}
	return flags, nil
}

func (u *UtilBot) updateFeatures(ctx context.Context, guildID int, cmd Command, mutator featureMutator) error {
	current, err := u.currentFlags(ctx, guildID, cmd.Target) // read
	if err != nil {
		return err
	}
	updated := mutator(current, cmd.Features) // modify

	switch cmd.Target {
	case "global":
		_, err = db.GuildConfigDAO.Upsert(ctx, u.db, db.GuildConfig{GuildID: guildID, Flags: updated}) // write
		if err != nil {
			return fmt.Errorf("could not update guild features: %w", err)
		}
	default: // channel ID (target was verified by caller)
		cid, _ := strconv.Atoi(cmd.Target)
		_, err = db.ChannelConfigDAO.Upsert(ctx, u.db, cid, int64(updated)) // write
		if err != nil {
			return fmt.Errorf("could not update channel features: %w", err)
		}
	}
	u.logger.Info("updated features",
		zap.Int("guild_id", guildID), zap.String("target", cmd.Target), zap.Stringer("flags", updated))
	return nil
}
