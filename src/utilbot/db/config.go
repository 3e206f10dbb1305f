package db

import (
	"context"
	"strings"

	"github.com/jonbodner/proteus"
)

type ConfigFlag int64

func (f ConfigFlag) Reverse() bool {
	return f&ConfigReverse > 0
}

func (f ConfigFlag) CountWords() bool {
	return f&ConfigCountWords > 0
}

func (f ConfigFlag) ConvertTemperature() bool {
	return f&ConfigConvertTemperature > 0
}

func (f ConfigFlag) RecordHistory() bool {
	return f&ConfigRecordHistory > 0
}

func (f ConfigFlag) Or(other ConfigFlag) ConfigFlag {
	return f | other
}

func (f ConfigFlag) And(other ConfigFlag) ConfigFlag {
	return f & other
}

func (f ConfigFlag) String() string {
	var names []string
	for _, feat := range Features {
		if f&feat.Flag > 0 {
			names = append(names, feat.Name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

const (
	ConfigReverse ConfigFlag = 1 << iota
	ConfigCountWords
	ConfigConvertTemperature
	ConfigRecordHistory
)

// ConfigAll enables every feature.
const ConfigAll = ConfigReverse | ConfigCountWords | ConfigConvertTemperature | ConfigRecordHistory

// Features lists the user-facing feature names, in display order.
var Features = []struct {
	Name string
	Flag ConfigFlag
}{
	{"Reverse", ConfigReverse},
	{"CountWords", ConfigCountWords},
	{"ConvertTemperature", ConfigConvertTemperature},
	{"RecordHistory", ConfigRecordHistory},
}

// LookupFlags returns the features enabled for a channel. A configured channel overrides its guild, a
// configured guild overrides defaults.
func LookupFlags(ctx context.Context, e proteus.ContextQuerier, guildID int, channelID int, defaults ConfigFlag) (ConfigFlag, error) {
	chanConf, err := ChannelConfigDAO.FindByID(ctx, e, channelID)
	if err != nil {
		return 0, err
	}
	if chanConf.ChannelID != 0 {
		return chanConf.Flags, nil
	}
	guildConf, err := GuildConfigDAO.FindByID(ctx, e, guildID)
	if err != nil {
		return 0, err
	}
	if guildConf.GuildID != 0 {
		return guildConf.Flags, nil
	}
	return defaults, nil
}

type ChannelConfig struct {
	ChannelID int        `prof:"channel_id"`
	Flags     ConfigFlag `prof:"flags"`
}

var ChannelConfigDAO ChannelConfigDAOImpl

type ChannelConfigDAOImpl struct {
	Upsert   func(ctx context.Context, e proteus.ContextExecutor, channelID int, flags int64) (int64, error) `proq:"q:chan_upsert" prop:"channelID,flags"`
	FindByID func(ctx context.Context, e proteus.ContextQuerier, channelID int) (ChannelConfig, error)       `proq:"q:chan_findByID" prop:"channelID"`
}

type GuildConfig struct {
	GuildID int        `prof:"guild_id"`
	Flags   ConfigFlag `prof:"flags"`
}

var GuildConfigDAO GuildConfigDAOImpl

type GuildConfigDAOImpl struct {
	Upsert   func(ctx context.Context, e proteus.ContextExecutor, config GuildConfig) (int64, error) `proq:"q:guild_upsert" prop:"config"`
	FindByID func(ctx context.Context, e proteus.ContextQuerier, guildID int) (GuildConfig, error)  `proq:"q:guild_findByID" prop:"guildID"`
}

func init() {
	ctx := context.Background()
	m := proteus.MapMapper{
		"chan_upsert": `INSERT INTO channel_config (channel_id, flags)
						VALUES (:channelID:, :flags:)
						ON CONFLICT (channel_id)
						DO UPDATE SET flags = excluded.flags`,
		"chan_findByID": `SELECT * FROM channel_config WHERE channel_id = :channelID:`,
		"guild_upsert": `INSERT INTO guild_config (guild_id, flags)
						VALUES (:config.GuildID:, :config.Flags:)
						ON CONFLICT (guild_id)
						DO UPDATE SET flags = excluded.flags`,
		"guild_findByID": `SELECT * FROM guild_config WHERE guild_id = :guildID:`,
	}
	err := proteus.ShouldBuild(ctx, &ChannelConfigDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
	err = proteus.ShouldBuild(ctx, &GuildConfigDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
