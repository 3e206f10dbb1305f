package db

import (
	"context"

	"github.com/jonbodner/proteus"
)

// Request is one answered utility command.
type Request struct {
	GuildID   int    `prof:"guild_id"`
	ChannelID int    `prof:"channel_id"`
	MessageID int    `prof:"message_id"`
	AuthorID  string `prof:"author_id"`
	Command   string `prof:"command"`
	Input     string `prof:"input"`
	Output    string `prof:"output"`
}

var RequestDAO RequestDaoImpl

type RequestDaoImpl struct {
	Upsert         func(ctx context.Context, e proteus.ContextExecutor, r Request) (int64, error)                   `proq:"q:upsert" prop:"r"`
	CountByCommand func(ctx context.Context, e proteus.ContextQuerier, guildID int, command string) (int64, error) `proq:"q:countByCommand" prop:"guildID,command"`
	// FindByID is only intended for testing
	FindByID func(ctx context.Context, e proteus.ContextQuerier, messageID int) (Request, error) `proq:"q:findByID" prop:"messageID"`
}

func init() {
	m := proteus.MapMapper{
		"upsert": `INSERT INTO request (guild_id, channel_id, message_id, author_id, command, input, output)
				   VALUES (:r.GuildID:,:r.ChannelID:,:r.MessageID:,:r.AuthorID:,:r.Command:,:r.Input:,:r.Output:)
				   ON CONFLICT(guild_id, channel_id, message_id)
				   DO UPDATE SET command = excluded.command, input = excluded.input, output = excluded.output`,
		"findByID":       `SELECT * FROM request WHERE message_id = :messageID:`,
		"countByCommand": `SELECT COUNT(*) FROM request WHERE guild_id = :guildID: AND command = :command:`,
	}
	err := proteus.ShouldBuild(context.Background(), &RequestDAO, proteus.Sqlite, m)
	if err != nil {
		panic(err)
	}
}
