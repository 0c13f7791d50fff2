package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "ping",
		Description: "Chequea que el bot responda",
	},
	{
		Name:        "fantasy",
		Description: "Reporte de fantasy de un match de FACEIT",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "URL del match (o el match id)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "side_by_side",
				Description: "Tablas de ambos equipos lado a lado",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "post",
				Description: "Publicar en el canal de reportes (admins)",
			},
		},
	},
	{
		Name:        "leaderboard",
		Description: "Top del leaderboard de un gameweek",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "gameweek",
				Description: "Ej: week3 (por defecto el último)",
			},
		},
	},
}
