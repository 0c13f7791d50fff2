// esta es la logica de InteractionApplicationCommand de discordgo
// aqui solo manejamos la interaccion y despachamos al servicio
package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/faceit"
	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/app/service"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

const leaderboardTop = 10

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	uid := userID(ic)
	log := r.log.With(logging.FieldCommand, cmd.Name, logging.FieldUser, uid)
	log.Info("slash command", "guild", ic.GuildID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic in slash command", "panic", rec)
			ReplyEphemeral(s, ic, "❌ Unexpected error while processing the command.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	// FACEIT + un GetPlayer por jugador sin nombre en el roster
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd.Name {
	case "ping":
		ReplyEphemeral(s, ic, "🏓 Pong!")

	case "fantasy":
		if !r.limiter.Allow(uid) {
			ReplyEphemeral(s, ic, "⏳ Wait a few seconds before asking for another report.")
			return
		}
		matchURL, _ := optStr(ic, "url")
		sideBySide, _ := optBool(ic, "side_by_side")
		post, _ := optBool(ic, "post")

		if post {
			if r.poster == nil {
				ReplyEphemeral(s, ic, "⚠️ No report channel is configured.")
				return
			}
			if !r.requireAdminOrRoles(s, ic) {
				return
			}
		}

		start := time.Now()
		out, err := r.reports.Generate(ctx, matchURL, report.LayoutFrom(sideBySide))
		log.Info("fantasy report", logging.FieldDurationMS, time.Since(start).Milliseconds(), "ok", err == nil)
		if err != nil {
			ReplyEphemeral(s, ic, FriendlyError(err))
			return
		}

		if post {
			matchID, _ := faceit.ParseMatchID(matchURL)
			if err := r.poster.Post(ctx, matchID, out); err != nil {
				log.Warn("post report", "error", err)
				ReplyEphemeral(s, ic, "⚠️ Could not post the report: "+err.Error())
				return
			}
			ReplyEphemeral(s, ic, "✅ Report posted.")
			return
		}
		ReplyChunks(s, ic, SplitCodeBlocks(out, messageLimit))

	case "leaderboard":
		if r.boards == nil {
			ReplyEphemeral(s, ic, "⚠️ Leaderboard is not available.")
			return
		}
		gw, _ := optStr(ic, "gameweek")
		sum, err := r.boards.Summary(ctx)
		if err != nil {
			log.Warn("leaderboard", "error", err)
			ReplyEphemeral(s, ic, "⚠️ Could not load the leaderboard: "+err.Error())
			return
		}
		msg, err := FormatLeaderboard(sum, gw, leaderboardTop)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ "+err.Error())
			return
		}
		ReplyChunks(s, ic, SplitCodeBlocks(msg, messageLimit))

	default:
		ReplyEphemeral(s, ic, "Unknown command.")
	}
}

// FriendlyError traduce los errores del servicio a un mensaje para el usuario.
func FriendlyError(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidMatchURL):
		return "⚠️ That does not look like a FACEIT match URL."
	case errors.Is(err, service.ErrMatchNotFound):
		return "⚠️ Match not found on FACEIT."
	case errors.Is(err, service.ErrMatchNotFinished):
		return "⏳ The match has not finished yet, stats are not available."
	case errors.Is(err, service.ErrCompetitionNotAllowed):
		return "🔒 That match is not part of the league."
	case errors.Is(err, context.DeadlineExceeded):
		return "⌛ FACEIT took too long to answer, try again."
	}
	return "⚠️ Could not build the report: " + err.Error()
}

// FormatLeaderboard arma el top n de un gameweek (vacío = el último).
func FormatLeaderboard(sum leaderboard.Summary, gameweek string, n int) (string, error) {
	if gameweek == "" {
		names := make([]string, 0, len(sum.Leaderboards))
		for name := range sum.Leaderboards {
			names = append(names, name)
		}
		if len(names) == 0 {
			return "", errors.New("no gameweeks loaded")
		}
		sorted := leaderboard.SortGameweeks(names)
		gameweek = sorted[len(sorted)-1]
	}
	week, ok := sum.Leaderboards[gameweek]
	if !ok {
		return "", fmt.Errorf("unknown gameweek %q", gameweek)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) - %d players, avg %.1f\n\n", gameweek, leaderboard.Stage(gameweek), week.TotalParticipants, week.AveragePoints)
	for i, e := range week.Data {
		if i >= n {
			break
		}
		fmt.Fprintf(&b, "%2d. %-20s %6.1f  (total %.1f, #%d", e.WeeklyPosition, e.Username, e.WeeklyPoints, e.CurrentTotalScore, e.CurrentOverallPosition)
		if e.OverallPositionChange != 0 {
			fmt.Fprintf(&b, " %+d", e.OverallPositionChange)
		}
		b.WriteString(")\n")
	}
	return b.String(), nil
}
