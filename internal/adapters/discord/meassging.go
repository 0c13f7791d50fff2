package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Defer efímero (para trabajos >3s)
func DeferEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Warn("defer ephemeral", "error", err)
	}
	return err
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err == nil {
		return
	}
	// Fallback sólo si todavía no hay respuesta (webhook desconocido)
	var reqErr *discordgo.RESTError
	if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == discordgo.ErrCodeUnknownWebhook {
		_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}
	slog.Warn("reply ephemeral", "error", err)
}

// ReplyChunks manda el reporte en varios followups (uno por bloque).
func ReplyChunks(s *discordgo.Session, ic *discordgo.InteractionCreate, chunks []string) {
	for _, c := range chunks {
		ReplyEphemeral(s, ic, c)
	}
}

type messageSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelPoster publica reportes en un canal fijo. Post tiene la firma de
// service.ReportSink.
type ChannelPoster struct {
	send      messageSender
	channelID string
}

func NewChannelPoster(send messageSender, channelID string) *ChannelPoster {
	return &ChannelPoster{send: send, channelID: channelID}
}

func (p *ChannelPoster) Post(ctx context.Context, matchID, report string) error {
	msgs := append([]string{fmt.Sprintf("**Fantasy report** `%s`", matchID)}, SplitCodeBlocks(report, messageLimit)...)
	for i, m := range msgs {
		if _, err := p.send.ChannelMessageSend(p.channelID, m, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("post report part %d/%d: %w", i+1, len(msgs), err)
		}
	}
	return nil
}
