package faceit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	var dto Match
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/matches/%s", url.PathEscape(matchID)), nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) GetMatchStats(ctx context.Context, matchID string) (*MatchStats, error) {
	var dto MatchStats
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/matches/%s/stats", url.PathEscape(matchID)), nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// GetPlayer se usa de fallback cuando el jugador no aparece en el roster del match.
func (c *Client) GetPlayer(ctx context.Context, playerID string) (*PlayerDetails, error) {
	var dto PlayerDetails
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/players/%s", url.PathEscape(playerID)), nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}
