// lambda: mismas rutas que cmd/web detrás de API Gateway HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/httpapi"
	"github.com/jose-valero/ow-fantasy-report/internal/adapters/lambdaapi"
	"github.com/jose-valero/ow-fantasy-report/internal/app/bootstrap"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/config"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

func main() {
	cfg, err := config.FromEnv()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	// fuera del handler: la conexión a la DB se reutiliza entre invocaciones
	app, err := bootstrap.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("bootstrap", "error", err)
		os.Exit(1)
	}

	srv := httpapi.New(app.Reports, app.Leaderboard,
		httpapi.WithLogger(log),
		httpapi.WithLeaderboardDir(cfg.LeaderboardDir),
		httpapi.WithWebhook(cfg.WebhookSecret, app.Reports.HandleMatchEvent),
		httpapi.WithSyncEvents(),
	)
	lambda.Start(lambdaapi.New(srv.Handler(), log).Handle)
}
