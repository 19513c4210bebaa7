package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/urmzd/dirigera/pkg/api"
	"github.com/urmzd/dirigera/pkg/config"
	"github.com/urmzd/dirigera/pkg/hub"

	_ "github.com/urmzd/dirigera/docs"
)

// @title           Dirigera Bridge API
// @version         1.0
// @description     REST bridge to an IKEA Dirigera hub

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

const reconnectDelay = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("API server failed")
	}
}

func command() *cli.Command {
	var path string
	return &cli.Command{
		Name:  "dirigera-api",
		Usage: "Serve a REST API for the paired hub",
		Flags: append(config.Flags(&path), config.APIFlags(&path)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd)
			if err := config.SetupLogging(cfg.LogLevel); err != nil {
				return err
			}
			return run(ctx, cfg)
		},
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	rt, err := config.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	broker := hub.NewBroker(rt.Client)
	router := api.NewRouter(rt.Hub, broker)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		streamEvents(gctx, broker)
		return nil
	})
	g.Go(func() error {
		log.Info().Str("address", rt.APIAddress).Msg("Starting API server")
		return router.Run(gctx, rt.APIAddress)
	})
	return g.Wait()
}

// streamEvents keeps the hub event stream open until ctx ends. SSE clients
// of a dropped stream see their response end and reconnect.
func streamEvents(ctx context.Context, broker *hub.Broker) {
	for {
		err := broker.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Dur("retry_in", reconnectDelay).Msg("Event stream lost")
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}
