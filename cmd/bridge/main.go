package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/urmzd/dirigera/pkg/config"
	"github.com/urmzd/dirigera/pkg/hub"
	"github.com/urmzd/dirigera/pkg/mqttbridge"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("MQTT bridge failed")
	}
}

func command() *cli.Command {
	var path string
	return &cli.Command{
		Name:  "dirigera-bridge",
		Usage: "Mirror hub events to MQTT and apply commands received from it",
		Flags: append(config.Flags(&path), config.MQTTFlags(&path)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd)
			if err := config.SetupLogging(cfg.LogLevel); err != nil {
				return err
			}
			return run(ctx, cfg)
		},
	}
}

// run exits when the hub event stream drops so a supervisor can restart the
// bridge with a fresh connection.
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

	client, err := mqttbridge.Connect(mqttbridge.Options{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		Prefix:   cfg.MQTT.Prefix,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	broker := hub.NewBroker(rt.Client)
	bridge := mqttbridge.New(client, rt.Hub, broker, cfg.MQTT.Prefix)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return broker.Run(gctx) })
	g.Go(func() error { return bridge.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("MQTT bridge stopped")
	return nil
}
