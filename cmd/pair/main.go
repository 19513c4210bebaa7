package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/urmzd/dirigera/pkg/config"
	"github.com/urmzd/dirigera/pkg/db"
	"github.com/urmzd/dirigera/pkg/hub"
	"github.com/urmzd/dirigera/pkg/pairing"
)

const (
	pollInterval = 2 * time.Second
	pressWindow  = 90 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("Pairing failed")
	}
}

func command() *cli.Command {
	var path string
	return &cli.Command{
		Name:  "dirigera-pair",
		Usage: "Pair with a hub and store its token",
		Flags: append(append(config.Flags(&path), config.APIFlags(&path)...),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Name to store the hub under",
				Value: "home",
			},
			&cli.StringFlag{
				Name:  "client-name",
				Usage: "Client name the hub records for the token (default: host name)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd)
			if err := config.SetupLogging(cfg.LogLevel); err != nil {
				return err
			}
			return pair(ctx, cfg, cmd.String("name"), cmd.String("client-name"))
		},
	}
}

func pair(ctx context.Context, cfg *config.Config, name, clientName string) error {
	if cfg.Hub.Address == "" {
		return errors.New("--hub-address is required")
	}

	var certPEM []byte
	if cfg.Hub.Certificate != "" {
		b, err := os.ReadFile(cfg.Hub.Certificate)
		if err != nil {
			return fmt.Errorf("read hub certificate: %w", err)
		}
		certPEM = b
	}
	tlsCfg, err := hub.TLSConfig(certPEM)
	if err != nil {
		return err
	}

	p, err := pairing.New(cfg.Hub.Address,
		pairing.WithPort(cfg.Hub.Port),
		pairing.WithName(clientName),
		pairing.WithHTTPClient(hub.NewHTTPClient(tlsCfg, cfg.Hub.Timeout)),
	)
	if err != nil {
		return err
	}

	session, err := p.Begin(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Press the action button on the bottom of the hub within %s\n", pressWindow)

	waitCtx, cancel := context.WithTimeout(ctx, pressWindow)
	defer cancel()
	token, err := p.Wait(waitCtx, session, pollInterval)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()
	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	saved := &db.Hub{
		Name:        name,
		Address:     cfg.Hub.Address,
		Port:        cfg.Hub.Port,
		APIVersion:  hub.DefaultAPIVersion,
		Token:       token,
		Certificate: string(certPEM),
	}
	if err := database.SaveHub(ctx, saved); err != nil {
		return err
	}
	if cfg.API.Address != "" {
		if err := database.SetAPIAddress(ctx, saved.ID, cfg.API.Address); err != nil {
			return err
		}
	}

	log.Info().
		Str("hub", saved.Name).
		Str("address", saved.Address).
		Str("client", p.Name()).
		Str("path", database.Path()).
		Msg("Hub paired")
	return nil
}
