package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/urmzd/dirigera/pkg/config"
	dirigeramcp "github.com/urmzd/dirigera/pkg/mcp"
)

func main() {
	if err := command().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}

func command() *cli.Command {
	var path string
	return &cli.Command{
		Name:  "dirigera-mcp",
		Usage: "Serve hub control tools over MCP stdio",
		Flags: config.Flags(&path),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd)
			// Logging must go to stderr; stdout is the MCP transport
			if err := config.SetupLogging(cfg.LogLevel); err != nil {
				return err
			}

			rt, err := config.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := rt.Close(); err != nil {
					log.Error().Err(err).Msg("Failed to close database")
				}
			}()

			log.Info().Msg("Starting MCP server on stdio")
			return dirigeramcp.NewServer(rt.Hub).ServeStdio()
		},
	}
}
