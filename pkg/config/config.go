// Package config holds the command-line and YAML configuration shared by
// the binaries, and turns it into a connected hub client.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/urmzd/dirigera/pkg/db"
	"github.com/urmzd/dirigera/pkg/hub"
)

// Config is the resolved configuration of one binary.
type Config struct {
	DBPath   string
	LogLevel string
	Hub      Hub
	API      API
	MQTT     MQTT
}

// Hub overrides the credentials stored for the active hub.
type Hub struct {
	Address     string
	Port        int
	Token       string
	Certificate string // path to a PEM file
	Timeout     time.Duration
}

// API configures the REST bridge.
type API struct {
	Address string // empty uses the stored listen address
}

// MQTT configures the MQTT bridge.
type MQTT struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Prefix   string
}

func fromYAML(key string, path *string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(yaml.YAML(key, altsrc.NewStringPtrSourcer(path)))
}

// Flags returns the flags every binary accepts. path receives the value of
// --config so the other flags can fall back to the YAML file.
func Flags(path *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Load configuration from `FILE`",
			Validator:   validateConfig,
			Destination: path,
		},
		&cli.StringFlag{
			Name:    "db",
			Usage:   "Path to the database file (default: <user config dir>/dirigera/dirigera.db)",
			Sources: fromYAML("db.path", path),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Set log level (trace, debug, info, warn, error)",
			Value:   "info",
			Sources: fromYAML("log.level", path),
		},
		&cli.StringFlag{
			Name:    "hub-address",
			Usage:   "Hub IP address or host name, overriding the paired hub",
			Sources: fromYAML("hub.address", path),
		},
		&cli.IntFlag{
			Name:    "hub-port",
			Usage:   "Hub HTTPS port",
			Value:   hub.DefaultPort,
			Sources: fromYAML("hub.port", path),
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Bearer token, overriding the paired hub's",
			Sources: fromYAML("hub.token", path),
		},
		&cli.StringFlag{
			Name:    "certificate",
			Usage:   "Pin the hub certificate in PEM `FILE`",
			Sources: fromYAML("hub.certificate", path),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Per-request timeout",
			Value:   hub.DefaultTimeout,
			Sources: fromYAML("hub.timeout", path),
		},
	}
}

// APIFlags returns the REST bridge flags.
func APIFlags(path *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Usage:   "REST bridge listen address, overriding the stored one",
			Sources: fromYAML("api.listen", path),
		},
	}
}

// MQTTFlags returns the MQTT bridge flags.
func MQTTFlags(path *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mqtt-broker",
			Usage:   "MQTT broker URL",
			Value:   "tcp://localhost:1883",
			Sources: fromYAML("mqtt.broker", path),
		},
		&cli.StringFlag{
			Name:    "mqtt-client-id",
			Usage:   "MQTT client id",
			Value:   "dirigera-bridge",
			Sources: fromYAML("mqtt.client_id", path),
		},
		&cli.StringFlag{
			Name:    "mqtt-username",
			Usage:   "MQTT username",
			Sources: fromYAML("mqtt.username", path),
		},
		&cli.StringFlag{
			Name:    "mqtt-password",
			Usage:   "MQTT password",
			Sources: fromYAML("mqtt.password", path),
		},
		&cli.StringFlag{
			Name:    "mqtt-prefix",
			Usage:   "Topic prefix",
			Value:   "dirigera",
			Sources: fromYAML("mqtt.prefix", path),
		},
	}
}

// Load reads the parsed flags of cmd. Flags a command does not define
// read as zero values.
func Load(cmd *cli.Command) *Config {
	return &Config{
		DBPath:   cmd.String("db"),
		LogLevel: cmd.String("log-level"),
		Hub: Hub{
			Address:     cmd.String("hub-address"),
			Port:        cmd.Int("hub-port"),
			Token:       cmd.String("token"),
			Certificate: cmd.String("certificate"),
			Timeout:     cmd.Duration("timeout"),
		},
		API: API{
			Address: cmd.String("listen"),
		},
		MQTT: MQTT{
			Broker:   cmd.String("mqtt-broker"),
			ClientID: cmd.String("mqtt-client-id"),
			Username: cmd.String("mqtt-username"),
			Password: cmd.String("mqtt-password"),
			Prefix:   cmd.String("mqtt-prefix"),
		},
	}
}

// SetupLogging points the global logger at stderr. stdout stays free for
// the MCP transport.
func SetupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// Runtime is the opened store and the client for the hub it selects.
type Runtime struct {
	DB         *db.DB
	Client     *hub.Client
	Hub        *hub.Hub
	APIAddress string
}

// Open opens and migrates the store and connects to the active hub.
// Address and token flags take precedence over the stored hub; with both
// set the store need not hold a paired hub.
func Open(ctx context.Context, cfg *Config) (*Runtime, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", database.Path()).Msg("database opened")

	rt, err := connect(ctx, cfg, database)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return rt, nil
}

func connect(ctx context.Context, cfg *Config, database *db.DB) (*Runtime, error) {
	if err := database.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	stored, err := database.ActiveConfig(ctx)
	if err != nil && !errors.Is(err, db.ErrNoActiveHub) {
		return nil, err
	}

	address, port, token, apiVersion := cfg.Hub.Address, cfg.Hub.Port, cfg.Hub.Token, hub.DefaultAPIVersion
	var certPEM []byte
	apiAddress := "0.0.0.0:8080"
	if stored != nil {
		apiAddress = stored.APIAddress()
		if address == "" {
			address, port = stored.Hub.Address, stored.Hub.Port
		}
		if token == "" {
			token = stored.Hub.Token
		}
		apiVersion = stored.Hub.APIVersion
		certPEM = []byte(stored.Hub.Certificate)
	}
	if address == "" || token == "" {
		return nil, db.ErrNoActiveHub
	}
	if cfg.Hub.Certificate != "" {
		certPEM, err = os.ReadFile(cfg.Hub.Certificate)
		if err != nil {
			return nil, fmt.Errorf("read hub certificate: %w", err)
		}
	}
	if cfg.API.Address != "" {
		apiAddress = cfg.API.Address
	}

	opts := []hub.Option{hub.WithAPIVersion(apiVersion)}
	if port != 0 {
		opts = append(opts, hub.WithPort(port))
	}
	if cfg.Hub.Timeout > 0 {
		opts = append(opts, hub.WithTimeout(cfg.Hub.Timeout))
	}
	if len(certPEM) > 0 {
		opts = append(opts, hub.WithCertificate(certPEM))
	}
	client, err := hub.NewClient(address, token, opts...)
	if err != nil {
		return nil, err
	}
	log.Info().Str("hub", client.BaseURL()).Bool("pinned", len(certPEM) > 0).Msg("hub configured")

	return &Runtime{
		DB:         database,
		Client:     client,
		Hub:        hub.New(client),
		APIAddress: apiAddress,
	}, nil
}

// Close closes the store.
func (r *Runtime) Close() error {
	return r.DB.Close()
}

func validateConfig(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", path)
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}
	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", path)
	}
	return nil
}
