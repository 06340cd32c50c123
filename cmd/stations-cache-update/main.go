package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/bahn-go/internal/logging"
	"github.com/jusunglee/bahn-go/internal/refresh"
	"github.com/jusunglee/bahn-go/internal/transport"
	"github.com/jusunglee/bahn-go/pkg/bahn"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
	logging.Setup()

	app := &cli.App{
		Name:        "stations-cache-update",
		Description: "Rebuilds the station snapshot from the RIS::Stations API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Usage:   "Comma separated output formats (protobuf, json, csv)",
				Value:   "protobuf",
				EnvVars: []string{"FORMAT"},
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output path without extension",
				Value: "data/stations",
			},
			&cli.Uint64Flag{
				Name:  "retries",
				Usage: "Retries for transient upstream failures",
				Value: 3,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file",
			},
		},
		Action: func(c *cli.Context) error {
			formats, err := refresh.ParseFormats(c.String("format"))
			if err != nil {
				return err
			}

			config := bahn.ConfigFromEnv()
			if path := c.String("config"); path != "" {
				config, err = bahn.LoadConfigFile(path)
				if err != nil {
					return err
				}
			}
			if err := config.Validate(); err != nil {
				return err
			}

			log.Info().Str("format", c.String("format")).Msg("Updating stations cache")

			getter := transport.New(config.ClientID, config.APIKey, config.Timeout)
			response, err := refresh.Fetch(c.Context, getter, config.BaseURL, c.Uint64("retries"), time.Second)
			if err != nil {
				return err
			}

			if err := refresh.Write(response, c.String("output"), formats); err != nil {
				return err
			}

			log.Info().Msg("Stations cache updated")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}
