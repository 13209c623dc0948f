package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Str("component", "migrate").Logger()

	connectionFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "database-url",
			Usage: "PostgreSQL connection URL (defaults to database_url from config)",
		},
	}

	app := &cli.Command{
		Name:  "migrate",
		Usage: "Move job service data from MongoDB to PostgreSQL",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Apply the PostgreSQL schema migrations",
				Flags:  connectionFlags,
				Action: schemaAction(logger),
			},
			{
				Name:  "transfer",
				Usage: "Apply the schema, then copy every job, target and maintenance status from MongoDB",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "mongodb-url",
						Usage: "MongoDB connection URL (defaults to mongodb.url from config)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Copy even when PostgreSQL already holds jobs",
					},
				}, connectionFlags...),
				Action: transferAction(logger),
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}
}
