package main

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/datastore/job-service/internal/config"
	"github.com/datastore/job-service/internal/migration"
	"github.com/datastore/job-service/internal/models"
	"github.com/datastore/job-service/internal/repository"
)

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if url := cmd.String("database-url"); url != "" {
		cfg.DatabaseURL = url
	}
	if cmd.IsSet("mongodb-url") {
		cfg.MongoDB.URL = cmd.String("mongodb-url")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database_url must be set")
	}
	return cfg, nil
}

// openPostgres connects and brings the schema up to date.
func openPostgres(ctx context.Context, url string, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	if err := migration.RunMigrations(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func schemaAction(logger zerolog.Logger) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := openPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		return db.Close()
	}
}

func transferAction(logger zerolog.Logger) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		db, err := openPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		dst := repository.NewPostgresRepository(db)
		defer dst.Close(ctx)

		if !cmd.Bool("force") {
			existing, err := dst.GetJobs(ctx, models.GetJobsQuery{})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return errors.Errorf("postgres already holds %d jobs; rerun with --force to copy anyway", len(existing))
			}
		}

		if cfg.Datastore.Name != "" {
			err := dst.UpsertDatastore(ctx, repository.Datastore{
				Rdn:         cfg.Datastore.Rdn,
				Description: cfg.Datastore.Description,
				Directory:   cfg.Datastore.Directory,
				Name:        cfg.Datastore.Name,
			})
			if err != nil {
				return err
			}
			logger.Info().Str("datastore", cfg.Datastore.Name).Msg("Datastore definition written")
		}

		client, err := repository.ConnectMongo(ctx, cfg.MongoDB.URL, cfg.MongoDB.Username, cfg.MongoDB.Password)
		if err != nil {
			return err
		}
		src := repository.NewMongoRepository(client, cfg.MongoDB.Database)
		defer src.Close(ctx)

		stats, err := repository.Transfer(ctx, src, dst, logger)
		if err != nil {
			return err
		}
		logger.Info().
			Int("jobs", stats.Jobs).
			Int("targets", stats.Targets).
			Int("maintenance", stats.Maintenance).
			Msg("Transfer complete")
		return nil
	}
}
