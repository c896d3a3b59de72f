package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/adapter"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/repository"
	"github.com/mindfeed-app/mindfeed/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Repository
	project  string
	database string

	// Session
	userID   string
	logLevel string

	// Collaborators
	webhookURL string
	bucket     string

	// Profile
	profilePath string
	displayName string
	categories  []string
	minutes     int64
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "User ID of the authenticated session",
			Sources:     cli.EnvVars("MINDFEED_USER_ID"),
			Destination: &cfg.userID,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("MINDFEED_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// contentFlags returns flags for the generation pipeline with destination config
func contentFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Content generation webhook URL",
			Sources:     cli.EnvVars("MINDFEED_WEBHOOK_URL"),
			Destination: &cfg.webhookURL,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for article body archive (optional)",
			Sources:     cli.EnvVars("MINDFEED_BUCKET"),
			Destination: &cfg.bucket,
		},
	}
}

// profileFlags returns flags describing the user's learning profile
func profileFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to profile YAML file",
			Sources:     cli.EnvVars("MINDFEED_PROFILE"),
			Destination: &cfg.profilePath,
		},
		&cli.StringFlag{
			Name:        "display-name",
			Usage:       "Display name used to personalize content",
			Sources:     cli.EnvVars("MINDFEED_DISPLAY_NAME"),
			Destination: &cfg.displayName,
		},
		&cli.StringSliceFlag{
			Name:        "category",
			Aliases:     []string{"c"},
			Usage:       "Interest category (repeatable, overrides profile file)",
			Destination: &cfg.categories,
		},
		&cli.IntFlag{
			Name:        "minutes",
			Aliases:     []string{"m"},
			Usage:       "Target reading time in minutes",
			Sources:     cli.EnvVars("MINDFEED_MINUTES"),
			Destination: &cfg.minutes,
		},
	}
}

// loggerContext attaches a configured logger to the context
func (cfg *config) loggerContext(ctx context.Context) context.Context {
	return logging.With(ctx, logging.New(cfg.logLevel, os.Stderr))
}

// requireUser validates that a user ID is configured
func (cfg *config) requireUser() error {
	if cfg.userID == "" {
		return goerr.New("user-id is required")
	}
	return nil
}

// newRepository creates a new Firestore repository instance
func (cfg *config) newRepository(ctx context.Context) (*repository.Firestore, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newWebhook creates a new webhook client instance
func (cfg *config) newWebhook() (adapter.Webhook, error) {
	if cfg.webhookURL == "" {
		return nil, model.ErrWebhookNotConfigured
	}
	return adapter.NewWebhook(cfg.webhookURL), nil
}

// newStorage creates an archive storage instance; nil when no bucket is set
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if cfg.bucket == "" {
		return nil, nil
	}

	storage, err := adapter.NewStorage(ctx, cfg.bucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}

// profile resolves the learning profile: a YAML file when given, otherwise
// flag values.
func (cfg *config) profile() (*model.Profile, error) {
	if cfg.profilePath != "" {
		return model.LoadProfile(cfg.profilePath)
	}

	profile := &model.Profile{
		DisplayName:          cfg.displayName,
		Categories:           cfg.categories,
		DailyLearningMinutes: int(cfg.minutes),
	}
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid profile: pass --profile or --category/--minutes")
	}
	return profile, nil
}
