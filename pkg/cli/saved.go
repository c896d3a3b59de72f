package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/saved"
	"github.com/urfave/cli/v3"
)

func saveCommand() *cli.Command {
	var (
		cfg       config
		requestID model.RequestID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "request-id",
			Aliases:     []string{"id"},
			Usage:       "Request ID of the article to bookmark",
			Sources:     cli.EnvVars("MINDFEED_REQUEST_ID"),
			Destination: (*string)(&requestID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "save",
		Usage: "Bookmark a generated article",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			if err := cfg.requireUser(); err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			uc := saved.New(repo, cfg.userID)

			item, err := uc.Save(ctx, requestID)
			if err != nil {
				return goerr.Wrap(err, "failed to save content")
			}

			fmt.Fprintf(c.Root().Writer, "Saved %q\n", item.Content.Title)
			return nil
		},
	}
}

func unsaveCommand() *cli.Command {
	var (
		cfg       config
		requestID model.RequestID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "request-id",
			Aliases:     []string{"id"},
			Usage:       "Request ID of the bookmark to remove",
			Sources:     cli.EnvVars("MINDFEED_REQUEST_ID"),
			Destination: (*string)(&requestID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "unsave",
		Usage: "Remove a bookmark",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			if err := cfg.requireUser(); err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			uc := saved.New(repo, cfg.userID)

			if err := uc.Unsave(ctx, requestID); err != nil {
				return goerr.Wrap(err, "failed to unsave content")
			}

			fmt.Fprintf(c.Root().Writer, "Removed bookmark %s\n", requestID)
			return nil
		},
	}
}

func savedCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)

	return &cli.Command{
		Name:  "saved",
		Usage: "List bookmarked articles",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			if err := cfg.requireUser(); err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			uc := saved.New(repo, cfg.userID)

			items, err := uc.List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list saved content")
			}

			if len(items) == 0 {
				fmt.Fprintf(c.Root().Writer, "No saved articles\n")
				return nil
			}

			for _, item := range items {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\t%s\n",
					item.RequestID,
					item.Content.Title,
					item.Content.Category,
					item.SavedAt.Format("2006-01-02 15:04:05"),
				)
			}

			return nil
		},
	}
}
