package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/recent"
	"github.com/urfave/cli/v3"
)

func recentCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)

	return &cli.Command{
		Name:  "recent",
		Usage: "List recently read articles",
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

			uc := recent.New(repo, cfg.userID)

			articles, err := uc.List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list recent articles")
			}

			if len(articles) == 0 {
				fmt.Fprintf(c.Root().Writer, "No recently read articles\n")
				return nil
			}

			for _, article := range articles {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\t%s\n",
					article.RequestID,
					article.Title,
					article.Category,
					article.ReadAt.Format("2006-01-02 15:04:05"),
				)
			}

			return nil
		},
	}
}

func readCommand() *cli.Command {
	var (
		cfg       config
		requestID model.RequestID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "request-id",
			Aliases:     []string{"id"},
			Usage:       "Request ID of the finished article",
			Sources:     cli.EnvVars("MINDFEED_REQUEST_ID"),
			Destination: (*string)(&requestID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "read",
		Usage: "Mark an article as read",
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

			uc := recent.New(repo, cfg.userID)

			article, err := uc.MarkRead(ctx, requestID)
			if err != nil {
				return goerr.Wrap(err, "failed to mark article as read")
			}

			fmt.Fprintf(c.Root().Writer, "Marked %q as read\n", article.Title)
			return nil
		},
	}
}
