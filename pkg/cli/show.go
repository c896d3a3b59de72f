package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/content"
	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	var (
		cfg       config
		requestID model.RequestID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "request-id",
			Aliases:     []string{"id"},
			Usage:       "Request ID of the article to show",
			Sources:     cli.EnvVars("MINDFEED_REQUEST_ID"),
			Destination: (*string)(&requestID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, contentFlags(&cfg)...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show a previously generated article",
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

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			opts := []content.Option{}
			if storage != nil {
				opts = append(opts, content.WithStorage(storage))
			}
			// Show needs no webhook or profile; it only reads
			uc := content.New(repo, nil, cfg.userID, nil, opts...)

			result, err := uc.Show(ctx, requestID)
			if err != nil {
				return goerr.Wrap(err, "failed to show content")
			}

			switch result.Status {
			case model.StatusCompleted:
				printArticle(c.Root().Writer, result)
			case model.StatusError:
				fmt.Fprintf(c.Root().Writer, "Generation failed: %s\n", result.Error)
			default:
				fmt.Fprintf(c.Root().Writer, "Still generating (%s)\n", result.RequestID)
			}

			return nil
		},
	}
}
