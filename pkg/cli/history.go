package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/urfave/cli/v3"
)

func historyCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)

	return &cli.Command{
		Name:  "history",
		Usage: "List recent topics sent as repetition hints",
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

			entries, err := repo.ListHistory(ctx, cfg.userID, model.HistoryLimit)
			if err != nil {
				return goerr.Wrap(err, "failed to list history")
			}

			if len(entries) == 0 {
				fmt.Fprintf(c.Root().Writer, "No content history\n")
				return nil
			}

			for _, entry := range entries {
				marks := ""
				if entry.Viewed {
					marks += " viewed"
				}
				if entry.Saved {
					marks += " saved"
				}
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\t%s%s\n",
					entry.RequestID,
					entry.TopicSummary,
					entry.Category,
					entry.GeneratedAt.Format("2006-01-02 15:04:05"),
					marks,
				)
			}

			return nil
		},
	}
}
