package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindfeed-app/mindfeed/pkg/model"
	"github.com/mindfeed-app/mindfeed/pkg/usecase/content"
	"github.com/mindfeed-app/mindfeed/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func fetchCommand() *cli.Command {
	var (
		cfg     config
		timeout time.Duration
		queue   bool
	)

	flags := []cli.Flag{
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "How long to wait for the generated article",
			Value:       content.DefaultTimeout,
			Sources:     cli.EnvVars("MINDFEED_TIMEOUT"),
			Destination: &timeout,
		},
		&cli.BoolFlag{
			Name:        "queue",
			Usage:       "Prefetch into the reading queue instead of showing the article",
			Destination: &queue,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, contentFlags(&cfg)...)
	flags = append(flags, profileFlags(&cfg)...)

	return &cli.Command{
		Name:  "fetch",
		Usage: "Request a new article and wait for it",
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

			webhook, err := cfg.newWebhook()
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			profile, err := cfg.profile()
			if err != nil {
				return err
			}

			opts := []content.Option{content.WithTimeout(timeout)}
			if storage != nil {
				opts = append(opts, content.WithStorage(storage))
			}
			uc := content.New(repo, webhook, cfg.userID, profile, opts...)

			if err := uc.LoadHistory(ctx); err != nil {
				logging.From(ctx).Warn("failed to load content history", "error", err)
			}

			indicator := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr))
			indicator.Suffix = " generating your article..."
			indicator.Start()

			result, err := uc.Fetch(ctx, content.FetchOptions{Enqueue: queue, Timeout: timeout})
			indicator.Stop()
			if err != nil {
				return goerr.Wrap(err, "failed to fetch content")
			}

			if queue {
				view := uc.Store().Snapshot()
				fmt.Fprintf(c.Root().Writer, "Queued %q (%d article(s) waiting)\n",
					result.Content.Title, view.QueueLen)
				return nil
			}

			printArticle(c.Root().Writer, result)
			return nil
		},
	}
}

// printArticle renders a completed content record
func printArticle(w io.Writer, result *model.GeneratedContent) {
	article := result.Content

	fmt.Fprintf(w, "\n%s\n%s\n\n", article.Title, strings.Repeat("=", utf8.RuneCountInString(article.Title)))
	fmt.Fprintf(w, "%s · %d min read\n\n", article.Category, article.ReadingTimeMinutes)
	if article.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", article.Summary)
	}
	fmt.Fprintf(w, "%s\n", article.Body)

	if len(article.Sources) > 0 {
		fmt.Fprintf(w, "\nSources:\n")
		for _, source := range article.Sources {
			fmt.Fprintf(w, "  - %s\n", source)
		}
	}
	fmt.Fprintf(w, "\n[%s]\n", result.RequestID)
}
