package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

func profileCommand() *cli.Command {
	var cfg config

	flags := append(globalFlags(&cfg), profileFlags(&cfg)...)

	return &cli.Command{
		Name:  "profile",
		Usage: "Show the resolved learning profile",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			profile, err := cfg.profile()
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Display name: %s\n", profile.DisplayName)
			fmt.Fprintf(c.Root().Writer, "Categories:   %s\n", strings.Join(profile.Categories, ", "))
			fmt.Fprintf(c.Root().Writer, "Daily target: %d min\n", profile.DailyLearningMinutes)
			return nil
		},
	}
}
