package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "mindfeed",
		Usage: "Bite-sized learning content, generated on demand",
		Commands: []*cli.Command{
			fetchCommand(),
			showCommand(),
			saveCommand(),
			unsaveCommand(),
			savedCommand(),
			historyCommand(),
			recentCommand(),
			readCommand(),
			profileCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
