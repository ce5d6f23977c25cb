package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/cli/config"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
)

func cmdRoster() *cli.Command {
	var repoCfg config.Repository
	var workspaceCfg config.Workspace

	flags := append(repoCfg.Flags(), workspaceCfg.Flags()...)

	return &cli.Command{
		Name:    "roster",
		Aliases: []string{"r"},
		Usage:   "Run one roster generation pass and exit",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if err := workspaceCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to load workspace configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			rosterUC := usecase.NewRosterUseCase(repo,
				usecase.WithRosterWindow(workspaceCfg.RosterWindowDays))

			created, err := rosterUC.Generate(logging.With(ctx, logger))
			if err != nil {
				return goerr.Wrap(err, "roster generation failed")
			}

			logger.Info("Roster generation done", "rows_created", created)
			return nil
		},
	}
}
