package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/cli/config"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
)

// Run is the CLI entry point
func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "checkin",
		Usage:   "Daily attendance ledger and check-in/check-out workflow",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting checkin", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdRoster(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
