package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/cli/config"
	httpctrl "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/controller/http"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/service/smart"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var rosterSchedule string
	var repoCfg config.Repository
	var slackCfg config.Slack
	var geminiCfg config.Gemini
	var workspaceCfg config.Workspace

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CHECKIN_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "roster-schedule",
			Usage:       "Cron expression for in-process roster generation (empty disables it)",
			Sources:     cli.EnvVars("CHECKIN_ROSTER_SCHEDULE"),
			Destination: &rosterSchedule,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, workspaceCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
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

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}
			if slackSvc == nil {
				return goerr.New("slack-bot-token is required for serve")
			}
			logger.Info("Slack service enabled", "slack", slackCfg)

			var classifier smart.Classifier
			var rewriter smart.Rewriter
			llm, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llm != nil {
				svc, err := smart.New(llm)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize SMART goal service")
				}
				classifier = svc
				rewriter = svc
				logger.LogAttrs(ctx, slog.LevelInfo, "SMART goal gate enabled", geminiCfg.LogAttrs()...)
			} else {
				logger.Info("Gemini not configured, SMART goal gate runs in fallback mode")
			}

			checkInUC := usecase.NewCheckInUseCase(repo, slackSvc, classifier, rewriter,
				usecase.WithDefaultTimezone(workspaceCfg.Location()))
			rosterUC := usecase.NewRosterUseCase(repo,
				usecase.WithRosterWindow(workspaceCfg.RosterWindowDays))
			membershipUC := usecase.NewMembershipUseCase(repo)
			metricsUC := usecase.NewMetricsUseCase(repo)
			uc := usecase.New(checkInUC, rosterUC, membershipUC, metricsUC)

			var scheduler *cron.Cron
			if rosterSchedule != "" {
				scheduler = cron.New()
				if _, err := scheduler.AddFunc(rosterSchedule, func() {
					runCtx := logging.With(context.Background(), logger)
					if _, err := rosterUC.Generate(runCtx); err != nil {
						logger.Error("scheduled roster generation failed", "error", err.Error())
					}
				}); err != nil {
					return goerr.Wrap(err, "invalid roster schedule", goerr.V("schedule", rosterSchedule))
				}
				scheduler.Start()
				logger.Info("Roster scheduler enabled", "schedule", rosterSchedule)
			}

			httpOpts := []httpctrl.Options{}
			if secret := slackCfg.SigningSecret(); secret != "" {
				httpOpts = append(httpOpts, httpctrl.WithSigningSecret(secret))
			} else {
				logger.Warn("slack-signing-secret not set, webhook signature verification disabled")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, repo, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				if scheduler != nil {
					<-scheduler.Stop().Done()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
