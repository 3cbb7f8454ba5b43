package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/christianselig/contact-relay/internal/api"
	"github.com/christianselig/contact-relay/internal/cmdutil"
	"github.com/christianselig/contact-relay/internal/config"
)

const shutdownTimeout = 10 * time.Second

func APICmd(ctx context.Context, debug *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Args:  cobra.ExactArgs(0),
		Short: "Runs the contact form API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.LookupEnv)
			if err != nil {
				return err
			}

			logger := cmdutil.NewLogger(cfg, *debug)
			defer func() { _ = logger.Sync() }()

			statsd, err := cmdutil.NewStatsdClient(cfg)
			if err != nil {
				return err
			}
			defer statsd.Close()

			shutdownTracing, err := cmdutil.NewTracing(cfg, logger)
			if err != nil {
				return err
			}
			defer shutdownTracing()

			sender, err := cmdutil.NewMailSender(cfg.Mail, logger)
			if err != nil {
				return err
			}

			api := api.NewAPI(cfg, logger, statsd, sender)
			srv := api.Server(cfg.Port)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			logger.Info("started api",
				zap.Int("port", cfg.Port),
				zap.String("mail#provider", cfg.Mail.Provider),
				zap.Strings("cors#origins", cfg.Origins.Origins()),
				zap.Bool("tracing", cfg.Tracing),
			)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					logger.Error("api stopped", zap.Error(err))
					return err
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}

	return cmd
}
