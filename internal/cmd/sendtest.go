package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/christianselig/contact-relay/internal/cmdutil"
	"github.com/christianselig/contact-relay/internal/config"
	"github.com/christianselig/contact-relay/internal/domain"
	"github.com/christianselig/contact-relay/internal/mail"
)

// SendTestCmd pushes one submission through the configured relay. Credentials
// are never checked at startup, so this is the way to find out they work
// before a visitor does.
func SendTestCmd(ctx context.Context, debug *bool) *cobra.Command {
	cs := domain.ContactSubmission{}

	cmd := &cobra.Command{
		Use:   "send-test",
		Args:  cobra.ExactArgs(0),
		Short: "Sends a test contact form email through the configured relay.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.LookupEnv)
			if err != nil {
				return err
			}

			logger := cmdutil.NewLogger(cfg, *debug)
			defer func() { _ = logger.Sync() }()

			if cs.Email == "" {
				cs.Email = cfg.Mail.Operator
			}
			if err := cs.Validate(); err != nil {
				return err
			}

			shutdownTracing, err := cmdutil.NewTracing(cfg, logger)
			if err != nil {
				return err
			}
			defer shutdownTracing()

			sender, err := cmdutil.NewMailSender(cfg.Mail, logger)
			if err != nil {
				return err
			}

			res := <-mail.Dispatch(ctx, sender, mail.Compose(cs, cfg.Mail.Operator))
			if !res.OK() {
				logger.Error("test email failed", zap.Error(res.Err), zap.String("mail#provider", cfg.Mail.Provider))
				return res.Err
			}

			logger.Info("test email sent",
				zap.String("mail#provider", cfg.Mail.Provider),
				zap.Duration("elapsed", res.Elapsed),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "sent test email to %s\n", cfg.Mail.Operator)

			return nil
		},
	}

	cmd.Flags().StringVar(&cs.Name, "name", "Contact Relay", "submitter name")
	cmd.Flags().StringVar(&cs.Email, "email", "", "submitter email (defaults to EMAIL_USER)")
	cmd.Flags().StringVar(&cs.Message, "message", "This is a test message from contact-relay.", "message body")

	return cmd
}
