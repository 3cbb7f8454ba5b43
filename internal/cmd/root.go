package cmd

import (
	"context"
	"os"

	"github.com/bugsnag/bugsnag-go/v2"
	_ "github.com/heroku/x/hmetrics/onload"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) int {
	_ = godotenv.Load()

	if key, ok := os.LookupEnv("BUGSNAG_API_KEY"); ok {
		bugsnag.Configure(bugsnag.Configuration{
			APIKey:          key,
			ReleaseStage:    os.Getenv("ENV"),
			ProjectPackages: []string{"main", "github.com/christianselig/contact-relay"},
		})
	}

	debug := false

	rootCmd := &cobra.Command{
		Use:          "contact-relay",
		Short:        "Relays contact form submissions to the site owner's inbox.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "development logging")

	rootCmd.AddCommand(APICmd(ctx, &debug))
	rootCmd.AddCommand(SendTestCmd(ctx, &debug))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}

	return 0
}
