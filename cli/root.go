// Package cli is the command line surface of the USI client: an
// interactive menu, one command per operation and the JSON gateway.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/usi-samples/usi-client-go/config"
	l "github.com/usi-samples/usi-client-go/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "usi",
	Short: "Unique Student Identifier service client",
	Long: `usi authenticates to the security token service with the machine
credential from the keystore and calls the USI service.

Without a command the interactive menu is shown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			config.SetConfigFile(cfgFile)
		}
		options := config.GetConfig().Options
		l.SetLevel(options.GetString(config.Keys.LogLevel))
		return initSentry(options.GetString(config.Keys.SentryDSN), options.GetString(config.Keys.BuildCommit))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, values are overridden by USI_ env variables")
}

// initSentry enables sentry when a DSN is configured.
func initSentry(dsn, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	})
	if err != nil {
		return fmt.Errorf("unable to initialise sentry: [%w]", err)
	}
	l.Log.WithFields(logrus.Fields{"release": release}).Debug("sentry initialised")
	return nil
}
