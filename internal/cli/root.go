// Package cli implements shepherdctl, the administrator's command line.
package cli

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/shepherd/internal/config"
	"github.com/mmynk/shepherd/internal/storage/sqlite"
	"github.com/mmynk/shepherd/pkg/logging"
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var noColor bool

	rootCmd := &cobra.Command{
		Use:           "shepherdctl",
		Short:         "Membership and attendance checks for Shepherd",
		Long:          "Reads the Shepherd database directly to report attendance alerts, probable duplicate records and past membership.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				pterm.DisableStyling()
			}
			config.LoadDotEnv()
			logging.Configure(cmd.ErrOrStderr(), v.GetString("log_level"), v.GetString("log_format"))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database (env SHEPHERD_DB_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (env SHEPHERD_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "plain table output")
	_ = v.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newAlertsCmd(v),
		newDuplicatesCmd(v),
		newMembershipCmd(v),
	)

	return rootCmd
}

func openStore(v *viper.Viper) (*sqlite.SQLiteStore, error) {
	path := v.GetString("db_path")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database %s: %w", path, err)
	}
	store, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}
