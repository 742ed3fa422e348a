package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/spf13/cobra"
)

// NewLoginCommand creates the login command. It checks the credentials by
// opening and validating a session, then closes it again.
func NewLoginCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against a database",
		Long:  "Open a Data API session with the configured credentials, validate it and log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSession(cmd, false, func(ctx context.Context, client fmdata.Client) error {
				valid, err := client.ValidateSession(ctx)
				if err != nil {
					return fmt.Errorf("failed to validate session: %w", err)
				}

				if !valid {
					return fmt.Errorf("session rejected: %w", fmdata.ErrInvalidToken)
				}

				return nil
			})
			if err != nil {
				return err
			}

			config := loadConfig()
			_, _ = fmt.Fprintf(stdout, "Logged in to %s on %s as %s\n", config.Database, config.Host, config.User)

			if save {
				err = saveConnection(config)
				if err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}

				_, _ = fmt.Fprintln(stdout, "Saved connection settings (password not stored)")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store host, database, layout and user in the config file")

	return cmd
}

// saveConnection stores the connection settings of config on top of what the
// config file already holds.
func saveConnection(config *Config) error {
	stored, err := loadConfigFile()
	if err != nil {
		return err
	}

	stored.Host = config.Host
	stored.Database = config.Database
	stored.Layout = config.Layout
	stored.User = config.User
	stored.Auth = config.Auth
	stored.IDPTokenURL = config.IDPTokenURL
	stored.IDPClientID = config.IDPClientID
	stored.IDPScopes = config.IDPScopes

	return saveConfigStruct(stored)
}
