package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/fmdata/cmd/fmdata/commands"
	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fmdata",
	Short: "FileMaker Data API CLI",
	Long: `A command-line interface for the FileMaker Data API.

Every command opens a session with the configured credentials, runs, and
closes the session again. Settings come from flags, FMDATA_* environment
variables and $HOME/.fmdata/config.yml, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.fmdata/config.yml)")
	flags.StringP("host", "H", "", "FileMaker Server host")
	flags.StringP("database", "d", "", "database name")
	flags.StringP("layout", "l", "", "layout name")
	flags.StringP("user", "u", "", "account name")
	flags.StringP("password", "p", "", "account password (prefer FMDATA_PASSWORD or the prompt)")
	flags.String("auth", "basic", "authentication mode (basic, fmid)")
	flags.String("idp-token-url", "", "identity provider token URL for fmid")
	flags.String("idp-client-id", "", "identity provider client ID for fmid")
	flags.StringSlice("idp-scopes", nil, "identity provider scopes for fmid")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "HTTP timeout")
	flags.Int("retries", 0, "retries for transport failures and 5xx responses")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("debug", false, "log HTTP requests and responses")
	flags.Bool("skip-ssl-validation", false, "skip SSL certificate validation (requires FMDATA_DEV_MODE)")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"config":              "config",
		"host":                "host",
		"database":            "database",
		"layout":              "layout",
		"user":                "user",
		"password":            "password",
		"auth":                "auth",
		"idp_token_url":       "idp-token-url",
		"idp_client_id":       "idp-client-id",
		"idp_scopes":          "idp-scopes",
		"output":              "output",
		"timeout":             "timeout",
		"retries":             "retries",
		"verbose":             "verbose",
		"debug":               "debug",
		"skip_ssl_validation": "skip-ssl-validation",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewInfoCommand())
	rootCmd.AddCommand(commands.NewRecordsCommand())
	rootCmd.AddCommand(commands.NewFindCommand())
	rootCmd.AddCommand(commands.NewGlobalsCommand())
	rootCmd.AddCommand(commands.NewUploadCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.fmdata/config.yml
		viper.AddConfigPath(filepath.Join(home, ".fmdata"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("FMDATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
