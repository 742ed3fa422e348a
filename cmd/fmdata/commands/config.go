package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/fmdata/internal/constants"
	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Static errors for err113 compliance.
var (
	ErrUnknownConfigKey = errors.New("unknown config key")
)

// Config represents the CLI configuration file. Passwords are never written.
type Config struct {
	Host              string        `json:"host,omitempty"              yaml:"host,omitempty"`
	Database          string        `json:"database,omitempty"          yaml:"database,omitempty"`
	Layout            string        `json:"layout,omitempty"            yaml:"layout,omitempty"`
	User              string        `json:"user,omitempty"              yaml:"user,omitempty"`
	Auth              string        `json:"auth,omitempty"              yaml:"auth,omitempty"`
	IDPTokenURL       string        `json:"idp_token_url,omitempty"     yaml:"idp_token_url,omitempty"`
	IDPClientID       string        `json:"idp_client_id,omitempty"     yaml:"idp_client_id,omitempty"`
	IDPScopes         []string      `json:"idp_scopes,omitempty"        yaml:"idp_scopes,omitempty"`
	Output            string        `json:"output,omitempty"            yaml:"output,omitempty"`
	Timeout           time.Duration `json:"timeout,omitempty"           yaml:"timeout,omitempty"`
	Retries           int           `json:"retries,omitempty"           yaml:"retries,omitempty"`
	SkipSSLValidation bool          `json:"skip_ssl_validation"         yaml:"skip_ssl_validation"`
}

// loadConfig reads the effective CLI configuration from viper, which merges
// flags, FMDATA_* environment variables and the config file.
func loadConfig() *Config {
	return &Config{
		Host:              viper.GetString("host"),
		Database:          viper.GetString("database"),
		Layout:            viper.GetString("layout"),
		User:              viper.GetString("user"),
		Auth:              viper.GetString("auth"),
		IDPTokenURL:       viper.GetString("idp_token_url"),
		IDPClientID:       viper.GetString("idp_client_id"),
		IDPScopes:         viper.GetStringSlice("idp_scopes"),
		Output:            viper.GetString("output"),
		Timeout:           viper.GetDuration("timeout"),
		Retries:           viper.GetInt("retries"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
	}
}

// buildClientConfig builds the library configuration for the current invocation.
func buildClientConfig(config *Config, password string) (*fmdata.Config, error) {
	if config.Host == "" {
		return nil, constants.ErrHostRequired
	}

	if config.Database == "" {
		return nil, constants.ErrDatabaseRequired
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	clientConfig := &fmdata.Config{
		Host:               config.Host,
		Database:           config.Database,
		Layout:             config.Layout,
		User:               config.User,
		Password:           password,
		Auth:               fmdata.AuthMode(config.Auth),
		HTTPTimeout:        timeout,
		RetryMax:           config.Retries,
		InsecureSkipVerify: config.SkipSSLValidation,
		Debug:              viper.GetBool("debug"),
		Logger:             NewLogger(),
	}

	if config.IDPTokenURL != "" {
		clientConfig.IdentityProvider = &fmdata.IdentityProvider{
			TokenURL: config.IDPTokenURL,
			ClientID: config.IDPClientID,
			Scopes:   config.IDPScopes,
		}
	}

	return clientConfig, nil
}

// configPath returns the file the CLI reads and writes.
func configPath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".fmdata", "config.yml"), nil
}

// loadConfigFile reads only what the config file holds, leaving out values
// that came from flags or FMDATA_* variables. A missing file is empty.
func loadConfigFile() (*Config, error) {
	configFile, err := configPath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// Config file path comes from the user or their home directory
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// saveConfigStruct writes config to the config file.
func saveConfigStruct(config *Config) error {
	configFile, err := configPath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setConfigValue applies one key of `config set`.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "host":
		config.Host = value
	case "database":
		config.Database = value
	case "layout":
		config.Layout = value
	case "user":
		config.User = value
	case "auth":
		config.Auth = value
	case "idp_token_url":
		config.IDPTokenURL = value
	case "idp_client_id":
		config.IDPClientID = value
	case "idp_scopes":
		config.IDPScopes = strings.Fields(strings.ReplaceAll(value, ",", " "))
	case "output":
		config.Output = value
	case "timeout":
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}

		config.Timeout = timeout
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries: %w", err)
		}

		config.Retries = retries
	case "skip_ssl_validation":
		config.SkipSSLValidation = value == constants.BooleanTrue || value == "1"
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show or change the settings stored in $HOME/.fmdata/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return render(stdout, config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")

				values := configRows(config)

				keys := make([]string, 0, len(values))
				for key := range values {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				for _, key := range keys {
					_ = table.Append(key, values[key])
				}

				if viper.GetString("password") != "" {
					_ = table.Append("password", Masked)
				}
			})
		},
	}
}

func configRows(config *Config) map[string]string {
	rows := map[string]string{
		"host":                config.Host,
		"database":            config.Database,
		"layout":              config.Layout,
		"user":                config.User,
		"auth":                config.Auth,
		"idp_token_url":       config.IDPTokenURL,
		"idp_client_id":       config.IDPClientID,
		"idp_scopes":          strings.Join(config.IDPScopes, ","),
		"output":              config.Output,
		"retries":             strconv.Itoa(config.Retries),
		"skip_ssl_validation": strconv.FormatBool(config.SkipSSLValidation),
	}

	if config.Timeout > 0 {
		rows["timeout"] = config.Timeout.String()
	}

	for key, value := range rows {
		if value == "" {
			rows[key] = NotAvailable
		}
	}

	return rows
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. The password is never stored; use FMDATA_PASSWORD or the prompt.",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfigFile()
			if err != nil {
				return err
			}

			err = setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(stdout, "Set %s\n", args[0])

			return nil
		},
	}
}
